package validation

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/leadgate/leadgate/internal/leads"
	"github.com/leadgate/leadgate/pkg/logging"
)

// MXResolver resolves mail-exchange records. *net.Resolver satisfies it.
type MXResolver interface {
	LookupMX(ctx context.Context, domain string) ([]*net.MX, error)
}

type mxCacheEntry struct {
	hasMX  bool
	reason string
}

// MXCheck verifies that the email's domain can receive mail. Verdicts are
// cached per lowercased domain for the process lifetime: a domain's mail
// setup changes rarely, and submission volume dwarfs domain cardinality.
// Transient resolver failures are never cached and fail open.
type MXCheck struct {
	Enabled  bool
	Resolver MXResolver
	Timeout  time.Duration
	Logger   *logging.Logger

	// FailClosed rejects submissions when resolution fails transiently
	// instead of degrading to a warning.
	FailClosed bool

	mu    sync.Mutex
	cache map[string]mxCacheEntry
}

func (c *MXCheck) Name() string { return "mx" }

func (c *MXCheck) Run(ctx context.Context, sub *leads.Submission) Outcome {
	if !c.Enabled || sub.Email == "" {
		return Pass()
	}

	domain, ok := emailDomain(sub.Email)
	if !ok {
		// A malformed address has no resolvable domain; same verdict as a
		// nonexistent one.
		return Reject(ReasonDomainNotFound, fmt.Sprintf("email %q has no domain", sub.Email))
	}

	if entry, ok := c.cachedVerdict(domain); ok {
		if entry.hasMX {
			return Pass()
		}
		return Reject(entry.reason, fmt.Sprintf("domain %q (cached verdict)", domain))
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resolver := c.Resolver
	if resolver == nil {
		resolver = net.DefaultResolver
	}

	records, err := resolver.LookupMX(ctx, domain)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			c.storeVerdict(domain, mxCacheEntry{reason: ReasonDomainNotFound})
			return Reject(ReasonDomainNotFound, fmt.Sprintf("domain %q does not exist", domain))
		}
		// Timeout or transient resolver failure: never cached.
		if c.Logger != nil {
			c.Logger.Warn("mx resolution unavailable", "error", err, "domain", domain)
		}
		if c.FailClosed {
			return Reject(WarnMXUnavailable, err.Error())
		}
		return Warn(WarnMXUnavailable)
	}

	if len(records) == 0 {
		c.storeVerdict(domain, mxCacheEntry{reason: ReasonNoMXRecords})
		return Reject(ReasonNoMXRecords, fmt.Sprintf("domain %q has no mail servers", domain))
	}

	c.storeVerdict(domain, mxCacheEntry{hasMX: true})
	return Pass()
}

func (c *MXCheck) cachedVerdict(domain string) (mxCacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.cache[domain]
	return entry, ok
}

func (c *MXCheck) storeVerdict(domain string, entry mxCacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cache == nil {
		c.cache = make(map[string]mxCacheEntry)
	}
	c.cache[domain] = entry
}

func emailDomain(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(email[at+1:])), true
}
