package validation

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/leadgate/leadgate/internal/leads"
)

// suspiciousUAPatterns lists case-insensitive substrings that identify HTTP
// client libraries, automation frameworks and crawlers. Order matters: the
// first match wins and is reported in the rejection code.
var suspiciousUAPatterns = []string{
	"curl",
	"wget",
	"python-requests",
	"python",
	"go-http-client",
	"okhttp",
	"httpclient",
	"libwww",
	"java/",
	"scrapy",
	"phantomjs",
	"headless",
	"selenium",
	"puppeteer",
	"playwright",
	"bot",
	"crawler",
	"spider",
}

const minUserAgentLength = 20

// UserAgentCheck inspects the User-Agent and Referer headers for bot
// signatures. User-Agent rules run first; referer problems are advisory
// unless StrictReferer is set.
type UserAgentCheck struct {
	AllowedRefererDomains []string
	StrictReferer         bool
}

func (c *UserAgentCheck) Name() string { return "user_agent" }

func (c *UserAgentCheck) Run(ctx context.Context, sub *leads.Submission) Outcome {
	ua := strings.TrimSpace(sub.UserAgent)

	if ua == "" || ua == "-" || ua == "Mozilla/5.0" {
		return Reject(ReasonUABlocked, fmt.Sprintf("user agent %q", ua))
	}

	lower := strings.ToLower(ua)
	for _, pattern := range suspiciousUAPatterns {
		if strings.Contains(lower, pattern) {
			return Reject(ReasonUASuspicious+":"+pattern, fmt.Sprintf("user agent %q matched %q", ua, pattern))
		}
	}

	if len(ua) < minUserAgentLength {
		return Reject(ReasonUATooShort, fmt.Sprintf("user agent %q is %d chars", ua, len(ua)))
	}

	return c.checkReferer(sub.Referer)
}

func (c *UserAgentCheck) checkReferer(referer string) Outcome {
	referer = strings.TrimSpace(referer)
	if referer == "" {
		return Warn(ReasonRefererEmpty)
	}
	if len(c.AllowedRefererDomains) == 0 {
		return Pass()
	}

	host := refererHost(referer)
	if host != "" && c.hostAllowed(host) {
		return Pass()
	}

	code := ReasonRefererNotAllowed + ":" + host
	if c.StrictReferer {
		return Reject(code, fmt.Sprintf("referer host %q not in allow-list", host))
	}
	return Warn(code)
}

func (c *UserAgentCheck) hostAllowed(host string) bool {
	for _, domain := range c.AllowedRefererDomains {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain == "" {
			continue
		}
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

func refererHost(referer string) string {
	u, err := url.Parse(referer)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
