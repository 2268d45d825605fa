package validation

import (
	"context"
	"fmt"
	"time"

	"github.com/leadgate/leadgate/internal/leads"
	"github.com/leadgate/leadgate/pkg/logging"
)

// RateStore is the shared counter/set store used for per-IP rate limiting
// and duplicate-phone suppression. Implementations must be safe for
// concurrent use; Insert must be an atomic test-and-set.
type RateStore interface {
	IncrementAndGet(ctx context.Context, key string, window time.Duration) (int64, error)
	Exists(ctx context.Context, key string) (bool, error)
	Insert(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// RateLimitCheck bounds submissions per source IP per window and suppresses
// duplicate phone numbers within a TTL. Runs last in the pipeline so that
// only submissions passing every content check consume quota. Store
// unavailability fails open by default: capturing a lead outranks rate-limit
// precision.
type RateLimitCheck struct {
	Store      RateStore
	PerIPLimit int
	Window     time.Duration
	DedupTTL   time.Duration
	Logger     *logging.Logger

	// FailClosed rejects submissions when the store is unreachable instead
	// of degrading to a warning.
	FailClosed bool
}

func (c *RateLimitCheck) Name() string { return "rate_limit" }

func (c *RateLimitCheck) Run(ctx context.Context, sub *leads.Submission) Outcome {
	if c.Store == nil {
		return Pass()
	}

	if sub.ClientIP != "" && c.PerIPLimit > 0 {
		key := "ratelimit:ip:" + sub.ClientIP
		count, err := c.Store.IncrementAndGet(ctx, key, c.Window)
		if err != nil {
			return c.failOpen(err)
		}
		if count > int64(c.PerIPLimit) {
			return Reject(ReasonRateLimited, fmt.Sprintf("%d submissions from %s within %s, limit %d", count, sub.ClientIP, c.Window, c.PerIPLimit))
		}
	}

	if sub.Phone != "" && c.DedupTTL > 0 {
		key := "dedup:phone:" + sub.Phone
		seen, err := c.Store.Exists(ctx, key)
		if err != nil {
			return c.failOpen(err)
		}
		if seen {
			return Reject(ReasonDuplicatePhone, fmt.Sprintf("phone %s already submitted within %s", sub.Phone, c.DedupTTL))
		}

		// SETNX is authoritative: if a concurrent submission inserted the key
		// between Exists and here, this one is the duplicate.
		added, err := c.Store.Insert(ctx, key, c.DedupTTL)
		if err != nil {
			return c.failOpen(err)
		}
		if !added {
			return Reject(ReasonDuplicatePhone, fmt.Sprintf("phone %s lost insert race", sub.Phone))
		}
	}

	return Pass()
}

func (c *RateLimitCheck) failOpen(err error) Outcome {
	if c.Logger != nil {
		c.Logger.Warn("rate store unavailable", "error", err)
	}
	if c.FailClosed {
		return Reject(WarnRateStoreUnavailable, err.Error())
	}
	return Warn(WarnRateStoreUnavailable)
}
