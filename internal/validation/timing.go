package validation

import (
	"context"
	"fmt"
	"time"

	"github.com/leadgate/leadgate/internal/leads"
)

// TimingCheck rejects submissions that populate the hidden honeypot field or
// that were filled implausibly fast or slow. A missing form-open timestamp
// is not penalized; older front-ends do not send one.
type TimingCheck struct {
	MinFillTime time.Duration
	MaxFillTime time.Duration

	// Now is injected in tests; defaults to time.Now.
	Now func() time.Time
}

func (c *TimingCheck) Name() string { return "timing" }

func (c *TimingCheck) Run(ctx context.Context, sub *leads.Submission) Outcome {
	if sub.Honeypot != "" {
		return Reject(ReasonHoneypotFilled, "hidden trap field was populated")
	}

	if sub.FormOpenedAt == 0 {
		return Pass()
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	elapsed := now().Sub(time.Unix(sub.FormOpenedAt, 0))

	if c.MinFillTime > 0 && elapsed < c.MinFillTime {
		return Reject(ReasonTooFast, fmt.Sprintf("form filled in %s, minimum %s", elapsed.Round(time.Second), c.MinFillTime))
	}
	if c.MaxFillTime > 0 && elapsed > c.MaxFillTime {
		return Reject(ReasonTooSlow, fmt.Sprintf("form open for %s, maximum %s", elapsed.Round(time.Second), c.MaxFillTime))
	}
	return Pass()
}
