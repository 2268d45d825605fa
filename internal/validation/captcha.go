package validation

import (
	"context"
	"time"

	"github.com/leadgate/leadgate/internal/leads"
	"github.com/leadgate/leadgate/pkg/logging"
)

// CaptchaVerifier is the external token-verification collaborator.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, ip string) (bool, error)
}

// CaptchaCheck gates submissions on a valid CAPTCHA token. Unlike the other
// network-bound checks it fails CLOSED: a provider outage rejects the
// submission, because silently waving traffic past the gate defeats it.
type CaptchaCheck struct {
	Enabled  bool
	Verifier CaptchaVerifier
	Timeout  time.Duration
	Logger   *logging.Logger
}

func (c *CaptchaCheck) Name() string { return "captcha" }

func (c *CaptchaCheck) Run(ctx context.Context, sub *leads.Submission) Outcome {
	if !c.Enabled {
		return Pass()
	}

	if sub.CaptchaToken == "" {
		return Reject(ReasonCaptchaMissing, "no captcha token in submission")
	}

	if c.Verifier == nil {
		return Reject(ReasonCaptchaInvalid, "captcha verifier not configured")
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ok, err := c.Verifier.Verify(ctx, sub.CaptchaToken, sub.ClientIP)
	if err != nil {
		if c.Logger != nil {
			c.Logger.Warn("captcha verification error", "error", err)
		}
		return Reject(ReasonCaptchaInvalid, "verification provider error: "+err.Error())
	}
	if !ok {
		return Reject(ReasonCaptchaInvalid, "token rejected by provider")
	}
	return Pass()
}
