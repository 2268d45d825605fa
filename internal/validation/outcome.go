// Package validation implements the lead-validation pipeline: a fixed
// sequence of fraud and bot-detection checks applied to an inbound web-form
// submission before it is accepted as a sales lead.
package validation

import (
	"context"

	"github.com/leadgate/leadgate/internal/leads"
)

// Status is the severity of a check outcome.
type Status int

const (
	// StatusPass means the check is satisfied, no signal.
	StatusPass Status = iota
	// StatusWarn is a soft signal: recorded, pipeline continues.
	StatusWarn
	// StatusReject is a hard signal: pipeline stops immediately.
	StatusReject
)

// Stable machine-readable rejection and warning codes.
const (
	ReasonHoneypotFilled    = "honeypot_filled"
	ReasonTooFast           = "too_fast"
	ReasonTooSlow           = "too_slow"
	ReasonUABlocked         = "user_agent_blocked"
	ReasonUASuspicious      = "user_agent_suspicious"
	ReasonUATooShort        = "user_agent_too_short"
	ReasonRefererEmpty      = "referer_empty"
	ReasonRefererNotAllowed = "referer_domain_not_allowed"
	ReasonInvalidPhone      = "invalid_phone"
	ReasonDomainNotFound    = "domain_not_found"
	ReasonNoMXRecords       = "no_mx_records"
	ReasonBlacklistedUTM    = "blacklisted_utm_placement"
	ReasonCaptchaMissing    = "captcha_missing"
	ReasonCaptchaInvalid    = "captcha_invalid"
	ReasonRateLimited       = "rate_limited"
	ReasonDuplicatePhone    = "duplicate_phone"

	WarnTimezoneNotProvided   = "timezone_not_provided"
	WarnEnrichmentUnavailable = "enrichment_unavailable"
	WarnMXUnavailable         = "mx_check_unavailable"
	WarnRateStoreUnavailable  = "rate_store_unavailable"
)

// Outcome is the result of a single check. Every check produces exactly one.
type Outcome struct {
	Status Status
	Code   string
	Detail string

	// Attrs is set only by the enrichment check when the provider returned
	// usable data.
	Attrs *leads.PhoneAttributes
}

// Pass returns a satisfied outcome.
func Pass() Outcome {
	return Outcome{Status: StatusPass}
}

// Warn returns a soft-signal outcome with the given code.
func Warn(code string) Outcome {
	return Outcome{Status: StatusWarn, Code: code}
}

// Reject returns a hard-rejection outcome.
func Reject(code, detail string) Outcome {
	return Outcome{Status: StatusReject, Code: code, Detail: detail}
}

// Check is a single validation step. Run never returns an error: network and
// parsing failures are converted locally into the appropriate Outcome per
// the check's failure policy.
type Check interface {
	Name() string
	Run(ctx context.Context, sub *leads.Submission) Outcome
}
