package validation

import (
	"context"
	"fmt"
	"time"

	"github.com/leadgate/leadgate/internal/enrichment"
	"github.com/leadgate/leadgate/internal/leads"
	"github.com/leadgate/leadgate/pkg/logging"
)

// PhoneLookup is the external phone-enrichment collaborator.
type PhoneLookup interface {
	Lookup(ctx context.Context, phone string) (*enrichment.PhoneInfo, error)
}

// EnrichmentCheck rejects phones that normalized to nothing, then calls the
// phone-lookup provider and maps its quality code into policy. Only quality
// code 2 ("garbage") rejects; type, provider and region are informational.
// Provider unavailability fails open by default: the pipeline must not lose
// leads to a third-party outage.
type EnrichmentCheck struct {
	Lookup  PhoneLookup
	Timeout time.Duration
	Logger  *logging.Logger

	// FailClosed rejects submissions when the provider is unreachable
	// instead of degrading to a warning.
	FailClosed bool
}

func (c *EnrichmentCheck) Name() string { return "enrichment" }

func (c *EnrichmentCheck) Run(ctx context.Context, sub *leads.Submission) Outcome {
	// An empty phone after normalization can never become a lead; rejecting
	// here keeps the decision independent of provider configuration.
	if sub.Phone == "" {
		return Reject(ReasonInvalidPhone, "phone is empty after normalization")
	}

	if c.Lookup == nil {
		return Pass()
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	info, err := c.Lookup.Lookup(ctx, sub.Phone)
	if err != nil {
		if c.Logger != nil {
			c.Logger.Warn("phone enrichment unavailable", "error", err, "phone", sub.Phone)
		}
		if c.FailClosed {
			return Reject(WarnEnrichmentUnavailable, err.Error())
		}
		return Warn(WarnEnrichmentUnavailable)
	}

	attrs := &leads.PhoneAttributes{
		Type:     info.Type,
		Provider: info.Provider,
		Region:   info.Region,
		Quality:  info.Quality,
	}

	if info.Quality == enrichment.QualityGarbage {
		out := Reject(ReasonInvalidPhone, fmt.Sprintf("provider quality code %d", info.Quality))
		out.Attrs = attrs
		return out
	}

	out := Pass()
	out.Attrs = attrs
	return out
}
