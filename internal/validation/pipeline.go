package validation

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/leadgate/leadgate/internal/config"
	"github.com/leadgate/leadgate/internal/leads"
	"github.com/leadgate/leadgate/internal/observability/metrics"
	"github.com/leadgate/leadgate/pkg/logging"
)

var tracer = otel.Tracer("leadgate/validation")

// Notifier receives final decisions for out-of-band delivery (ops email,
// chat). Delivery failures never affect the ValidationResult.
type Notifier interface {
	LeadAccepted(ctx context.Context, lead *leads.Lead, result *leads.ValidationResult)
	LeadRejected(ctx context.Context, rejected *leads.RejectedLead)
}

// Pipeline runs a submission through the fixed sequence of checks,
// short-circuits on the first hard rejection, aggregates soft warnings and
// persists the outcome.
type Pipeline struct {
	checks   []Check
	repo     leads.Repository
	notifier Notifier
	metrics  *metrics.ValidationMetrics
	logger   *logging.Logger
}

// NewPipeline assembles the check sequence from configuration and injected
// collaborators. Order is fixed: cheap request-shape checks first, the
// CAPTCHA gate before any paid enrichment call, network-bound content checks
// next, and rate-limit/dedup last so quota is only consumed by submissions
// that passed every content check.
func NewPipeline(
	cfg *config.Config,
	repo leads.Repository,
	lookup PhoneLookup,
	verifier CaptchaVerifier,
	resolver MXResolver,
	store RateStore,
	notifier Notifier,
	m *metrics.ValidationMetrics,
	logger *logging.Logger,
) *Pipeline {
	if logger == nil {
		logger = logging.Default()
	}

	checks := []Check{
		&TimingCheck{
			MinFillTime: cfg.MinFormFillTime,
			MaxFillTime: cfg.MaxFormFillTime,
		},
		&UserAgentCheck{
			AllowedRefererDomains: cfg.AllowedRefererDomains,
			StrictReferer:         cfg.StrictRefererCheck,
		},
		&CaptchaCheck{
			Enabled:  cfg.SmartCaptchaEnabled,
			Verifier: verifier,
			Timeout:  cfg.SmartCaptchaTimeout,
			Logger:   logger,
		},
		&EnrichmentCheck{
			Lookup:     lookup,
			Timeout:    cfg.EnrichmentTimeout,
			Logger:     logger,
			FailClosed: !cfg.FailOpenMode,
		},
		&MXCheck{
			Enabled:    cfg.MXCheckEnabled,
			Resolver:   resolver,
			Timeout:    cfg.MXTimeout,
			Logger:     logger,
			FailClosed: !cfg.FailOpenMode,
		},
		&TimezoneCheck{},
		&UTMCheck{
			Enabled:   cfg.UTMValidationEnabled,
			Blacklist: cfg.UTMBlacklistedPlacements,
		},
		&RateLimitCheck{
			Store:      store,
			PerIPLimit: cfg.RateLimitPerIP,
			Window:     cfg.RateLimitWindow,
			DedupTTL:   cfg.PhoneDuplicateTTL,
			Logger:     logger,
			FailClosed: !cfg.FailOpenMode,
		},
	}

	return &Pipeline{
		checks:   checks,
		repo:     repo,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// NewPipelineWithChecks is used by tests to run an explicit check sequence.
func NewPipelineWithChecks(checks []Check, repo leads.Repository, logger *logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.Default()
	}
	return &Pipeline{checks: checks, repo: repo, logger: logger}
}

// Validate runs one submission through the pipeline and returns the final
// decision. The submission's phone is normalized in place before any check
// sees it. Validate never returns an error: infrastructure problems inside
// checks degrade per each check's failure policy, and persistence failures
// are logged without changing the decision.
func (p *Pipeline) Validate(ctx context.Context, sub *leads.Submission) *leads.ValidationResult {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "validation.pipeline", trace.WithAttributes(
		attribute.String("lead.client_ip", sub.ClientIP),
	))
	defer span.End()

	sub.Phone = NormalizePhone(sub.Phone)

	var warnings []string
	var attrs *leads.PhoneAttributes

	for _, check := range p.checks {
		out := p.runCheck(ctx, check, sub)
		if out.Attrs != nil {
			attrs = out.Attrs
		}

		switch out.Status {
		case StatusReject:
			span.SetAttributes(
				attribute.String("validation.outcome", "rejected"),
				attribute.String("validation.reason", out.Code),
			)
			return p.reject(ctx, sub, out, attrs, warnings, start)
		case StatusWarn:
			warnings = append(warnings, out.Code)
			if isFailOpenWarning(out.Code) {
				p.metrics.ObserveFailOpen(check.Name())
			}
		}
	}

	span.SetAttributes(attribute.String("validation.outcome", "accepted"))
	return p.accept(ctx, sub, attrs, warnings, start)
}

func (p *Pipeline) runCheck(ctx context.Context, check Check, sub *leads.Submission) Outcome {
	ctx, span := tracer.Start(ctx, "validation.check."+check.Name())
	defer span.End()
	out := check.Run(ctx, sub)
	span.SetAttributes(attribute.Int("check.status", int(out.Status)))
	return out
}

func (p *Pipeline) reject(ctx context.Context, sub *leads.Submission, out Outcome, attrs *leads.PhoneAttributes, warnings []string, start time.Time) *leads.ValidationResult {
	duration := time.Since(start)
	p.logger.Info("lead rejected",
		"reason", out.Code,
		"detail", out.Detail,
		"phone", sub.Phone,
		"client_ip", sub.ClientIP,
		"duration_ms", duration.Milliseconds(),
	)
	p.metrics.ObserveValidation("rejected", out.Code, duration.Seconds())

	rejected := &leads.RejectedLead{
		Phone:           sub.Phone,
		Email:           sub.Email,
		Name:            sub.Name,
		Reason:          out.Code,
		Detail:          out.Detail,
		UTMSource:       sub.UTMSource,
		UTMMedium:       sub.UTMMedium,
		UTMCampaign:     sub.UTMCampaign,
		UTMContent:      sub.UTMContent,
		UTMTerm:         sub.UTMTerm,
		ClientID:        sub.ClientID,
		FormOpenedAt:    sub.FormOpenedAt,
		Honeypot:        sub.Honeypot,
		BrowserTimezone: sub.BrowserTimezone,
		ClientIP:        sub.ClientIP,
		GeoCountry:      sub.GeoCountry,
		GeoCity:         sub.GeoCity,
		UserAgent:       sub.UserAgent,
		Referer:         sub.Referer,
		CreatedAt:       time.Now().UTC(),
	}
	if p.repo != nil {
		if err := p.repo.CreateRejected(ctx, rejected); err != nil {
			p.logger.Error("failed to persist rejection", "error", err, "reason", out.Code)
		}
	}
	if p.notifier != nil {
		p.notifier.LeadRejected(ctx, rejected)
	}

	return &leads.ValidationResult{
		Success:    false,
		Reason:     out.Code,
		DurationMs: duration.Milliseconds(),
		Warnings:   warnings,
		Enrichment: attrs,
	}
}

func (p *Pipeline) accept(ctx context.Context, sub *leads.Submission, attrs *leads.PhoneAttributes, warnings []string, start time.Time) *leads.ValidationResult {
	duration := time.Since(start)
	result := &leads.ValidationResult{
		Success:    true,
		DurationMs: duration.Milliseconds(),
		Warnings:   warnings,
		Enrichment: attrs,
	}

	if p.repo != nil {
		lead, err := p.repo.Create(ctx, sub)
		if err != nil {
			// The decision stands; only the identifier is lost.
			p.logger.Error("failed to persist accepted lead", "error", err, "phone", sub.Phone)
		} else {
			result.LeadID = lead.ID
			if p.notifier != nil {
				p.notifier.LeadAccepted(ctx, lead, result)
			}
		}
	}

	p.logger.Info("lead accepted",
		"lead_id", result.LeadID,
		"phone", sub.Phone,
		"warnings", len(warnings),
		"duration_ms", result.DurationMs,
	)
	p.metrics.ObserveValidation("accepted", "", duration.Seconds())
	return result
}

func isFailOpenWarning(code string) bool {
	switch code {
	case WarnEnrichmentUnavailable, WarnMXUnavailable, WarnRateStoreUnavailable:
		return true
	}
	return false
}
