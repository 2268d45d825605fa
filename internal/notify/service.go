package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/leadgate/leadgate/internal/leads"
	"github.com/leadgate/leadgate/pkg/logging"
)

// ServiceConfig controls which pipeline outcomes trigger an ops email.
type ServiceConfig struct {
	OpsEmail           string
	NotifyOnAcceptance bool
	NotifyOnRejection  bool
}

// Service sends ops notifications about pipeline decisions. Delivery is
// best-effort: failures are logged and never propagate to the validation
// path.
type Service struct {
	email  EmailSender
	cfg    ServiceConfig
	logger *logging.Logger
}

// NewService creates a notification service.
func NewService(email EmailSender, cfg ServiceConfig, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{email: email, cfg: cfg, logger: logger}
}

// LeadAccepted notifies ops about a newly accepted lead.
func (s *Service) LeadAccepted(ctx context.Context, lead *leads.Lead, result *leads.ValidationResult) {
	if !s.cfg.NotifyOnAcceptance || !s.canSend() {
		return
	}

	subject := fmt.Sprintf("New lead: %s", displayName(lead.Name))
	body := fmt.Sprintf(`A new lead passed validation.

Name: %s
Phone: %s
Email: %s
Source: %s / %s
Lead ID: %s%s
`, lead.Name, lead.Phone, lead.Email, lead.UTMSource, lead.UTMCampaign, lead.ID, warningsBlock(result.Warnings))

	s.send(ctx, subject, body, "lead_id", lead.ID)
}

// LeadRejected notifies ops about a hard rejection.
func (s *Service) LeadRejected(ctx context.Context, rejected *leads.RejectedLead) {
	if !s.cfg.NotifyOnRejection || !s.canSend() {
		return
	}

	subject := fmt.Sprintf("Lead rejected: %s", rejected.Reason)
	body := fmt.Sprintf(`A submission was rejected by the validation pipeline.

Reason: %s
Detail: %s
Phone: %s
Email: %s
Client IP: %s
User-Agent: %s
UTM: %s / %s
`, rejected.Reason, rejected.Detail, rejected.Phone, rejected.Email, rejected.ClientIP, rejected.UserAgent, rejected.UTMSource, rejected.UTMContent)

	s.send(ctx, subject, body, "reason", rejected.Reason)
}

func (s *Service) canSend() bool {
	return s.email != nil && s.cfg.OpsEmail != ""
}

func (s *Service) send(ctx context.Context, subject, body string, logArgs ...any) {
	msg := EmailMessage{
		To:      s.cfg.OpsEmail,
		Subject: subject,
		Body:    body,
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("notify: failed to send ops email", append([]any{"error", err}, logArgs...)...)
		return
	}
	s.logger.Info("notify: ops email sent", append([]any{"subject", subject}, logArgs...)...)
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "(no name)"
	}
	return name
}

func warningsBlock(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}
	return "\nWarnings: " + strings.Join(warnings, ", ")
}
