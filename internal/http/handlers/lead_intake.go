package handlers

import (
	"context"
	"encoding/json"
	"net"
	"net/http"

	"github.com/leadgate/leadgate/internal/leads"
	"github.com/leadgate/leadgate/pkg/logging"
)

// LeadValidator is the validation pipeline as seen by the intake handler.
type LeadValidator interface {
	Validate(ctx context.Context, sub *leads.Submission) *leads.ValidationResult
}

// LeadIntakeHandler accepts web-form lead submissions.
type LeadIntakeHandler struct {
	pipeline LeadValidator
	logger   *logging.Logger
}

// NewLeadIntakeHandler creates the intake handler.
func NewLeadIntakeHandler(pipeline LeadValidator, logger *logging.Logger) *LeadIntakeHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadIntakeHandler{pipeline: pipeline, logger: logger}
}

// Submit handles POST /leads/web. The response is always 200 with a
// ValidationResult body, whether the lead was accepted or rejected; 400 is
// reserved for requests whose body cannot be decoded at all.
func (h *LeadIntakeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub leads.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sub.ClientIP = clientIP(r)
	sub.UserAgent = r.Header.Get("User-Agent")
	sub.Referer = r.Header.Get("Referer")
	sub.GeoCountry = r.Header.Get("X-Geo-Country")
	sub.GeoCity = r.Header.Get("X-Geo-City")

	result := h.pipeline.Validate(r.Context(), &sub)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// clientIP strips the port RemoteAddr carries. chi's RealIP middleware has
// already rewritten RemoteAddr from X-Real-Ip / X-Forwarded-For when the
// service runs behind a proxy.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
