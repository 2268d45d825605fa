package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/leadgate/leadgate/internal/leads"
	"github.com/leadgate/leadgate/pkg/logging"
)

// AdminLeadsHandler serves the admin review surface for rejected leads.
type AdminLeadsHandler struct {
	repo   leads.Repository
	logger *logging.Logger
}

// NewAdminLeadsHandler creates a new admin leads handler.
func NewAdminLeadsHandler(repo leads.Repository, logger *logging.Logger) *AdminLeadsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminLeadsHandler{repo: repo, logger: logger}
}

// RejectedLeadResponse represents a rejected submission in API responses.
type RejectedLeadResponse struct {
	ID              string `json:"id"`
	Phone           string `json:"phone"`
	Email           string `json:"email,omitempty"`
	Name            string `json:"name,omitempty"`
	Reason          string `json:"reason"`
	Detail          string `json:"detail,omitempty"`
	UTMSource       string `json:"utm_source,omitempty"`
	UTMMedium       string `json:"utm_medium,omitempty"`
	UTMCampaign     string `json:"utm_campaign,omitempty"`
	UTMContent      string `json:"utm_content,omitempty"`
	UTMTerm         string `json:"utm_term,omitempty"`
	ClientID        string `json:"client_id,omitempty"`
	FormOpenedAt    int64  `json:"form_opened_at,omitempty"`
	Honeypot        string `json:"honeypot,omitempty"`
	BrowserTimezone string `json:"browser_timezone,omitempty"`
	ClientIP        string `json:"client_ip,omitempty"`
	GeoCountry      string `json:"geo_country,omitempty"`
	GeoCity         string `json:"geo_city,omitempty"`
	UserAgent       string `json:"user_agent,omitempty"`
	Referer         string `json:"referer,omitempty"`
	CreatedAt       string `json:"created_at"`
}

// RejectedLeadsListResponse is a paginated list of rejected submissions.
type RejectedLeadsListResponse struct {
	Rejected []RejectedLeadResponse `json:"rejected"`
	Limit    int                    `json:"limit"`
	Offset   int                    `json:"offset"`
}

// ListRejected returns recently rejected submissions, most recent first.
// GET /admin/leads/rejected?limit=50&offset=0
func (h *AdminLeadsHandler) ListRejected(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	rejected, err := h.repo.ListRejected(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list rejected leads", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	items := make([]RejectedLeadResponse, 0, len(rejected))
	for _, rl := range rejected {
		items = append(items, RejectedLeadResponse{
			ID:              rl.ID,
			Phone:           rl.Phone,
			Email:           rl.Email,
			Name:            rl.Name,
			Reason:          rl.Reason,
			Detail:          rl.Detail,
			UTMSource:       rl.UTMSource,
			UTMMedium:       rl.UTMMedium,
			UTMCampaign:     rl.UTMCampaign,
			UTMContent:      rl.UTMContent,
			UTMTerm:         rl.UTMTerm,
			ClientID:        rl.ClientID,
			FormOpenedAt:    rl.FormOpenedAt,
			Honeypot:        rl.Honeypot,
			BrowserTimezone: rl.BrowserTimezone,
			ClientIP:        rl.ClientIP,
			GeoCountry:      rl.GeoCountry,
			GeoCity:         rl.GeoCity,
			UserAgent:       rl.UserAgent,
			Referer:         rl.Referer,
			CreatedAt:       rl.CreatedAt.Format(time.RFC3339),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RejectedLeadsListResponse{
		Rejected: items,
		Limit:    limit,
		Offset:   offset,
	})
}
