package leads

import "time"

// Submission represents a raw web-form lead submission before validation.
// The honeypot field is bound to the hidden "website" input real users never
// fill. ClientIP, GeoCountry, GeoCity, UserAgent and Referer are populated
// server-side from the request, never trusted from the body.
type Submission struct {
	Phone           string `json:"phone"`
	Email           string `json:"email,omitempty"`
	Name            string `json:"name,omitempty"`
	FormOpenedAt    int64  `json:"form_opened_at,omitempty"`
	Honeypot        string `json:"website,omitempty"`
	CaptchaToken    string `json:"captcha_token,omitempty"`
	UTMSource       string `json:"utm_source,omitempty"`
	UTMMedium       string `json:"utm_medium,omitempty"`
	UTMCampaign     string `json:"utm_campaign,omitempty"`
	UTMContent      string `json:"utm_content,omitempty"`
	UTMTerm         string `json:"utm_term,omitempty"`
	BrowserTimezone string `json:"browser_timezone,omitempty"`
	ClientID        string `json:"client_id,omitempty"`

	ClientIP   string `json:"-"`
	GeoCountry string `json:"-"`
	GeoCity    string `json:"-"`
	UserAgent  string `json:"-"`
	Referer    string `json:"-"`
}

// PhoneAttributes carries enrichment data returned by the phone lookup
// provider. Informational only; quality code 2 is the only value that
// rejects a lead.
type PhoneAttributes struct {
	Type     string `json:"type,omitempty"`
	Provider string `json:"provider,omitempty"`
	Region   string `json:"region,omitempty"`
	Quality  int    `json:"quality"`
}

// ValidationResult is the outcome of running a submission through the
// validation pipeline.
type ValidationResult struct {
	Success    bool             `json:"success"`
	LeadID     string           `json:"lead_id,omitempty"`
	Reason     string           `json:"reason,omitempty"`
	DurationMs int64            `json:"duration_ms"`
	Warnings   []string         `json:"warnings,omitempty"`
	Enrichment *PhoneAttributes `json:"enrichment,omitempty"`
}

// Lead is an accepted lead as persisted.
type Lead struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	UTMSource   string    `json:"utm_source"`
	UTMMedium   string    `json:"utm_medium"`
	UTMCampaign string    `json:"utm_campaign"`
	UTMContent  string    `json:"utm_content"`
	UTMTerm     string    `json:"utm_term"`
	ClientID    string    `json:"client_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// RejectedLead records a hard-rejected submission for manual review. It
// carries the full submission context so the review surface can reconstruct
// what the visitor sent. Written once at rejection time, never mutated.
type RejectedLead struct {
	ID              string    `json:"id"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Reason          string    `json:"reason"`
	Detail          string    `json:"detail"`
	UTMSource       string    `json:"utm_source"`
	UTMMedium       string    `json:"utm_medium"`
	UTMCampaign     string    `json:"utm_campaign"`
	UTMContent      string    `json:"utm_content"`
	UTMTerm         string    `json:"utm_term"`
	ClientID        string    `json:"client_id"`
	FormOpenedAt    int64     `json:"form_opened_at"`
	Honeypot        string    `json:"honeypot"`
	BrowserTimezone string    `json:"browser_timezone"`
	ClientIP        string    `json:"client_ip"`
	GeoCountry      string    `json:"geo_country"`
	GeoCity         string    `json:"geo_city"`
	UserAgent       string    `json:"user_agent"`
	Referer         string    `json:"referer"`
	CreatedAt       time.Time `json:"created_at"`
}
