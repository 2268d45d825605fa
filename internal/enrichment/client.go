// Package enrichment provides the phone-lookup client used to enrich leads
// with carrier and region attributes.
package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/leadgate/leadgate/pkg/logging"
)

const (
	defaultBaseURL = "https://cleaner.dadata.ru/api/v1/clean/phone"
	defaultTimeout = 5 * time.Second
)

// Quality codes returned by the provider.
const (
	// QualityGarbage marks a number the provider could not recognize at all.
	QualityGarbage = 2
)

// PhoneInfo is the provider's verdict on a single phone number.
type PhoneInfo struct {
	Phone    string `json:"phone"`
	Type     string `json:"type"`
	Provider string `json:"provider"`
	Region   string `json:"region"`
	Quality  int    `json:"qc"`
}

// Client calls the DaData phone-cleaning API.
type Client struct {
	baseURL    string
	apiKey     string
	secretKey  string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewClient creates a phone enrichment client with a bounded request timeout.
func NewClient(apiKey, secretKey string, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		baseURL:   defaultBaseURL,
		apiKey:    apiKey,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a local server.
func NewClientWithBaseURL(baseURL, apiKey, secretKey string, logger *logging.Logger) *Client {
	c := NewClient(apiKey, secretKey, logger)
	c.baseURL = baseURL
	return c
}

// Lookup resolves attributes for a single normalized phone number.
func (c *Client) Lookup(ctx context.Context, phone string) (*PhoneInfo, error) {
	payload, err := json.Marshal([]string{phone})
	if err != nil {
		return nil, fmt.Errorf("enrichment: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("enrichment: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("X-Secret", c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("enrichment: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("enrichment: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("enrichment provider returned non-200", "status", resp.StatusCode)
		return nil, fmt.Errorf("enrichment: unexpected status %d", resp.StatusCode)
	}

	var infos []PhoneInfo
	if err := json.Unmarshal(body, &infos); err != nil {
		return nil, fmt.Errorf("enrichment: decode response: %w", err)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("enrichment: empty response")
	}
	return &infos[0], nil
}
