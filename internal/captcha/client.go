// Package captcha provides the Yandex SmartCaptcha verification client.
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/leadgate/leadgate/pkg/logging"
)

const (
	defaultEndpoint = "https://smartcaptcha.yandexcloud.net/validate"
	defaultTimeout  = 5 * time.Second
)

// Client verifies SmartCaptcha tokens against the validation endpoint.
type Client struct {
	endpoint   string
	serverKey  string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewClient creates a captcha verification client with a bounded timeout.
func NewClient(serverKey string, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		endpoint:  defaultEndpoint,
		serverKey: serverKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// NewClientWithEndpoint is used by tests to point at a local server.
func NewClientWithEndpoint(endpoint, serverKey string, logger *logging.Logger) *Client {
	c := NewClient(serverKey, logger)
	c.endpoint = endpoint
	return c
}

type validateResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Verify checks a captcha token for the given client IP. Returns false with
// a nil error when the provider explicitly marked the token invalid, and an
// error on transport/provider failures.
func (c *Client) Verify(ctx context.Context, token, ip string) (bool, error) {
	form := url.Values{}
	form.Set("secret", c.serverKey)
	form.Set("token", token)
	if ip != "" {
		form.Set("ip", ip)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("captcha: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("captcha: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("captcha: unexpected status %d", resp.StatusCode)
	}

	var out validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("captcha: decode response: %w", err)
	}

	if out.Status != "ok" {
		c.logger.Debug("captcha verification failed", "status", out.Status, "message", out.Message)
		return false, nil
	}
	return true, nil
}
