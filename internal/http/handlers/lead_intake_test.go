package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadgate/leadgate/internal/leads"
)

type fakePipeline struct {
	result *leads.ValidationResult
	seen   *leads.Submission
}

func (f *fakePipeline) Validate(_ context.Context, sub *leads.Submission) *leads.ValidationResult {
	f.seen = sub
	return f.result
}

func TestSubmitAcceptedLead(t *testing.T) {
	pipeline := &fakePipeline{result: &leads.ValidationResult{Success: true, LeadID: "lead-1"}}
	handler := NewLeadIntakeHandler(pipeline, nil)

	body := `{"phone":"+79991234567","name":"Анна","utm_source":"yandex"}`
	req := httptest.NewRequest(http.MethodPost, "/leads/web", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.7:54321"
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)")
	req.Header.Set("Referer", "https://landing.example.ru/promo")
	req.Header.Set("X-Geo-Country", "RU")
	req.Header.Set("X-Geo-City", "Москва")
	rec := httptest.NewRecorder()

	handler.Submit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result leads.ValidationResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.True(t, result.Success)
	assert.Equal(t, "lead-1", result.LeadID)

	require.NotNil(t, pipeline.seen)
	assert.Equal(t, "203.0.113.7", pipeline.seen.ClientIP)
	assert.Equal(t, "RU", pipeline.seen.GeoCountry)
	assert.Equal(t, "https://landing.example.ru/promo", pipeline.seen.Referer)
	assert.Contains(t, pipeline.seen.UserAgent, "Mozilla")
}

func TestSubmitRejectedLeadStillReturns200(t *testing.T) {
	pipeline := &fakePipeline{result: &leads.ValidationResult{Success: false, Reason: "honeypot_filled"}}
	handler := NewLeadIntakeHandler(pipeline, nil)

	body := `{"phone":"+79991234567","website":"http://spam.example"}`
	req := httptest.NewRequest(http.MethodPost, "/leads/web", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Submit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result leads.ValidationResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.False(t, result.Success)
	assert.Equal(t, "honeypot_filled", result.Reason)
}

func TestSubmitMalformedBody(t *testing.T) {
	handler := NewLeadIntakeHandler(&fakePipeline{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/leads/web", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	handler.Submit(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitIgnoresSpoofedServerFields(t *testing.T) {
	pipeline := &fakePipeline{result: &leads.ValidationResult{Success: true}}
	handler := NewLeadIntakeHandler(pipeline, nil)

	// ClientIP and UserAgent have json:"-" tags, so body values must not
	// leak into the submission.
	body := `{"phone":"+79991234567","ClientIP":"1.2.3.4","UserAgent":"fake"}`
	req := httptest.NewRequest(http.MethodPost, "/leads/web", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.7:1000"
	req.Header.Set("User-Agent", "real-agent")
	rec := httptest.NewRecorder()

	handler.Submit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "203.0.113.7", pipeline.seen.ClientIP)
	assert.Equal(t, "real-agent", pipeline.seen.UserAgent)
}
