package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("MIN_FORM_FILL_TIME_SEC", "")
	t.Setenv("RATE_LIMIT_PER_IP", "")
	t.Setenv("FAIL_OPEN_MODE", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.MinFormFillTime != 3*time.Second {
		t.Fatalf("expected default min fill time, got %s", cfg.MinFormFillTime)
	}
	if cfg.MaxFormFillTime != time.Hour {
		t.Fatalf("expected default max fill time, got %s", cfg.MaxFormFillTime)
	}
	if cfg.RateLimitPerIP != 10 {
		t.Fatalf("expected default rate limit, got %d", cfg.RateLimitPerIP)
	}
	if cfg.PhoneDuplicateTTL != 24*time.Hour {
		t.Fatalf("expected default dedup TTL, got %s", cfg.PhoneDuplicateTTL)
	}
	if !cfg.FailOpenMode {
		t.Fatalf("expected fail-open enabled by default")
	}
	if cfg.UTMValidationEnabled {
		t.Fatalf("expected UTM validation disabled by default")
	}
	if cfg.SmartCaptchaEnabled {
		t.Fatalf("expected captcha disabled by default")
	}
	if !cfg.MXCheckEnabled {
		t.Fatalf("expected MX check enabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MIN_FORM_FILL_TIME_SEC", "5")
	t.Setenv("MAX_FORM_FILL_TIME_SEC", "600")
	t.Setenv("RATE_LIMIT_PER_IP", "3")
	t.Setenv("RATE_LIMIT_WINDOW_SEC", "60")
	t.Setenv("PHONE_DUPLICATE_TTL_SEC", "120")
	t.Setenv("UTM_VALIDATION_ENABLED", "true")
	t.Setenv("UTM_BLACKLISTED_PLACEMENTS", "doorway_site, teaser-network ,")
	t.Setenv("ALLOWED_REFERER_DOMAINS", "example.ru,landing.example.ru")
	t.Setenv("STRICT_REFERER_CHECK", "true")
	t.Setenv("SMARTCAPTCHA_ENABLED", "true")
	t.Setenv("SMARTCAPTCHA_SERVER_KEY", "key-123")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.MinFormFillTime != 5*time.Second {
		t.Fatalf("expected min fill override, got %s", cfg.MinFormFillTime)
	}
	if cfg.MaxFormFillTime != 10*time.Minute {
		t.Fatalf("expected max fill override, got %s", cfg.MaxFormFillTime)
	}
	if cfg.RateLimitPerIP != 3 || cfg.RateLimitWindow != time.Minute {
		t.Fatalf("expected rate limit overrides, got %d/%s", cfg.RateLimitPerIP, cfg.RateLimitWindow)
	}
	if cfg.PhoneDuplicateTTL != 2*time.Minute {
		t.Fatalf("expected dedup TTL override, got %s", cfg.PhoneDuplicateTTL)
	}
	if !cfg.UTMValidationEnabled {
		t.Fatalf("expected UTM validation enabled")
	}
	if len(cfg.UTMBlacklistedPlacements) != 2 ||
		cfg.UTMBlacklistedPlacements[0] != "doorway_site" ||
		cfg.UTMBlacklistedPlacements[1] != "teaser-network" {
		t.Fatalf("expected trimmed blacklist, got %v", cfg.UTMBlacklistedPlacements)
	}
	if len(cfg.AllowedRefererDomains) != 2 {
		t.Fatalf("expected referer domains, got %v", cfg.AllowedRefererDomains)
	}
	if !cfg.StrictRefererCheck {
		t.Fatalf("expected strict referer enabled")
	}
	if !cfg.SmartCaptchaEnabled || cfg.SmartCaptchaServerKey != "key-123" {
		t.Fatalf("expected captcha overrides")
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_IP", "not-a-number")
	t.Setenv("FAIL_OPEN_MODE", "maybe")
	t.Setenv("MIN_FORM_FILL_TIME_SEC", "-1")
	cfg := Load()
	if cfg.RateLimitPerIP != 10 {
		t.Fatalf("expected fallback rate limit, got %d", cfg.RateLimitPerIP)
	}
	if !cfg.FailOpenMode {
		t.Fatalf("expected fallback fail-open")
	}
	if cfg.MinFormFillTime != 3*time.Second {
		t.Fatalf("expected fallback min fill time, got %s", cfg.MinFormFillTime)
	}
}
