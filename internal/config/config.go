package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	LogLevel      string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// Form timing bounds
	MinFormFillTime time.Duration
	MaxFormFillTime time.Duration

	// Per-IP rate limiting and phone deduplication
	RateLimitPerIP    int
	RateLimitWindow   time.Duration
	PhoneDuplicateTTL time.Duration

	// When true, any check that would reject on an infrastructure failure
	// degrades to a pass with a recorded warning. Content rejections are
	// unaffected. CAPTCHA never fails open.
	FailOpenMode bool

	// UTM placement blacklist
	UTMValidationEnabled     bool
	UTMBlacklistedPlacements []string

	// Email MX verification
	MXCheckEnabled bool
	MXTimeout      time.Duration

	// Yandex SmartCaptcha
	SmartCaptchaEnabled   bool
	SmartCaptchaServerKey string
	SmartCaptchaTimeout   time.Duration

	// Referer policy
	AllowedRefererDomains []string
	StrictRefererCheck    bool

	// DaData phone enrichment
	DaDataAPIKey      string
	DaDataSecretKey   string
	EnrichmentTimeout time.Duration

	// HTTP surface
	CORSAllowedOrigins []string
	AdminJWTSecret     string
	TransportRateRPS   float64
	TransportRateBurst int

	// Ops notifications
	SendGridAPIKey     string
	SendGridFromEmail  string
	SendGridFromName   string
	OpsNotifyEmail     string
	NotifyOnRejection  bool
	NotifyOnAcceptance bool
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		MinFormFillTime: getEnvAsSeconds("MIN_FORM_FILL_TIME_SEC", 3*time.Second),
		MaxFormFillTime: getEnvAsSeconds("MAX_FORM_FILL_TIME_SEC", time.Hour),

		RateLimitPerIP:    getEnvAsInt("RATE_LIMIT_PER_IP", 10),
		RateLimitWindow:   getEnvAsSeconds("RATE_LIMIT_WINDOW_SEC", time.Hour),
		PhoneDuplicateTTL: getEnvAsSeconds("PHONE_DUPLICATE_TTL_SEC", 24*time.Hour),

		FailOpenMode: getEnvAsBool("FAIL_OPEN_MODE", true),

		UTMValidationEnabled:     getEnvAsBool("UTM_VALIDATION_ENABLED", false),
		UTMBlacklistedPlacements: getEnvAsList("UTM_BLACKLISTED_PLACEMENTS", nil),

		MXCheckEnabled: getEnvAsBool("MX_CHECK_ENABLED", true),
		MXTimeout:      getEnvAsSeconds("MX_TIMEOUT_SEC", 5*time.Second),

		SmartCaptchaEnabled:   getEnvAsBool("SMARTCAPTCHA_ENABLED", false),
		SmartCaptchaServerKey: getEnv("SMARTCAPTCHA_SERVER_KEY", ""),
		SmartCaptchaTimeout:   getEnvAsSeconds("SMARTCAPTCHA_TIMEOUT_SEC", 5*time.Second),

		AllowedRefererDomains: getEnvAsList("ALLOWED_REFERER_DOMAINS", nil),
		StrictRefererCheck:    getEnvAsBool("STRICT_REFERER_CHECK", false),

		DaDataAPIKey:      getEnv("DADATA_API_KEY", ""),
		DaDataSecretKey:   getEnv("DADATA_SECRET_KEY", ""),
		EnrichmentTimeout: getEnvAsSeconds("ENRICHMENT_TIMEOUT_SEC", 5*time.Second),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", nil),
		AdminJWTSecret:     getEnv("ADMIN_JWT_SECRET", ""),
		TransportRateRPS:   getEnvAsFloat("TRANSPORT_RATE_RPS", 20),
		TransportRateBurst: getEnvAsInt("TRANSPORT_RATE_BURST", 40),

		SendGridAPIKey:     getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail:  getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:   getEnv("SENDGRID_FROM_NAME", "LeadGate"),
		OpsNotifyEmail:     getEnv("OPS_NOTIFY_EMAIL", ""),
		NotifyOnRejection:  getEnvAsBool("NOTIFY_ON_REJECTION", false),
		NotifyOnAcceptance: getEnvAsBool("NOTIFY_ON_ACCEPTANCE", false),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvAsSeconds parses an integer number of seconds.
func getEnvAsSeconds(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
			return time.Duration(parsed) * time.Second
		}
	}
	return fallback
}

// getEnvAsList splits a comma-separated value, trimming whitespace and
// dropping empty entries.
func getEnvAsList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
