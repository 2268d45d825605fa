package main

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/leadgate/leadgate/internal/api/router"
	"github.com/leadgate/leadgate/internal/captcha"
	appconfig "github.com/leadgate/leadgate/internal/config"
	"github.com/leadgate/leadgate/internal/enrichment"
	"github.com/leadgate/leadgate/internal/http/handlers"
	"github.com/leadgate/leadgate/internal/leads"
	"github.com/leadgate/leadgate/internal/notify"
	"github.com/leadgate/leadgate/internal/observability/metrics"
	"github.com/leadgate/leadgate/internal/ratestore"
	"github.com/leadgate/leadgate/internal/validation"
	"github.com/leadgate/leadgate/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting leadgate API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Lead storage: Postgres when configured, in-memory otherwise.
	repo, pool := buildRepository(ctx, cfg.DatabaseURL, logger)
	if pool != nil {
		defer pool.Close()
	}

	// Redis backs the per-IP counters and phone dedup set.
	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable at startup, rate limiting degrades to fail-open", "error", err)
	}
	store := ratestore.NewRedisStore(redisClient)

	var lookup validation.PhoneLookup
	if cfg.DaDataAPIKey != "" {
		lookup = enrichment.NewClient(cfg.DaDataAPIKey, cfg.DaDataSecretKey, logger)
	}

	var verifier validation.CaptchaVerifier
	if cfg.SmartCaptchaEnabled {
		verifier = captcha.NewClient(cfg.SmartCaptchaServerKey, logger)
	}

	resolver := &net.Resolver{}

	notifier := buildNotifier(cfg, logger)

	m := metrics.NewValidationMetrics(nil)

	pipeline := validation.NewPipeline(cfg, repo, lookup, verifier, resolver, store, notifier, m, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		LeadIntake:         handlers.NewLeadIntakeHandler(pipeline, logger),
		AdminLeads:         handlers.NewAdminLeadsHandler(repo, logger),
		MetricsHandler:     promhttp.Handler(),
		AdminAuthSecret:    cfg.AdminJWTSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateRPS:            cfg.TransportRateRPS,
		RateBurst:          cfg.TransportRateBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildRepository returns a Postgres-backed repository when a database URL is
// configured, falling back to the in-memory repository otherwise. The pool is
// returned so main can close it on shutdown.
func buildRepository(ctx context.Context, databaseURL string, logger *logging.Logger) (leads.Repository, *pgxpool.Pool) {
	if databaseURL == "" {
		logger.Warn("DATABASE_URL not set, using in-memory lead repository")
		return leads.NewInMemoryRepository(), nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("using postgres lead repository")
	return leads.NewPostgresRepository(pool), pool
}

// buildNotifier wires the ops notification service, or returns nil when
// SendGrid is not configured.
func buildNotifier(cfg *appconfig.Config, logger *logging.Logger) validation.Notifier {
	emailSender := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger)
	if emailSender == nil {
		return nil
	}
	return notify.NewService(emailSender, notify.ServiceConfig{
		OpsEmail:           cfg.OpsNotifyEmail,
		NotifyOnAcceptance: cfg.NotifyOnAcceptance,
		NotifyOnRejection:  cfg.NotifyOnRejection,
	}, logger)
}
