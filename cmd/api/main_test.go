package main

import (
	"context"
	"testing"

	appconfig "github.com/leadgate/leadgate/internal/config"
	"github.com/leadgate/leadgate/internal/leads"
	"github.com/leadgate/leadgate/pkg/logging"
)

func TestBuildRepositoryEmptyURLUsesMemory(t *testing.T) {
	logger := logging.New("error")
	repo, pool := buildRepository(context.Background(), "", logger)
	if pool != nil {
		t.Fatalf("expected nil pool for empty URL")
	}
	if _, ok := repo.(*leads.InMemoryRepository); !ok {
		t.Fatalf("expected in-memory repository, got %T", repo)
	}
}

func TestBuildNotifierWithoutSendGridKey(t *testing.T) {
	logger := logging.New("error")
	cfg := &appconfig.Config{OpsNotifyEmail: "ops@example.ru"}
	if notifier := buildNotifier(cfg, logger); notifier != nil {
		t.Fatalf("expected nil notifier without SendGrid key")
	}
}

func TestBuildNotifierWithSendGridKey(t *testing.T) {
	logger := logging.New("error")
	cfg := &appconfig.Config{
		SendGridAPIKey:    "test-key",
		SendGridFromEmail: "noreply@example.ru",
		OpsNotifyEmail:    "ops@example.ru",
		NotifyOnRejection: true,
	}
	if notifier := buildNotifier(cfg, logger); notifier == nil {
		t.Fatalf("expected notifier when SendGrid is configured")
	}
}
