package validation

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadgate/leadgate/internal/leads"
	"github.com/leadgate/leadgate/internal/ratestore"
)

func newRateLimitCheck(t *testing.T) (*RateLimitCheck, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return &RateLimitCheck{
		Store:      ratestore.NewRedisStore(client),
		PerIPLimit: 3,
		Window:     time.Hour,
		DedupTTL:   24 * time.Hour,
	}, mr
}

func TestRateLimitPerIP(t *testing.T) {
	check, _ := newRateLimitCheck(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		sub := &leads.Submission{ClientIP: "10.0.0.1", Phone: "+7999000000" + string(rune('0'+i))}
		out := check.Run(ctx, sub)
		require.Equal(t, StatusPass, out.Status, "submission %d should pass", i+1)
	}

	out := check.Run(ctx, &leads.Submission{ClientIP: "10.0.0.1", Phone: "+79990000009"})
	assert.Equal(t, StatusReject, out.Status)
	assert.Equal(t, ReasonRateLimited, out.Code)

	// A different IP is unaffected.
	out = check.Run(ctx, &leads.Submission{ClientIP: "10.0.0.2", Phone: "+79990000008"})
	assert.Equal(t, StatusPass, out.Status)
}

func TestDuplicatePhoneWithinTTL(t *testing.T) {
	check, mr := newRateLimitCheck(t)
	ctx := context.Background()

	first := check.Run(ctx, &leads.Submission{ClientIP: "10.0.0.1", Phone: "+79991234567"})
	require.Equal(t, StatusPass, first.Status)

	second := check.Run(ctx, &leads.Submission{ClientIP: "10.0.0.3", Phone: "+79991234567"})
	assert.Equal(t, StatusReject, second.Status)
	assert.Equal(t, ReasonDuplicatePhone, second.Code)

	// After TTL expiry the same phone is accepted again.
	mr.FastForward(24*time.Hour + time.Minute)
	third := check.Run(ctx, &leads.Submission{ClientIP: "10.0.0.4", Phone: "+79991234567"})
	assert.Equal(t, StatusPass, third.Status)
}

func TestRateLimitStoreDownFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	check := &RateLimitCheck{
		Store:      ratestore.NewRedisStore(client),
		PerIPLimit: 3,
		Window:     time.Hour,
		DedupTTL:   time.Hour,
	}
	mr.Close()

	out := check.Run(context.Background(), &leads.Submission{ClientIP: "10.0.0.1", Phone: "+79991234567"})
	assert.Equal(t, StatusWarn, out.Status)
	assert.Equal(t, WarnRateStoreUnavailable, out.Code)
}

func TestRateLimitStoreDownFailsClosedWhenConfigured(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	check := &RateLimitCheck{
		Store:      ratestore.NewRedisStore(client),
		PerIPLimit: 3,
		Window:     time.Hour,
		DedupTTL:   time.Hour,
		FailClosed: true,
	}
	mr.Close()

	out := check.Run(context.Background(), &leads.Submission{ClientIP: "10.0.0.1", Phone: "+79991234567"})
	assert.Equal(t, StatusReject, out.Status)
	assert.Equal(t, WarnRateStoreUnavailable, out.Code)
}

func TestRateLimitSkipsWithoutIPOrPhone(t *testing.T) {
	check, _ := newRateLimitCheck(t)
	out := check.Run(context.Background(), &leads.Submission{})
	assert.Equal(t, StatusPass, out.Status)
}

func TestRateLimitNoStoreConfigured(t *testing.T) {
	check := &RateLimitCheck{}
	out := check.Run(context.Background(), &leads.Submission{ClientIP: "10.0.0.1", Phone: "+79991234567"})
	assert.Equal(t, StatusPass, out.Status)
}
