package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/auth-service/pkg/util"
)

func TestMemoryLimiterAdmitsUpToMax(t *testing.T) {
	limiter := NewMemoryLimiter(Config{Window: 15 * time.Minute, MaxMessages: 5})
	now := time.Now()

	for i := 0; i < 5; i++ {
		require.NoError(t, limiter.Admit(context.Background(), "login:a@x.com", now), "admission %d", i+1)
	}

	err := limiter.Admit(context.Background(), "login:a@x.com", now)
	require.Error(t, err)

	var domainErr *util.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "RATE_LIMITED", domainErr.Code)
}

func TestMemoryLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewMemoryLimiter(Config{Window: 15 * time.Minute, MaxMessages: 2})
	now := time.Now()

	require.NoError(t, limiter.Admit(context.Background(), "k", now))
	require.NoError(t, limiter.Admit(context.Background(), "k", now))
	require.Error(t, limiter.Admit(context.Background(), "k", now))

	later := now.Add(16 * time.Minute)
	require.NoError(t, limiter.Admit(context.Background(), "k", later))
}

func TestMemoryLimiterIsolatesKeys(t *testing.T) {
	limiter := NewMemoryLimiter(Config{Window: 15 * time.Minute, MaxMessages: 1})
	now := time.Now()

	require.NoError(t, limiter.Admit(context.Background(), "login:a@x.com", now))
	require.NoError(t, limiter.Admit(context.Background(), "login:b@x.com", now))
	require.Error(t, limiter.Admit(context.Background(), "login:a@x.com", now))
}

func TestMemoryLimiterSweepsExpiredEntries(t *testing.T) {
	limiter := NewMemoryLimiter(Config{Window: time.Minute, MaxMessages: 10})
	now := time.Now()

	require.NoError(t, limiter.Admit(context.Background(), "a", now))
	require.NoError(t, limiter.Admit(context.Background(), "b", now))
	assert.Len(t, limiter.entries, 2)

	later := now.Add(2 * time.Minute)
	require.NoError(t, limiter.Admit(context.Background(), "c", later))
	assert.Len(t, limiter.entries, 1)
}

func TestMemoryLimiterDefaults(t *testing.T) {
	limiter := NewMemoryLimiter(Config{})
	assert.Equal(t, 15*time.Minute, limiter.cfg.Window)
	assert.Equal(t, 1000, limiter.cfg.MaxMessages)
}

func TestKeyPrefersIdentity(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "login:a@x.com", Key("login", "a@x.com", now))
}

func TestKeyAnonymousBucketSharedWithinSlice(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	k1 := Key("login", "", base)
	k2 := Key("login", "", base.Add(time.Minute))
	k3 := Key("login", "", base.Add(6*time.Minute))

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
}
