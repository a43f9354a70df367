package ratelimit

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/spec-kit/auth-service/pkg/util"
)

// anonymousBucket is the slice width for callers with no stable identity.
const anonymousBucket = 5 * time.Minute

// Limiter admits or rejects a message under the configured fixed window.
// Rejection surfaces as a distinguished RATE_LIMITED domain error, never a
// silent drop.
type Limiter interface {
	Admit(ctx context.Context, key string, now time.Time) error
}

// Config holds fixed-window parameters.
type Config struct {
	Window      time.Duration
	MaxMessages int
}

// Key derives the admission key for a message. A caller-supplied stable
// identity isolates per-identity abuse; without one, all anonymous callers in
// the same 5-minute slice share a coarse bucket. The coarseness is deliberate.
func Key(pattern, identity string, now time.Time) string {
	if identity != "" {
		return pattern + ":" + identity
	}
	bucket := now.UnixMilli() / anonymousBucket.Milliseconds()
	return pattern + ":" + strconv.FormatInt(bucket, 10)
}

type entry struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is the default in-process implementation. A single mutex makes
// the check-then-increment sequence strictly atomic under concurrent messages.
type MemoryLimiter struct {
	mu      sync.Mutex
	cfg     Config
	entries map[string]*entry
}

// NewMemoryLimiter builds an in-memory fixed-window limiter.
func NewMemoryLimiter(cfg Config) *MemoryLimiter {
	if cfg.Window <= 0 {
		cfg.Window = 15 * time.Minute
	}
	if cfg.MaxMessages <= 0 {
		cfg.MaxMessages = 1000
	}
	return &MemoryLimiter{cfg: cfg, entries: make(map[string]*entry)}
}

// Admit applies the window state machine for the key. Expired entries are
// swept opportunistically on every check; the map is bounded by the number of
// distinct keys seen within one window.
func (l *MemoryLimiter) Admit(_ context.Context, key string, now time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for k, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, k)
		}
	}

	e, ok := l.entries[key]
	if !ok || now.After(e.resetAt) {
		l.entries[key] = &entry{count: 1, resetAt: now.Add(l.cfg.Window)}
		return nil
	}

	e.count++
	if e.count > l.cfg.MaxMessages {
		return util.NewRateLimited()
	}
	return nil
}
