package ratelimit

import (
	"context"
	"fmt"
	"time"

	"pnw_targets/internal/app"
	"pnw_targets/internal/config"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Limiter allows each requester a fixed number of searches per rolling window.
// A rejected search is refused outright, never queued.
type Limiter struct {
	store       Store
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

// NewLimiter creates a Limiter over store
func NewLimiter(store Store, cfg config.QuotaConfig) *Limiter {
	return &Limiter{
		store:       store,
		maxRequests: cfg.MaxRequests,
		window:      cfg.Window,
		now:         time.Now,
	}
}

// WithClock replaces the wall clock
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

// Reservation is one search held against a requester's quota while it runs
type Reservation struct {
	NationID int
	Entry    Entry
}

// Reserve takes one search from nationID's quota, or fails with
// app.ErrRateLimit when none is left. Concurrent callers never share a slot.
func (l *Limiter) Reserve(ctx context.Context, nationID int) (Reservation, error) {
	r := Reservation{
		NationID: nationID,
		Entry:    Entry{ID: uuid.NewString(), At: l.now()},
	}

	ok, err := l.store.Reserve(ctx, nationID, r.Entry.At.Add(-l.window), r.Entry, l.maxRequests)
	if err != nil {
		return Reservation{}, fmt.Errorf("failed to check rate limit: %w", err)
	}

	log.Debug().
		Int("nation_id", nationID).
		Bool("allowed", ok).
		Int("max_allowed", l.maxRequests).
		Msg("Rate limit check")

	if !ok {
		log.Warn().Int("nation_id", nationID).Msg("Rate limit exceeded")
		return Reservation{}, fmt.Errorf("%w for Nation ID %d. Only %d requests allowed per %s.",
			app.ErrRateLimit, nationID, l.maxRequests, windowText(l.window))
	}
	return r, nil
}

// Release hands a reserved search back, for searches that failed
func (l *Limiter) Release(ctx context.Context, r Reservation) error {
	if err := l.store.Release(ctx, r.NationID, r.Entry.ID); err != nil {
		return fmt.Errorf("failed to release search: %w", err)
	}
	log.Debug().Int("nation_id", r.NationID).Msg("Search released")
	return nil
}

// Remaining returns how many searches nationID may still make in the current window
func (l *Limiter) Remaining(ctx context.Context, nationID int) (int, error) {
	used, err := l.used(ctx, nationID)
	if err != nil {
		return 0, err
	}
	return max(0, l.maxRequests-used), nil
}

func (l *Limiter) used(ctx context.Context, nationID int) (int, error) {
	used, err := l.store.Count(ctx, nationID, l.now().Add(-l.window))
	if err != nil {
		return 0, fmt.Errorf("failed to check rate limit: %w", err)
	}
	return used, nil
}

func windowText(window time.Duration) string {
	if window%time.Hour == 0 {
		return fmt.Sprintf("%d hours", int(window.Hours()))
	}
	return window.String()
}
