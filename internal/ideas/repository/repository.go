package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ideagen/ideagen/backend/go-services/internal/ideas"
)

var (
	// ErrConflict is returned when an optimistic transaction keeps losing races.
	ErrConflict = errors.New("saved ideas changed concurrently, retries exhausted")
)

// Repository provides saved-idea persistence. Every operation first evicts
// ideas expired at now, then applies its effect atomically.
type Repository interface {
	List(ctx context.Context, sessionID string, now time.Time) (ideas.Result, error)
	Toggle(ctx context.Context, sessionID string, idea ideas.SavedIdea, now time.Time) (ideas.Result, error)
	Delete(ctx context.Context, sessionID, ideaID string, now time.Time) (ideas.Result, error)
	// Sweep evicts expired ideas without reading any session.
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// Options tune the store rules shared by all backends.
type Options struct {
	Capacity int
	TTL      time.Duration
}

func (o Options) withDefaults() Options {
	if o.Capacity <= 0 {
		o.Capacity = ideas.DefaultCapacity
	}
	if o.TTL <= 0 {
		o.TTL = ideas.DefaultTTL
	}
	return o
}
