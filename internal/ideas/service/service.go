package service

import (
	"context"
	"errors"
	"time"

	"github.com/ideagen/ideagen/backend/go-services/internal/ideas"
	"github.com/ideagen/ideagen/backend/go-services/internal/ideas/repository"
	"github.com/ideagen/ideagen/backend/go-services/pkg/apperr"
	"github.com/ideagen/ideagen/backend/go-services/pkg/logger"
	"github.com/ideagen/ideagen/backend/go-services/pkg/metrics"
)

// Service wraps repository operations with request validation, the clock
// and metrics. It is constructed once per process and shared by handlers.
type Service struct {
	repo repository.Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(repo repository.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// List returns the session's saved ideas, newest first.
func (s *Service) List(ctx context.Context, sessionID string) ([]ideas.SavedIdea, error) {
	if sessionID == "" {
		return nil, apperr.New(apperr.KindInvalidRequest, "Session ID is required")
	}
	res, err := s.repo.List(ctx, sessionID, s.now())
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to load ideas", err)
	}
	s.record(res)
	return res.Ideas, nil
}

// Toggle saves idea for the session, or removes it when the session already
// holds an idea with the same content.
func (s *Service) Toggle(ctx context.Context, sessionID string, idea *ideas.SavedIdea) (ideas.Result, error) {
	if sessionID == "" || idea == nil || idea.Content == "" {
		return ideas.Result{}, apperr.New(apperr.KindInvalidRequest, "Session ID and idea are required")
	}
	res, err := s.repo.Toggle(ctx, sessionID, *idea, s.now())
	if err != nil {
		if errors.Is(err, ideas.ErrIncompleteIdea) {
			return ideas.Result{}, apperr.Wrap(apperr.KindInvalidRequest, "Idea id, title and category are required", err)
		}
		return ideas.Result{}, apperr.Wrap(apperr.KindInternal, "Failed to save idea", err)
	}
	s.record(res)
	if res.Saved {
		metrics.IdeasToggled.WithLabelValues("saved").Inc()
	} else {
		metrics.IdeasToggled.WithLabelValues("removed").Inc()
	}
	return res, nil
}

// Delete removes one idea by id; deleting a missing id is not an error.
func (s *Service) Delete(ctx context.Context, sessionID, ideaID string) ([]ideas.SavedIdea, error) {
	if sessionID == "" || ideaID == "" {
		return nil, apperr.New(apperr.KindInvalidRequest, "Session ID and idea ID are required")
	}
	res, err := s.repo.Delete(ctx, sessionID, ideaID, s.now())
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to delete idea", err)
	}
	s.record(res)
	if res.Removed {
		metrics.IdeasDeleted.Inc()
	}
	return res.Ideas, nil
}

// RunSweeper evicts expired ideas every interval until ctx is done.
// Sessions that are never read again are only reclaimed here.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.repo.Sweep(ctx, s.now())
			if err != nil {
				logger.Warnf("saved ideas sweep failed: %v", err)
				continue
			}
			if n > 0 {
				metrics.IdeasEvicted.WithLabelValues("ttl").Add(float64(n))
				logger.Debugf("saved ideas sweep evicted %d", n)
			}
		}
	}
}

func (s *Service) record(res ideas.Result) {
	if res.Expired > 0 {
		metrics.IdeasEvicted.WithLabelValues("ttl").Add(float64(res.Expired))
	}
	if res.Capped > 0 {
		metrics.IdeasEvicted.WithLabelValues("cap").Add(float64(res.Capped))
		logger.Debugf("saved ideas cap evicted %d", res.Capped)
	}
}
