package ideas

import (
	"errors"
	"sort"
	"time"
)

// ErrIncompleteIdea is returned when an idea to be inserted lacks id, title or category.
var ErrIncompleteIdea = errors.New("idea id, title and category are required")

// The functions below implement the store rules over a flat slice kept in
// insertion order. Backends own locking/transactions and call these inside a
// single critical section. None of them mutate their input.

// Expired reports whether idea has reached ttl at now.
func Expired(idea SavedIdea, now time.Time, ttl time.Duration) bool {
	return now.UnixMilli()-idea.Timestamp >= ttl.Milliseconds()
}

// Evict drops expired ideas across all sessions.
func Evict(items []SavedIdea, now time.Time, ttl time.Duration) ([]SavedIdea, int) {
	out := make([]SavedIdea, 0, len(items))
	for _, it := range items {
		if !Expired(it, now, ttl) {
			out = append(out, it)
		}
	}
	return out, len(items) - len(out)
}

// newestFirst returns the indexes of sessionID's ideas ordered by descending
// timestamp; equal timestamps put the later insert first.
func newestFirst(items []SavedIdea, sessionID string) []int {
	idx := make([]int, 0)
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].SessionID == sessionID {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return items[idx[a]].Timestamp > items[idx[b]].Timestamp
	})
	return idx
}

// Session returns sessionID's ideas, newest first. Never nil.
func Session(items []SavedIdea, sessionID string) []SavedIdea {
	idx := newestFirst(items, sessionID)
	out := make([]SavedIdea, 0, len(idx))
	for _, i := range idx {
		out = append(out, items[i])
	}
	return out
}

// Toggle removes the session's idea with equal content if there is one,
// otherwise inserts idea stamped with now and caps the session to capacity.
// Only the insert path needs id, title and category.
func Toggle(items []SavedIdea, sessionID string, idea SavedIdea, now time.Time, capacity int) ([]SavedIdea, Result, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	for i, it := range items {
		if it.SessionID == sessionID && it.Content == idea.Content {
			out := make([]SavedIdea, 0, len(items)-1)
			out = append(out, items[:i]...)
			out = append(out, items[i+1:]...)
			return out, Result{Ideas: Session(out, sessionID), Removed: true}, nil
		}
	}
	if idea.ID == "" || idea.Title == "" || idea.Category == "" {
		return items, Result{}, ErrIncompleteIdea
	}

	idea.SessionID = sessionID
	idea.Timestamp = now.UnixMilli()
	out := make([]SavedIdea, 0, len(items)+1)
	out = append(out, items...)
	out = append(out, idea)

	res := Result{Saved: true}
	if idx := newestFirst(out, sessionID); len(idx) > capacity {
		drop := make(map[int]struct{}, len(idx)-capacity)
		for _, i := range idx[capacity:] {
			drop[i] = struct{}{}
		}
		kept := make([]SavedIdea, 0, len(out)-len(drop))
		for i, it := range out {
			if _, ok := drop[i]; !ok {
				kept = append(kept, it)
			}
		}
		out = kept
		res.Capped = len(drop)
	}
	res.Ideas = Session(out, sessionID)
	return out, res, nil
}

// Remove deletes the idea matching both sessionID and ideaID, if present.
func Remove(items []SavedIdea, sessionID, ideaID string) ([]SavedIdea, bool) {
	out := make([]SavedIdea, 0, len(items))
	removed := false
	for _, it := range items {
		if it.SessionID == sessionID && it.ID == ideaID {
			removed = true
			continue
		}
		out = append(out, it)
	}
	return out, removed
}
