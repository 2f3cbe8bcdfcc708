package ideas

import "time"

// SavedIdea is one generation result a session has liked.
// Timestamp is epoch milliseconds and is always assigned server-side.
type SavedIdea struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	Timestamp int64  `json:"timestamp"`
	SessionID string `json:"sessionId"`
}

// Result is the outcome of a store operation: the session's ideas, newest
// first, plus what the operation did.
type Result struct {
	Ideas   []SavedIdea
	Saved   bool
	Removed bool
	Expired int
	Capped  int
}

const (
	DefaultCapacity = 10
	DefaultTTL      = 24 * time.Hour
)
