package middleware

import (
	"context"
	"errors"
)

var ErrMissingSession = errors.New("missing session id")

// SessionResolver maps the session id a client sent to the id the idea store
// is keyed by.
type SessionResolver interface {
	Resolve(ctx context.Context, raw string) (string, error)
}

// FaceValueResolver trusts the client-supplied id as is.
type FaceValueResolver struct{}

func (FaceValueResolver) Resolve(_ context.Context, raw string) (string, error) {
	if raw == "" {
		return "", ErrMissingSession
	}
	return raw, nil
}
