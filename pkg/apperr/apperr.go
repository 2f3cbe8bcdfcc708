// Package apperr defines the service error taxonomy and its HTTP mapping.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind is the category of an application error.
type Kind string

const (
	KindInvalidRequest   Kind = "invalid_request"
	KindUnauthorized     Kind = "unauthorized"
	KindForbidden        Kind = "forbidden"
	KindInvalidCategory  Kind = "invalid_category"
	KindUpstreamFailure  Kind = "upstream_failure"
	KindUpstreamRejected Kind = "upstream_rejected"
	KindTimeout          Kind = "timeout"
	KindInternal         Kind = "internal"
)

// Sentinels for errors.Is checks; any *Error with the same Kind matches.
var (
	ErrInvalidRequest   = &Error{Kind: KindInvalidRequest}
	ErrUnauthorized     = &Error{Kind: KindUnauthorized}
	ErrForbidden        = &Error{Kind: KindForbidden}
	ErrInvalidCategory  = &Error{Kind: KindInvalidCategory}
	ErrUpstreamFailure  = &Error{Kind: KindUpstreamFailure}
	ErrUpstreamRejected = &Error{Kind: KindUpstreamRejected}
	ErrTimeout          = &Error{Kind: KindTimeout}
)

// Error is an application error carrying the HTTP status it maps to.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Cause   error
}

// New creates an error of the given kind with the kind's default status.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Status: defaultStatus(kind)}
}

// Wrap is New with a cause attached.
func Wrap(kind Kind, msg string, cause error) *Error {
	e := New(kind, msg)
	e.Cause = cause
	return e
}

// WithStatus overrides the HTTP status, e.g. to mirror an upstream 401/403.
func (e *Error) WithStatus(status int) *Error {
	e.Status = status
	return e
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func defaultStatus(kind Kind) int {
	switch kind {
	case KindInvalidRequest, KindInvalidCategory:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// StatusCode returns the HTTP status for err; unknown errors are 500.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Status != 0 {
		return e.Status
	}
	return http.StatusInternalServerError
}

// KindOf returns the error kind, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the client-facing message; internals are not leaked.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "internal server error"
}

// JSON aborts the request with {error, kind} and the mapped status.
func JSON(c *gin.Context, err error) {
	c.AbortWithStatusJSON(StatusCode(err), gin.H{"error": Message(err), "kind": KindOf(err)})
}
