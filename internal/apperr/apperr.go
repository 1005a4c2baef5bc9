// Package apperr defines the error taxonomy shared by repositories and services.
// Handlers translate these kinds into HTTP status codes (see apierror.FromError).
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure by what the caller can do about it.
type Kind string

const (
	KindValidation Kind = "validation"
	KindDuplicate  Kind = "duplicate"
	KindNotFound   Kind = "not_found"
	KindStorage    Kind = "storage"
)

// Error is the canonical error wrapper.
type Error struct {
	Kind    Kind
	Op      string
	Entity  string
	Message string
	// Fields carries per-field detail for validation failures.
	Fields map[string]string
	// Transient marks storage failures that are safe to retry as-is.
	Transient bool
	Cause     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	if e.Message != "" {
		b.WriteString(e.Message)
	} else {
		b.WriteString(string(e.Kind))
	}
	if e.Cause != nil && e.Kind == KindStorage {
		fmt.Fprintf(&b, " (%v)", e.Cause)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Validation reports caller-fixable input problems. fields may be nil.
func Validation(op, msg string, fields map[string]string) error {
	return &Error{Kind: KindValidation, Op: op, Message: msg, Fields: fields}
}

// Duplicate reports a violated uniqueness rule on entity.
func Duplicate(op, entity, msg string, cause error) error {
	return &Error{Kind: KindDuplicate, Op: op, Entity: entity, Message: msg, Cause: cause}
}

// NotFound reports a missing referenced entity.
func NotFound(op, entity, msg string, cause error) error {
	return &Error{Kind: KindNotFound, Op: op, Entity: entity, Message: msg, Cause: cause}
}

// Storage wraps a backing-store failure. The message is never shown to clients.
func Storage(op, entity string, transient bool, cause error) error {
	return &Error{Kind: KindStorage, Op: op, Entity: entity, Message: "storage failure", Transient: transient, Cause: cause}
}

// KindOf returns the kind carried by err, or KindStorage for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

// Is reports whether err carries kind k.
func Is(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// Retryable reports whether err is a transient storage failure.
func Retryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindStorage && e.Transient
}

// As extracts the typed error when present.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
