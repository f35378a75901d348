// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Kind tags an error with its place in the failure taxonomy. Every error
// crossing a public boundary of the classifier, engine, or storage layer
// carries exactly one kind.
type Kind string

// Failure kinds.
const (
	KindDecode           Kind = "decode_error"
	KindModelUnavailable Kind = "model_unavailable"
	KindValidation       Kind = "validation_error"
	KindPersistence      Kind = "persistence_error"
	KindInternal         Kind = "internal_error"
)

// Common application errors.
var (
	ErrNotFound       = errors.New("not found")
	ErrModelNotLoaded = errors.New("model not loaded")
	ErrMissingConfig  = errors.New("missing configuration")
)

// TaggedError pairs a failure kind with a human-readable cause.
type TaggedError struct {
	Err     error
	Message string
	Kind    Kind
}

func (e *TaggedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TaggedError) Unwrap() error {
	return e.Err
}

// E builds a tagged error. err may be nil when the message stands alone.
func E(kind Kind, message string, err error) error {
	return &TaggedError{Kind: kind, Message: message, Err: err}
}

// Ef builds a tagged error with a formatted message and no wrapped cause.
func Ef(kind Kind, format string, args ...any) error {
	return &TaggedError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf classifies an error. Untagged errors fall through to
// KindInternal so callers always have a kind to report.
func KindOf(err error) Kind {
	var tagged *TaggedError
	if errors.As(err, &tagged) {
		return tagged.Kind
	}
	return KindInternal
}
