// Package fabricerr defines the error kinds every generation stage reports.
//
// The generator never recovers from a configuration or invariant error within
// a run; the kinds only tell the outer orchestrator (and the CLI exit path)
// what class of defect stopped the run. Callers match on kind with errors.Is:
//
//	if errors.Is(err, fabricerr.ErrBounds) { ... }
package fabricerr

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig marks an unsupported or inconsistent architecture description.
	ErrConfig = errors.New("configuration error")
	// ErrInvariant marks a broken internal invariant, which points at a
	// build-time or architecture-description defect.
	ErrInvariant = errors.New("invariant violation")
	// ErrBounds marks an index outside its declared range.
	ErrBounds = errors.New("bounds violation")
)

// Error carries the kind, the failing operation, and the offending subject
// (model, side, technology, tile, ...).
type Error struct {
	Kind    error
	Op      string
	Subject string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Subject != "" {
		msg += fmt.Sprintf(" (%s)", e.Subject)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Config builds an ErrConfig error.
func Config(op, subject, format string, args ...any) error {
	return &Error{Kind: ErrConfig, Op: op, Subject: subject, Err: fmt.Errorf(format, args...)}
}

// Invariant builds an ErrInvariant error.
func Invariant(op, subject, format string, args ...any) error {
	return &Error{Kind: ErrInvariant, Op: op, Subject: subject, Err: fmt.Errorf(format, args...)}
}

// Bounds builds an ErrBounds error.
func Bounds(op, subject, format string, args ...any) error {
	return &Error{Kind: ErrBounds, Op: op, Subject: subject, Err: fmt.Errorf(format, args...)}
}

// Subject returns the offending subject of the first *Error in err's chain,
// or "" when there is none.
func Subject(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Subject
	}
	return ""
}
