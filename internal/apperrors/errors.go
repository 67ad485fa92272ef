// Package apperrors defines the typed error kinds shared across gptty.
//
// Each kind gets its own file and constructor. The kinds carry no
// transport framing of their own; the TUI surfaces them as a bottom
// alert line, and the CLI prints them to stderr.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind identifies which of the taxonomy's error categories an error belongs to.
type Kind string

const (
	KindTransport Kind = "transport"
	KindParse     Kind = "parse"
	KindStore     Kind = "store"
	KindState     Kind = "state"
	KindConfig    Kind = "config"
	KindIO        Kind = "io"
	KindChannel   Kind = "channel"
)

// Error is the common shape for every gptty error: a kind, a message, and
// an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the Kind of err if it (or something it wraps) is an *Error,
// and ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// Is reports whether err is (or wraps) an *Error of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
