// Package problem defines the structural error taxonomy shared by every
// configuration component, plus the non-fatal warnings surfaced next to it.
package problem

import (
	"errors"
	"fmt"
)

// Kind identifies a class of configuration error.
type Kind string

// Error kinds. All of them are detected before any generation work begins.
const (
	InvalidTokenValue      Kind = "InvalidTokenValue"
	InvalidCategoryName    Kind = "InvalidCategoryName"
	InvalidPattern         Kind = "InvalidPattern"
	PathEscape             Kind = "PathEscape"
	UnknownModeStrategy    Kind = "UnknownModeStrategy"
	DuplicatePlugin        Kind = "DuplicatePlugin"
	InvalidPluginReference Kind = "InvalidPluginReference"
	EmptyTheme             Kind = "EmptyTheme"
)

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrInvalidTokenValue      = &Error{Kind: InvalidTokenValue}
	ErrInvalidCategoryName    = &Error{Kind: InvalidCategoryName}
	ErrInvalidPattern         = &Error{Kind: InvalidPattern}
	ErrPathEscape             = &Error{Kind: PathEscape}
	ErrUnknownModeStrategy    = &Error{Kind: UnknownModeStrategy}
	ErrDuplicatePlugin        = &Error{Kind: DuplicatePlugin}
	ErrInvalidPluginReference = &Error{Kind: InvalidPluginReference}
	ErrEmptyTheme             = &Error{Kind: EmptyTheme}
)

// Error is a single structural configuration error.
type Error struct {
	Kind    Kind   // "PathEscape"
	Subject string // What was rejected: a pattern, token path, plugin name
	Detail  string // "resolves outside root"
	Err     error  // Optional underlying cause
}

// New builds an Error with a formatted detail message.
func New(kind Kind, subject, format string, args ...any) *Error {
	return &Error{Kind: kind, Subject: subject, Detail: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error that keeps cause reachable through errors.Unwrap.
func Wrap(kind Kind, subject string, cause error) *Error {
	return &Error{Kind: kind, Subject: subject, Detail: cause.Error(), Err: cause}
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Subject != "" {
		msg += ": " + fmt.Sprintf("%q", e.Subject)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Subject == "" && t.Detail == ""
}

// KindOf returns the kind of the first *Error found in err's tree.
func KindOf(err error) (Kind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return "", false
}

// Flatten expands errors.Join trees into their leaf errors, keeping order.
// A nil err yields nil.
func Flatten(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, Flatten(e)...)
		}
		return out
	}
	return []error{err}
}

// Warning codes
const (
	WarnEmptyContent = "EmptyContent"
)

// Warning is a non-fatal condition: likely a misconfiguration, but not an
// invalid one.
type Warning struct {
	Code    string
	Message string
}

func (w Warning) String() string {
	return w.Code + ": " + w.Message
}
