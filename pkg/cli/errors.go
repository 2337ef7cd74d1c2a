// Package cli defines the error kinds and process exit codes shared by the
// conacct commands.
package cli

import (
	"errors"
	"fmt"
)

// Exit codes for the conacct process.
const (
	ExitOK                = 0
	ExitError             = 1
	ExitUsage             = 2
	ExitMissingDependency = 3
)

// Kind classifies an error for exit-code mapping.
type Kind int

const (
	// KindGeneral covers API failures, unreadable env files, and anything
	// else that aborts a run without being a usage mistake.
	KindGeneral Kind = iota
	// KindUsage marks missing or invalid command-line arguments.
	KindUsage
	// KindMissingDependency marks an absent external capability. The HTTP
	// client and JSON codec are compiled into this binary, so the kind is
	// declared for taxonomy completeness but never produced.
	KindMissingDependency
	// KindMalformedToken marks an access token whose payload segment could
	// not be decoded.
	KindMalformedToken
	// KindInsufficientScope marks a token missing the required scope.
	KindInsufficientScope
	// KindMissingIssuer marks a token with no usable iss claim.
	KindMissingIssuer
	// KindHTTP marks a non-2xx API response.
	KindHTTP
)

// ExitCode returns the process exit status for the kind.
func (k Kind) ExitCode() int {
	switch k {
	case KindUsage:
		return ExitUsage
	case KindMissingDependency:
		return ExitMissingDependency
	default:
		return ExitError
	}
}

// Error pairs an underlying error with its kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Wrap tags err with a kind. Returns nil when err is nil.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// Errorf builds a kinded error from a format string.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf reports the kind of err, defaulting to KindGeneral for untagged
// errors.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindGeneral
}

// ExitCode maps err to a process exit status. A nil err is success.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	return KindOf(err).ExitCode()
}
