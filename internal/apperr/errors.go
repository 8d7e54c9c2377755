// Package apperr defines the error kinds surfaced to the command line.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind string

const (
	MissingCredential Kind = "missing_credential"
	NotFound          Kind = "not_found"
	NotAFile          Kind = "not_a_file"
	DirNotFound       Kind = "dir_not_found"
	NoCandidates      Kind = "no_candidates"
	EmptyInput        Kind = "empty_input"
	ClientUnavailable Kind = "client_unavailable"
	EmptyResponse     Kind = "empty_response"
	InvalidConfig     Kind = "invalid_config"
)

// Error carries a Kind plus enough context for a one-line diagnostic.
type Error struct {
	Kind    Kind
	Message string
	// Path is the file or directory involved, when there is one.
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an Error of kind k.
func New(k Kind, msg string) *Error {
	return &Error{Kind: k, Message: msg}
}

// WithPath returns an Error of kind k about path.
func WithPath(k Kind, msg, path string) *Error {
	return &Error{Kind: k, Message: msg, Path: path}
}

// Wrap returns an Error of kind k wrapping err.
func Wrap(k Kind, msg string, err error) *Error {
	return &Error{Kind: k, Message: msg, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err's chain contains an *Error of kind k.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
