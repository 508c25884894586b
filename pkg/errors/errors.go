package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for propagation policy decisions.
type Kind string

const (
	KindParse      Kind = "parse"
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindIO         Kind = "io"
	KindAuth       Kind = "auth"
	KindInternal   Kind = "internal"
)

// Error represents a typed domain error.
type Error struct {
	Code    string `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, kind Kind, message string) *Error {
	return &Error{Code: code, Kind: kind, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, kind Kind, message string) *Error {
	return &Error{Code: code, Kind: kind, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrParse              = New("PARSE_ERROR", KindParse, "malformed record")
	ErrValidation         = New("VALIDATION_ERROR", KindValidation, "validation failed")
	ErrNotFound           = New("NOT_FOUND", KindNotFound, "record not found")
	ErrConflict           = New("CONFLICT", KindConflict, "conflict")
	ErrIO                 = New("IO_FAILURE", KindIO, "file operation failed")
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", KindAuth, "invalid id or password")
	ErrAccountLocked      = New("ACCOUNT_LOCKED", KindAuth, "account is locked after repeated failures")
	ErrInternal           = New("INTERNAL_ERROR", KindInternal, "internal error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Kind, ErrInternal.Message)
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	e := FromError(err)
	return e != nil && e.Kind == kind
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
