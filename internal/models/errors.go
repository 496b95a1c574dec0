package models

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrUnsupportedPlatform ErrorType = iota
	ErrRepositoryUnreachable
	ErrProbeFailure
	ErrInvalidPlatform
	ErrInvalidConfig
	ErrIndex
	ErrSignature
	ErrFileOp
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrUnsupportedPlatform:
		return "UnsupportedPlatform"
	case ErrRepositoryUnreachable:
		return "RepositoryUnreachable"
	case ErrProbeFailure:
		return "ProbeFailure"
	case ErrInvalidPlatform:
		return "InvalidPlatform"
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrIndex:
		return "Index"
	case ErrSignature:
		return "Signature"
	case ErrFileOp:
		return "FileOp"
	default:
		return "Unknown"
	}
}

// Error represents a failure while resolving repository conventions
type Error struct {
	Type     ErrorType
	Platform string
	Err      error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Platform != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Platform, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same type, so callers can
// match with errors.Is(err, &models.Error{Type: models.ErrProbeFailure}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// NewError builds an *Error with a formatted message
func NewError(t ErrorType, platform string, format string, args ...interface{}) *Error {
	return &Error{
		Type:     t,
		Platform: platform,
		Err:      fmt.Errorf(format, args...),
	}
}

// IsType reports whether err, or anything it wraps, is an *Error of type t
func IsType(err error, t ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == t
}
