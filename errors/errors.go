// Package errors provides error handling for acceptmark.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints attached to failures
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := writer.WriteText(path, src); err != nil {
//	    return errors.Wrapf(err, "failed to write %s", path)
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "create the output directory first")
//
//	// Check errors
//	if errors.Is(err, errors.ErrMalformedSpec) {
//	    // skip this specification
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Join         = crdb.Join
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	FlattenHints  = crdb.FlattenHints
	GetAllDetails = crdb.GetAllDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the generation pipeline.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrMalformedSpec indicates a specification whose test cases do not
	// bind exactly the declared variables, or whose identity is incomplete
	ErrMalformedSpec = New("malformed specification")

	// ErrDuplicatePrefix indicates two specifications in one batch resolve
	// to the same identifier prefix or the same output file
	ErrDuplicatePrefix = New("duplicate identifier prefix")

	// ErrWriteFailure indicates a generated unit could not be persisted
	ErrWriteFailure = New("write failure")

	// ErrStale indicates generated output on disk differs from what the
	// current specifications produce
	ErrStale = New("generated output is out of date")
)

// IsMalformedSpec checks if an error is or wraps ErrMalformedSpec
func IsMalformedSpec(err error) bool {
	return err != nil && Is(err, ErrMalformedSpec)
}

// IsDuplicatePrefix checks if an error is or wraps ErrDuplicatePrefix
func IsDuplicatePrefix(err error) bool {
	return err != nil && Is(err, ErrDuplicatePrefix)
}

// IsWriteFailure checks if an error is or wraps ErrWriteFailure
func IsWriteFailure(err error) bool {
	return err != nil && Is(err, ErrWriteFailure)
}

// NewMalformedSpecError creates a malformed-specification error with a formatted message
func NewMalformedSpecError(format string, args ...interface{}) error {
	return Wrap(ErrMalformedSpec, Newf(format, args...).Error())
}

// NewDuplicatePrefixError creates a duplicate-prefix error with a formatted message
func NewDuplicatePrefixError(format string, args ...interface{}) error {
	return Wrap(ErrDuplicatePrefix, Newf(format, args...).Error())
}

// WrapWriteFailure marks err as a write failure for the given path
func WrapWriteFailure(err error, path string) error {
	return Wrapf(Mark(err, ErrWriteFailure), "failed to write %s", path)
}
