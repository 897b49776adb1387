package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategorySetup  Category = "setup"
	CategoryConfig Category = "config"
	CategoryPage   Category = "page"
	CategoryCLI    Category = "cli"
)

// SiteError is a structured error with a code, a category and an optional cause.
type SiteError struct {
	// Code is a unique error identifier (e.g., "E201").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation, usually naming the offending input.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *SiteError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *SiteError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target carries the same code.
func (e *SiteError) Is(target error) bool {
	t, ok := target.(*SiteError)
	if !ok || t.Code == "" {
		return false
	}
	return e.Code == t.Code
}

// WithDetail adds a detailed explanation to the error.
func (e *SiteError) WithDetail(d string) *SiteError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detail to the error.
func (e *SiteError) WithDetailf(format string, args ...any) *SiteError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *SiteError) WithSuggestion(s string) *SiteError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *SiteError) Wrap(err error) *SiteError {
	e.Wrapped = err
	return e
}

// New creates a SiteError from a registered error code.
func New(code string) *SiteError {
	template, ok := registry[code]
	if !ok {
		return &SiteError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &SiteError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a new SiteError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *SiteError {
	return &SiteError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a SiteError.
func FromError(err error, code string) *SiteError {
	if err == nil {
		return nil
	}
	var se *SiteError
	if stderrors.As(err, &se) {
		return se
	}
	return New(code).Wrap(err)
}

// HasCode reports whether any error in err's chain is a SiteError with code.
func HasCode(err error, code string) bool {
	return stderrors.Is(err, &SiteError{Code: code})
}

// Code returns the code of the first SiteError in err's chain, or "".
func Code(err error) string {
	var se *SiteError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}
