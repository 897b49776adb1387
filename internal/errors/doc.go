// Package errors provides structured, coded errors for sitekit.
//
// Validation failures of user input are not Go errors; they are reported as
// field states by the validate package. This package covers everything that
// can go wrong while setting a page up: malformed patterns or selectors,
// unreadable configuration, pages that fail to parse, forms that do not exist.
//
// # Error Codes
//
// Each error has a code (e.g., "E201") that maps to a category, a short
// message and a longer detail. Codes are grouped by range:
//
//   - E2xx: setup errors raised while binding behavior to a page
//   - E3xx: configuration errors
//   - E4xx: page loading errors
//
// # Usage
//
//	err := errors.New("E201").
//	    WithDetail(`pattern "[a-" on field "zip"`).
//	    Wrap(parseErr)
//
//	errors.PrintError(err)
package errors
