package store

import (
	"errors"
	"fmt"
)

// ParseErrorCode categorizes malformed rows.
type ParseErrorCode string

const (
	// ErrCodeShortRow indicates a row with fewer columns than the format requires.
	ErrCodeShortRow ParseErrorCode = "SHORT_ROW"

	// ErrCodeBadNumber indicates a numeric column that does not hold an integer.
	ErrCodeBadNumber ParseErrorCode = "BAD_NUMBER"
)

// ParseError reports a malformed source row. A ParseError aborts the whole load.
type ParseError struct {
	// Code identifies the error category.
	Code ParseErrorCode

	// Source names the input (file path), if known.
	Source string

	// Line is the 1-based line number in the input; the header is line 1.
	// Zero when the row was parsed outside a load.
	Line int

	// Column is the 0-based column index, or -1 when the whole row is at fault.
	Column int

	// Field is the column name, e.g. "model_year".
	Field string

	// Value is the offending raw text.
	Value string

	// Err is the underlying conversion error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	loc := e.Source
	if e.Line > 0 {
		if loc == "" {
			loc = fmt.Sprintf("line %d", e.Line)
		} else {
			loc = fmt.Sprintf("%s:%d", loc, e.Line)
		}
	}

	var msg string
	switch e.Code {
	case ErrCodeShortRow:
		msg = fmt.Sprintf("%s: expected at least %d columns, got %s", e.Code, minColumns, e.Value)
	default:
		msg = fmt.Sprintf("%s: column %d (%s): invalid integer %q", e.Code, e.Column, e.Field, e.Value)
	}

	if loc == "" {
		return msg
	}
	return loc + ": " + msg
}

// Unwrap returns the underlying conversion error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError returns true if err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
