package services

import (
	"errors"
	"fmt"
)

var (
	// ErrSchema marks an input whose header lacks a required column or is absent.
	ErrSchema = errors.New("schema error")
	// ErrParse marks a row or field that cannot be read as its target type.
	ErrParse = errors.New("parse error")
)

// ParseError describes one field (or row) that failed to parse.
// Column is empty when the whole row is malformed.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: column %s: cannot parse %q: %v", e.Line, e.Column, e.Value, e.Err)
}

// Unwrap lets callers match both ErrParse and the underlying cause.
func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}
