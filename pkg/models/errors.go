package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry reports a malformed vertex or face record.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidFace reports a face with fewer than 3 indices or an index
	// past the loaded vertex list.
	ErrInvalidFace = errors.New("invalid face")
)

// ParseError locates a loader failure in the source text.
type ParseError struct {
	Line int // 1-based
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
