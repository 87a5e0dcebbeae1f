package model

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrParse      = errors.New("parse failed")
)

// ValidationError reports a quote field that was left empty.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s must not be empty", ErrValidation, e.Field)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ParseError wraps a decoding failure of persisted, imported or fetched JSON.
type ParseError struct {
	Source string // "storage", "import", "remote"
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrParse, e.Source, e.Err)
}

// Is lets errors.Is match both ErrParse and the wrapped decoder error.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
