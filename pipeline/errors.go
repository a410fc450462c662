package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies pipeline failures.
type Kind string

const (
	KindInvalidInput      Kind = "invalid_input"
	KindNotFound          Kind = "not_found"
	KindInsufficientInput Kind = "insufficient_input"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientInput = errors.New("insufficient input")
)

// Error carries the offending inputs and suggestions the caller can show
// to the user. It matches its Kind's sentinel with errors.Is.
type Error struct {
	Kind        Kind     `json:"kind"`
	Message     string   `json:"message"`
	Inputs      []string `json:"inputs,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func (e *Error) Error() string {
	if len(e.Inputs) == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, strings.Join(e.Inputs, ", "))
}

func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindInvalidInput:
		return ErrInvalidInput
	case KindNotFound:
		return ErrNotFound
	case KindInsufficientInput:
		return ErrInsufficientInput
	}
	return nil
}

func invalidInput(msg string, inputs, suggestions []string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg, Inputs: inputs, Suggestions: suggestions}
}

func notFound(msg string, inputs, suggestions []string) *Error {
	return &Error{Kind: KindNotFound, Message: msg, Inputs: inputs, Suggestions: suggestions}
}

func insufficientInput(msg string, inputs, suggestions []string) *Error {
	return &Error{Kind: KindInsufficientInput, Message: msg, Inputs: inputs, Suggestions: suggestions}
}
