package service

import (
	"errors"
	"fmt"

	"braincontrol/model"
)

// Error codes surfaced to procedure callers.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeValidation       = "BAD_REQUEST"
	CodeStoreUnavailable = "SERVICE_UNAVAILABLE"
)

// Error is a failed procedure call. Every error returned by this package is
// an *Error.
type Error struct {
	code    string
	message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}
	return e.message
}

func (e *Error) Code() string {
	return e.code
}

// Message is the caller-facing text without the wrapped cause.
func (e *Error) Message() string {
	return e.message
}

func (e *Error) Unwrap() error {
	return e.err
}

func NewNotFoundError(message string, cause error) error {
	return &Error{code: CodeNotFound, message: message, err: cause}
}

func NewValidationError(message string, cause error) error {
	return &Error{code: CodeValidation, message: message, err: cause}
}

func NewStoreUnavailableError(message string, cause error) error {
	return &Error{code: CodeStoreUnavailable, message: message, err: cause}
}

// Code reports the code of err, or CodeStoreUnavailable for errors that did
// not come from this package.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return CodeStoreUnavailable
}

func IsNotFound(err error) bool         { return err != nil && Code(err) == CodeNotFound }
func IsValidation(err error) bool       { return err != nil && Code(err) == CodeValidation }
func IsStoreUnavailable(err error) bool { return err != nil && Code(err) == CodeStoreUnavailable }

// storeError classifies an error coming back from the store.
func storeError(op string, err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return NewNotFoundError(op+": not found", err)
	}
	return NewStoreUnavailableError(op+": store unavailable", err)
}
