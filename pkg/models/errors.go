package models

import (
	"errors"
	"fmt"
)

var (
	ErrDecode  = errors.New("payload decode failed")
	ErrToolkit = errors.New("toolkit failed")
)

// DecodeError is returned when a request payload is not valid base64 or
// does not decode to valid UTF-8.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid payload: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid payload: %s", e.Reason)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrDecode, e.Err}
	}
	return []error{ErrDecode}
}

func NewDecodeError(reason string, err error) error {
	return &DecodeError{Reason: reason, Err: err}
}

// ToolkitError carries a failure raised by the linguistic toolkit. Stage
// names the step that failed (tokenize, tag or chunk).
type ToolkitError struct {
	Stage string
	Err   error
}

func (e *ToolkitError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *ToolkitError) Unwrap() []error {
	return []error{ErrToolkit, e.Err}
}

func NewToolkitError(stage string, err error) error {
	return &ToolkitError{Stage: stage, Err: err}
}
