package jiratime

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedToken is wrapped when a value is not a string token.
	ErrUnexpectedToken = errors.New("unexpected token")
	// ErrOffsetRange is wrapped when an offset cannot be rendered as ±HHMM.
	ErrOffsetRange = errors.New("offset out of range")
	// ErrLayoutZone is wrapped when a layout renders its own zone or offset.
	ErrLayoutZone = errors.New("layout must not contain a zone")
)

// FormatError reports a value that is not a valid JIRA timestamp, or a timestamp
// that cannot be rendered in the wire format.
type FormatError struct {
	Input string
	Token TokenKind
	Err   error
}

func (e *FormatError) Error() string {
	if e.Token != TokenString {
		return fmt.Sprintf("jiratime: expected string token, got %s: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("jiratime: invalid timestamp %q: %v", e.Input, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
