package stackaddr

import (
	"errors"
	"fmt"
)

// Common errors for stack address parsing and resolution.
var (
	// ErrMissingPart indicates a keyword's required following token was absent
	ErrMissingPart = errors.New("missing required part")

	// ErrInvalidEncoding indicates a base32/hex decode failure for an identity or MAC payload
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrInvalidAddress indicates a malformed IPv4/IPv6 literal
	ErrInvalidAddress = errors.New("invalid IP address")

	// ErrInvalidPort indicates a non-numeric or out-of-range port literal
	ErrInvalidPort = errors.New("invalid port")

	// ErrUnknownProtocol indicates an unrecognized keyword under the strict parse policy
	ErrUnknownProtocol = errors.New("unknown protocol")

	// ErrResolutionFailed indicates the name-resolution collaborator failed
	ErrResolutionFailed = errors.New("resolution failed")
)

// AddrError represents a stack address error with additional context.
type AddrError struct {
	Op    string // operation that caused the error
	Field string // failing field or token, if relevant
	Err   error  // underlying error
}

func (e *AddrError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("stackaddr %s %s: %v", e.Op, e.Field, e.Err)
	}
	return fmt.Sprintf("stackaddr %s: %v", e.Op, e.Err)
}

func (e *AddrError) Unwrap() error {
	return e.Err
}

// newAddrError creates a new AddrError.
func newAddrError(op, field string, err error) *AddrError {
	return &AddrError{
		Op:    op,
		Field: field,
		Err:   err,
	}
}
