// Package steamid - errors.go provides the error types returned by the codec.
//
// Every recoverable failure is a *ParseError carrying the original input and
// the validity rule it broke. *InvariantError is only ever used as a panic
// value for states that construction makes impossible.

package steamid

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks. *ParseError unwraps to one of these.
var (
	// ErrOutOfRange is returned when a well-formed value falls outside
	// (Offset, Max], directly or after community-number conversion.
	ErrOutOfRange = errors.New("steamid out of range")

	// ErrUnrecognizedFormat is returned when the input matches no accepted form.
	ErrUnrecognizedFormat = errors.New("unrecognized steamid format")
)

// ============================================================================
// Custom Error Types
// ============================================================================

// Rule names the validity rule a rejected input violated.
type Rule int

const (
	// RuleOutOfRange64 is a packed value outside (Offset, Max].
	RuleOutOfRange64 Rule = iota

	// RuleOutOfRange32 is a community number whose packed value would fall
	// outside (Offset, Max], or that does not fit in 32 bits.
	RuleOutOfRange32

	// RuleUnrecognizedFormat is an input that is none of the accepted shapes.
	RuleUnrecognizedFormat
)

// String returns a stable, log-friendly rule name.
func (r Rule) String() string {
	switch r {
	case RuleOutOfRange64:
		return "out_of_range_64"
	case RuleOutOfRange32:
		return "out_of_range_32"
	case RuleUnrecognizedFormat:
		return "unrecognized_format"
	default:
		return "unknown_rule"
	}
}

// ParseError describes a rejected input.
//
// Example usage:
//
//	id, err := steamid.Parse(raw)
//	if err != nil {
//	    var parseErr *steamid.ParseError
//	    if errors.As(err, &parseErr) {
//	        log.Warn("bad steamid",
//	            "input", parseErr.Input,
//	            "rule", parseErr.Rule)
//	    }
//	}
type ParseError struct {
	// Input is the original string, unmodified.
	Input string

	// Rule is the validity rule that failed.
	Rule Rule

	// Value is the numeric candidate that was rejected, when one could be
	// decoded: the packed value for RuleOutOfRange64, the community number
	// for RuleOutOfRange32. Zero when the number itself overflowed.
	Value uint64
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch e.Rule {
	case RuleOutOfRange64:
		return fmt.Sprintf("steamid %q out of range: packed value must be in (%d, %d]",
			e.Input, Offset, Max)
	case RuleOutOfRange32:
		return fmt.Sprintf("steamid %q out of range: community number must be in [1, %d]",
			e.Input, uint64(MaxCommunityNumber))
	default:
		return fmt.Sprintf("steamid %q: unrecognized format", e.Input)
	}
}

// Unwrap returns ErrOutOfRange or ErrUnrecognizedFormat for errors.Is().
func (e *ParseError) Unwrap() error {
	if e.Rule == RuleUnrecognizedFormat {
		return ErrUnrecognizedFormat
	}
	return ErrOutOfRange
}

// OutOfRange reports whether the input was well-formed but out of bounds.
func (e *ParseError) OutOfRange() bool {
	return e.Rule == RuleOutOfRange64 || e.Rule == RuleOutOfRange32
}

// InvariantError reports a field holding a value construction should have
// made impossible. It is raised with panic, never returned.
type InvariantError struct {
	// Field is the field that failed ("universe" or "account_type").
	Field string

	// Value is the out-of-enumeration field value.
	Value uint64

	// Packed is the identifier the field was read from.
	Packed uint64
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("steamid invariant violated: %s=%d in packed value %d",
		e.Field, e.Value, e.Packed)
}

// ============================================================================
// Error Helper Functions
// ============================================================================

// IsParseError checks if an error is or wraps a ParseError.
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// GetParseError extracts the ParseError from an error chain.
//
// Example:
//
//	if parseErr, ok := steamid.GetParseError(err); ok {
//	    fmt.Printf("rejected %q (%s)\n", parseErr.Input, parseErr.Rule)
//	}
func GetParseError(err error) (*ParseError, bool) {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr, true
	}
	return nil, false
}

func newRangeError(input string, rule Rule, value uint64) *ParseError {
	return &ParseError{
		Input: input,
		Rule:  rule,
		Value: value,
	}
}

func newFormatError(input string) *ParseError {
	return &ParseError{
		Input: input,
		Rule:  RuleUnrecognizedFormat,
	}
}
