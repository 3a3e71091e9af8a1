package odata

import (
	"errors"
	"fmt"
)

// StructuralError represents a caller error detected while assigning or
// compiling query options.
//
// Structural errors include:
//   - Expand budget exceeded: more than MaxExpandStatements expand nodes
//   - Conflicting options: top with count, or apply with other options
//   - Invalid row key: alternate-key expression not in k=v[,k=v...] shape
//   - Invalid value type: a filter value of an unsupported Go type
//   - Invalid aggregate function: unknown function name in an apply statement
//
// All structural errors are resolved before any network I/O happens.
type StructuralError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Option names the query option that was invalid ("expand", "top", ...).
	Option string

	// Message is a human-readable description.
	Message string
}

// ErrorCode categorizes structural errors.
type ErrorCode string

const (
	// ErrCodeTooManyExpandStatements indicates the total expand node count
	// exceeded MaxExpandStatements.
	ErrCodeTooManyExpandStatements ErrorCode = "TOO_MANY_EXPAND_STATEMENTS"

	// ErrCodeConflictingQueryOptions indicates mutually exclusive options
	// were set at the same time.
	ErrCodeConflictingQueryOptions ErrorCode = "CONFLICTING_QUERY_OPTIONS"

	// ErrCodeInvalidRowKey indicates a malformed alternate-key expression.
	ErrCodeInvalidRowKey ErrorCode = "INVALID_ROW_KEY"

	// ErrCodeInvalidValueType indicates a filter value of an unsupported type.
	ErrCodeInvalidValueType ErrorCode = "INVALID_VALUE_TYPE"

	// ErrCodeInvalidAggregateFunction indicates an unknown aggregate function.
	ErrCodeInvalidAggregateFunction ErrorCode = "INVALID_AGGREGATE_FUNCTION"

	// ErrCodeInvalidPageSize indicates a page size outside 1..MaxPageSize.
	ErrCodeInvalidPageSize ErrorCode = "INVALID_PAGESIZE"
)

// Error implements the error interface.
func (e *StructuralError) Error() string {
	if e.Option != "" {
		return fmt.Sprintf("%s: %s (option=%s)", e.Code, e.Message, e.Option)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsTooManyExpandStatements returns true if the error is an expand budget error.
// Uses errors.As to handle wrapped errors.
func IsTooManyExpandStatements(err error) bool {
	return hasCode(err, ErrCodeTooManyExpandStatements)
}

// IsConflictingQueryOptions returns true if the error is an option conflict error.
// Uses errors.As to handle wrapped errors.
func IsConflictingQueryOptions(err error) bool {
	return hasCode(err, ErrCodeConflictingQueryOptions)
}

// IsInvalidRowKey returns true if the error is a row key format error.
// Uses errors.As to handle wrapped errors.
func IsInvalidRowKey(err error) bool {
	return hasCode(err, ErrCodeInvalidRowKey)
}

// IsInvalidValueType returns true if the error is a filter value type error.
// Uses errors.As to handle wrapped errors.
func IsInvalidValueType(err error) bool {
	return hasCode(err, ErrCodeInvalidValueType)
}

// IsInvalidAggregateFunction returns true if the error is an aggregate
// function error. Uses errors.As to handle wrapped errors.
func IsInvalidAggregateFunction(err error) bool {
	return hasCode(err, ErrCodeInvalidAggregateFunction)
}

func hasCode(err error, code ErrorCode) bool {
	var se *StructuralError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// NewStructuralError creates a StructuralError with the given code, option
// and message. Message accepts fmt verbs.
func NewStructuralError(code ErrorCode, option, message string, args ...any) *StructuralError {
	return &StructuralError{
		Code:    code,
		Option:  option,
		Message: fmt.Sprintf(message, args...),
	}
}

func newExpandBudgetError(total int) *StructuralError {
	return NewStructuralError(
		ErrCodeTooManyExpandStatements, "expand",
		"query contains %d expand statements, the maximum is %d", total, MaxExpandStatements,
	)
}

func newConflictError(option, conflict string) *StructuralError {
	return NewStructuralError(
		ErrCodeConflictingQueryOptions, option,
		"'%s' cannot be combined with '%s'", option, conflict,
	)
}
