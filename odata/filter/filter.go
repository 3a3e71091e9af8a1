// Package filter builds $filter fragments for the Dataverse Web API.
//
// Every function is pure and returns a syntactically complete fragment
// string, embeddable into a larger fragment or into a FilterSpec. Functions
// taking an arbitrary value fail with INVALID_VALUE_TYPE for unsupported
// types and never return a partial fragment.
//
// Two options apply across the package: Lambda(indicator) prefixes the
// column reference with a lambda loop variable, for fragments evaluated
// inside Any or All; Group wraps the fragment in parentheses.
package filter

import "strings"

// Option adjusts how a fragment is rendered.
type Option func(*settings)

// Lambda marks the fragment as evaluated inside a lambda operation, using
// the lambda operation's item indicator to qualify the column reference.
func Lambda(indicator string) Option {
	return func(s *settings) { s.lambda = indicator }
}

// Group wraps the fragment in parentheses.
func Group() Option {
	return func(s *settings) { s.group = true }
}

type settings struct {
	lambda string
	group  bool
}

func newSettings(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s settings) indicator() string {
	if s.lambda == "" {
		return ""
	}
	return s.lambda + "/"
}

func (s settings) wrap(fragment string) string {
	if s.group {
		return "(" + fragment + ")"
	}
	return fragment
}

// Comparison operations

// Eq evaluates whether the value in the given column is equal to value.
func Eq(column string, value any, opts ...Option) (string, error) {
	return comparison(column, "eq", value, opts)
}

// Ne evaluates whether the value in the given column is not equal to value.
func Ne(column string, value any, opts ...Option) (string, error) {
	return comparison(column, "ne", value, opts)
}

// Gt evaluates whether the value in the given column is greater than value.
func Gt(column string, value any, opts ...Option) (string, error) {
	return comparison(column, "gt", value, opts)
}

// Ge evaluates whether the value in the given column is greater than or
// equal to value.
func Ge(column string, value any, opts ...Option) (string, error) {
	return comparison(column, "ge", value, opts)
}

// Lt evaluates whether the value in the given column is less than value.
func Lt(column string, value any, opts ...Option) (string, error) {
	return comparison(column, "lt", value, opts)
}

// Le evaluates whether the value in the given column is less than or equal
// to value.
func Le(column string, value any, opts ...Option) (string, error) {
	return comparison(column, "le", value, opts)
}

func comparison(column, operator string, value any, opts []Option) (string, error) {
	s := newSettings(opts)
	literal, err := comparisonLiteral(value)
	if err != nil {
		return "", err
	}
	return s.wrap(s.indicator() + column + " " + operator + " " + literal), nil
}

// Logical operations

// And evaluates whether all the given operations are true.
func And(operations []string, opts ...Option) string {
	return joinOperations("and", operations, opts)
}

// Or evaluates whether any of the given operations are true.
func Or(operations []string, opts ...Option) string {
	return joinOperations("or", operations, opts)
}

func joinOperations(operator string, operations []string, opts []Option) string {
	s := newSettings(opts)
	return s.wrap(strings.Join(operations, " "+operator+" "))
}

// Not inverts the evaluation of an operation.
//
// Only works on simple (non-composite) operators: a composite fragment must
// be pre-grouped by the caller. The builder does not verify this.
func Not(operation string, opts ...Option) string {
	s := newSettings(opts)
	return s.wrap("not " + operation)
}

// Standard query functions

// Contains evaluates whether the string value in the given column contains
// value.
func Contains(column string, value any, opts ...Option) (string, error) {
	return stringFunction("contains", column, value, opts)
}

// StartsWith evaluates whether the string value in the given column starts
// with value.
func StartsWith(column string, value any, opts ...Option) (string, error) {
	return stringFunction("startswith", column, value, opts)
}

// EndsWith evaluates whether the string value in the given column ends with
// value.
func EndsWith(column string, value any, opts ...Option) (string, error) {
	return stringFunction("endswith", column, value, opts)
}

func stringFunction(operator, column string, value any, opts []Option) (string, error) {
	s := newSettings(opts)
	literal, err := quotedLiteral(value)
	if err != nil {
		return "", err
	}
	return s.wrap(operator + "(" + s.indicator() + column + "," + literal + ")"), nil
}

// Lambda operations

// Any is true if operation is true for any member of the collection-valued
// navigation property, or, with an empty operation, if the collection is
// not empty.
//
// The indicator names the loop variable; pass the same indicator via
// Lambda(indicator) to the operations composed inside.
func Any(collection, indicator, operation string, opts ...Option) string {
	return lambdaOperation(collection, "any", indicator, operation, opts)
}

// All is true if operation is true for all members of the collection-valued
// navigation property.
//
// The indicator names the loop variable; pass the same indicator via
// Lambda(indicator) to the operations composed inside.
func All(collection, indicator, operation string, opts ...Option) string {
	return lambdaOperation(collection, "all", indicator, operation, opts)
}

func lambdaOperation(collection, operator, indicator, operation string, opts []Option) string {
	s := newSettings(opts)
	inner := ""
	if operation != "" {
		inner = indicator + ":" + operation
	}
	return s.wrap(s.indicator() + collection + "/" + operator + "(" + inner + ")")
}
