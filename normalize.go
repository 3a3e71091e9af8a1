package dataverse

import (
	"strings"
	"time"

	"github.com/spf13/cast"
	"golang.org/x/text/unicode/norm"
)

// Response values arrive as whatever JSON decoding produced, and the service
// is loose about number formatting in string-typed columns. The As*
// normalizers coerce a value to a concrete type, falling back to the given
// default instead of failing.

// AsInt coerces value to an int. Decimal commas are accepted in strings and
// fractions are truncated.
func AsInt(value any, fallback int) int {
	f, err := cast.ToFloat64E(normalizeNumeric(value))
	if err != nil {
		return fallback
	}
	return int(f)
}

// AsFloat coerces value to a float64. Decimal commas are accepted in strings.
func AsFloat(value any, fallback float64) float64 {
	f, err := cast.ToFloat64E(normalizeNumeric(value))
	if err != nil {
		return fallback
	}
	return f
}

func normalizeNumeric(value any) any {
	if s, ok := value.(string); ok {
		return strings.ReplaceAll(s, ",", ".")
	}
	return value
}

// AsString coerces value to a string in Unicode normal form C. Booleans and
// nil yield the fallback; a missing value and an explicit null look the same
// to callers expecting text.
func AsString(value any, fallback string) string {
	switch value.(type) {
	case nil, bool:
		return fallback
	}

	s, err := cast.ToStringE(value)
	if err != nil {
		return fallback
	}
	return norm.NFC.String(s)
}

// AsBool coerces value to a bool.
func AsBool(value any, fallback bool) bool {
	b, err := cast.ToBoolE(value)
	if err != nil {
		return fallback
	}
	return b
}

// AsTime parses a wire-format datetime string. Any other input yields the
// fallback.
func AsTime(value any, fallback time.Time) time.Time {
	s, ok := value.(string)
	if !ok {
		return fallback
	}
	t, err := FromWireDate(s)
	if err != nil {
		return fallback
	}
	return t
}
