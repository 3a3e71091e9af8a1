package filter

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"github.com/roach88/dataverse/odata"
)

// wireDateFormat is the datetime literal format the Web API expects:
// UTC, second precision, "Z" suffix.
const wireDateFormat = "2006-01-02T15:04:05Z"

// comparisonLiteral renders a value for use next to a comparison operator.
// Strings are single-quoted unless they are a canonical GUID or a wire
// datetime, which the dialect takes unquoted. Booleans, numbers and nil
// render as bare literals. Unsupported types fail with INVALID_VALUE_TYPE.
func comparisonLiteral(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "null", nil
	case bool:
		return cast.ToString(v), nil
	case string:
		if isCanonicalGUID(v) || isWireDate(v) {
			return v, nil
		}
		return "'" + v + "'", nil
	case time.Time:
		return v.UTC().Format(wireDateFormat), nil
	}

	if rendered, ok := numericLiteral(value); ok {
		return rendered, nil
	}
	return "", invalidValueType(value)
}

// quotedLiteral renders a value for use as a function argument, where the
// dialect quotes everything except booleans and null.
func quotedLiteral(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "null", nil
	case bool:
		return cast.ToString(v), nil
	case string:
		return "'" + v + "'", nil
	case time.Time:
		return "'" + v.UTC().Format(wireDateFormat) + "'", nil
	}

	if rendered, ok := numericLiteral(value); ok {
		return "'" + rendered + "'", nil
	}
	return "", invalidValueType(value)
}

func numericLiteral(value any) (string, bool) {
	switch value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return cast.ToString(value), true
	}
	return "", false
}

func invalidValueType(value any) error {
	return odata.NewStructuralError(odata.ErrCodeInvalidValueType, "filter",
		"unsupported filter value type %T", value)
}

// isCanonicalGUID reports whether s is a GUID in canonical
// xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx form. Only the canonical form is
// taken as a row identifier; other accepted uuid spellings stay quoted.
func isCanonicalGUID(s string) bool {
	parsed, err := uuid.Parse(s)
	return err == nil && parsed.String() == s
}

func isWireDate(s string) bool {
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}
