package dataverse

import "time"

// wireDateFormat is the datetime format the Web API stores and returns:
// UTC, second precision, "Z" suffix.
const wireDateFormat = "2006-01-02T15:04:05Z"

// ToWireDate formats a time for the Web API. The instant is converted to UTC
// and truncated to whole seconds.
func ToWireDate(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(wireDateFormat)
}

// FromWireDate parses a Web API datetime string into a UTC time. Fractional
// seconds are accepted and kept.
func FromWireDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
