package odata

import (
	"strconv"
	"strings"
)

// Compile serializes the current option set into a resource path with query
// parameters, e.g. "contacts(123)?$select=name&$top=3". The output is
// relative to the API root; the request layer prepends the base URL.
//
// Parameters appear in a fixed canonical order ($select, $filter, $orderby,
// $expand, $top or $count, $apply) so identical option sets always compile
// to identical strings. Structural constraints are checked first; on
// violation Compile returns a *StructuralError and no output.
func (q *QueryOptions) Compile() (string, error) {
	rowAddress, err := compileRowAddress(q.rowKey)
	if err != nil {
		return "", err
	}

	// A reference-link path suppresses every other query option.
	if q.addRef != "" {
		return q.table + rowAddress + "/" + q.addRef + "/$ref", nil
	}

	path := q.table + rowAddress
	if q.preExpand != "" {
		path += "/" + q.preExpand
	}
	if q.action != "" {
		if path != "" && !strings.HasSuffix(path, "/") {
			path += "/"
		}
		path += q.action
	}

	parameters, err := q.compileParameters()
	if err != nil {
		return "", err
	}
	if len(parameters) == 0 {
		return path, nil
	}

	return path + "?" + strings.Join(parameters, "&"), nil
}

// compileParameters serializes the query options in canonical order.
func (q *QueryOptions) compileParameters() ([]string, error) {
	if q.apply != "" {
		if err := q.checkApplyConflicts(); err != nil {
			return nil, err
		}
		return []string{"$apply=" + q.apply}, nil
	}

	if total := countExpandNodes(q.expand); total > MaxExpandStatements {
		return nil, newExpandBudgetError(total)
	}

	var parameters []string

	if len(q.selected) > 0 {
		parameters = append(parameters, "$select="+strings.Join(q.selected, ","))
	}
	if !q.filter.IsZero() {
		parameters = append(parameters, "$filter="+q.filter.Expression())
	}
	if len(q.orderBy) > 0 {
		parameters = append(parameters, "$orderby="+compileOrderBy(q.orderBy))
	}
	if len(q.expand) > 0 {
		parameters = append(parameters, "$expand="+compileExpand(q.expand))
	}
	if q.top != 0 {
		parameters = append(parameters, "$top="+strconv.Itoa(q.top))
	}
	if q.count {
		parameters = append(parameters, "$count=true")
	}

	return parameters, nil
}

// checkApplyConflicts enforces the protocol rule that $apply supersedes the
// regular query options: compiling with both set is a caller error.
func (q *QueryOptions) checkApplyConflicts() error {
	switch {
	case len(q.selected) > 0:
		return newConflictError("apply", "select")
	case !q.filter.IsZero():
		return newConflictError("apply", "filter")
	case len(q.orderBy) > 0:
		return newConflictError("apply", "orderby")
	case len(q.expand) > 0:
		return newConflictError("apply", "expand")
	case q.top != 0:
		return newConflictError("apply", "top")
	case q.count:
		return newConflictError("apply", "count")
	}
	return nil
}

func compileOrderBy(order []OrderBy) string {
	parts := make([]string, 0, len(order))
	for _, entry := range order {
		direction := entry.Direction
		if direction == "" {
			direction = Ascending
		}
		parts = append(parts, entry.Column+" "+string(direction))
	}
	return strings.Join(parts, ",")
}

// compileRowAddress serializes the row key to a path segment: "(id)" for an
// opaque identifier, "(key=value[,key=value...])" for an alternate-key
// expression. An expression containing "=" must match that shape exactly,
// with no whitespace around keys or values.
func compileRowAddress(key string) (string, error) {
	if key == "" {
		return "", nil
	}

	if !strings.Contains(key, "=") {
		if key != strings.TrimSpace(key) {
			return "", NewStructuralError(ErrCodeInvalidRowKey, "row_key",
				"row key %q has surrounding whitespace", key)
		}
		return "(" + key + ")", nil
	}

	for _, pair := range strings.Split(key, ",") {
		name, value, found := strings.Cut(pair, "=")
		if !found {
			return "", NewStructuralError(ErrCodeInvalidRowKey, "row_key",
				"alternate key pair %q is missing '='", pair)
		}
		if name == "" || value == "" {
			return "", NewStructuralError(ErrCodeInvalidRowKey, "row_key",
				"alternate key pair %q must have the form key=value", pair)
		}
		if name != strings.TrimSpace(name) || value != strings.TrimSpace(value) {
			return "", NewStructuralError(ErrCodeInvalidRowKey, "row_key",
				"alternate key pair %q has whitespace around the key or value", pair)
		}
	}

	return "(" + key + ")", nil
}
