// Package apply builds $apply statements for aggregating and grouping
// query results. Statements are plain strings; pass them to
// QueryOptions.SetApply.
package apply

import (
	"strings"

	"github.com/roach88/dataverse/odata"
)

// Function is an aggregation method applied to a column.
type Function string

const (
	Average Function = "average"
	Sum     Function = "sum"
	Min     Function = "min"
	Max     Function = "max"
	Count   Function = "count"
)

func (f Function) valid() bool {
	switch f {
	case Average, Sum, Min, Max, Count:
		return true
	}
	return false
}

// GroupBy groups results by the given columns. An optional aggregate
// statement, built with Aggregate, is applied within each group.
func GroupBy(columns []string, aggregate string) string {
	statement := "groupby((" + strings.Join(columns, ",") + ")"
	if aggregate != "" {
		statement += "," + aggregate
	}
	return statement + ")"
}

// Aggregate applies an aggregation function to a column, exposing the result
// under the given alias. The alias must differ from any column name in the
// table.
func Aggregate(column string, fn Function, alias string) (string, error) {
	if !fn.valid() {
		return "", odata.NewStructuralError(odata.ErrCodeInvalidAggregateFunction, "apply",
			"unknown aggregate function %q", string(fn))
	}
	return "aggregate(" + column + " with " + string(fn) + " as " + alias + ")", nil
}

// Filter narrows the rows fed into a grouping. The spec must contain at
// least one fragment; the grouping columns are appended as a groupby stage.
func Filter(by odata.FilterSpec, groupBy []string) (string, error) {
	if by.IsZero() {
		return "", odata.NewStructuralError(odata.ErrCodeInvalidValueType, "apply",
			"filter stage requires at least one filter fragment")
	}
	statement := "filter(" + by.Expression() + ")"
	if len(groupBy) > 0 {
		statement += "/" + GroupBy(groupBy, "")
	}
	return statement, nil
}
