package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dataverse/odata"
)

// QueryFlags holds the flags shared by commands that build a query.
type QueryFlags struct {
	Table       string
	Row         string
	Select      []string
	Filter      []string
	FilterAny   bool
	OrderBy     []string
	Expand      []string
	Top         int
	Count       bool
	Apply       string
	Annotations bool
}

// Register adds the query flags to a command.
func (q *QueryFlags) Register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&q.Table, "table", "t", "", "table to query")
	cmd.Flags().StringVar(&q.Row, "row", "", "row key: an id or key=value[,key=value...]")
	cmd.Flags().StringSliceVarP(&q.Select, "select", "s", nil, "columns to return")
	cmd.Flags().StringArrayVarP(&q.Filter, "filter", "f", nil, "filter fragment, repeatable")
	cmd.Flags().BoolVar(&q.FilterAny, "filter-any", false, "join filter fragments with 'or' instead of 'and'")
	cmd.Flags().StringArrayVar(&q.OrderBy, "orderby", nil, "sort column, 'col' or 'col:desc', repeatable")
	cmd.Flags().StringArrayVarP(&q.Expand, "expand", "e", nil, "navigation property, 'nav' or 'nav=col1,col2', repeatable")
	cmd.Flags().IntVar(&q.Top, "top", 0, "limit the number of rows returned")
	cmd.Flags().BoolVar(&q.Count, "count", false, "request the matching row count")
	cmd.Flags().StringVar(&q.Apply, "apply", "", "raw $apply statement")
	cmd.Flags().BoolVar(&q.Annotations, "annotations", false, "request response annotations")
}

// Build translates the flags into query options.
func (q *QueryFlags) Build() (*odata.QueryOptions, error) {
	options := odata.NewQueryOptions()
	options.SetTable(q.Table)
	options.SetRowKey(q.Row)
	options.SetSelect(q.Select)
	options.SetApply(q.Apply)
	options.SetShowAnnotations(q.Annotations)

	if len(q.Filter) > 0 {
		if q.FilterAny {
			options.SetFilter(odata.AnyOf(q.Filter...))
		} else {
			options.SetFilter(odata.AllOf(q.Filter...))
		}
	}

	order, err := parseOrderBy(q.OrderBy)
	if err != nil {
		return nil, err
	}
	options.SetOrderBy(order)

	if len(q.Expand) > 0 {
		options.SetExpand(parseExpand(q.Expand))
	}

	if q.Top > 0 {
		if err := options.SetTop(q.Top); err != nil {
			return nil, err
		}
	}
	if q.Count {
		if err := options.SetCount(true); err != nil {
			return nil, err
		}
	}

	return options, nil
}

func parseOrderBy(entries []string) ([]odata.OrderBy, error) {
	order := make([]odata.OrderBy, 0, len(entries))
	for _, entry := range entries {
		column, direction, found := strings.Cut(entry, ":")
		if !found {
			order = append(order, odata.OrderBy{Column: column})
			continue
		}
		switch direction {
		case "asc":
			order = append(order, odata.OrderBy{Column: column, Direction: odata.Ascending})
		case "desc":
			order = append(order, odata.OrderBy{Column: column, Direction: odata.Descending})
		default:
			return nil, fmt.Errorf("invalid sort direction %q in %q: use asc or desc", direction, entry)
		}
	}
	return order, nil
}

func parseExpand(entries []string) map[string]*odata.ExpandNode {
	expand := make(map[string]*odata.ExpandNode, len(entries))
	for _, entry := range entries {
		name, columns, found := strings.Cut(entry, "=")
		if !found {
			expand[name] = nil
			continue
		}
		expand[name] = &odata.ExpandNode{Select: strings.Split(columns, ",")}
	}
	return expand
}
