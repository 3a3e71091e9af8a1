package odata

import (
	"sort"
	"strconv"
	"strings"
)

// MaxExpandStatements is the maximum total number of expand statements a
// single request may carry. The limit applies to the total node count across
// the whole expansion tree, not to nesting depth: one root entry with nine
// nested entries spends the budget just like ten root entries.
const MaxExpandStatements = 10

// ExpandNode describes the query options applied inside one expanded
// navigation property. It mirrors QueryOptions restricted to the subset that
// is valid inside an expand statement: table addressing, apply, count and
// paging preferences do not exist at this level.
//
// Nested expansion (the Expand field) is only accepted by the service for
// single-valued (many-to-one) navigation properties. The compiler cannot
// check relationship cardinality; it counts and serializes nested nodes
// either way, and the service rejects invalid ones.
type ExpandNode struct {
	// Select lists the columns returned from the expanded rows.
	Select []string

	// Filter restricts which related rows are inlined.
	Filter FilterSpec

	// OrderBy sorts the related rows.
	OrderBy []OrderBy

	// Top limits the number of related rows. Zero means no limit.
	Top int

	// Expand nests further expansions. A nil value compiles the navigation
	// property bare, with no inner options.
	Expand map[string]*ExpandNode
}

func (n *ExpandNode) isEmpty() bool {
	if n == nil {
		return true
	}
	return len(n.Select) == 0 && n.Filter.IsZero() && len(n.OrderBy) == 0 && n.Top == 0 && len(n.Expand) == 0
}

// countExpandNodes returns the total node count of an expansion tree.
func countExpandNodes(items map[string]*ExpandNode) int {
	total := len(items)
	for _, node := range items {
		if node != nil {
			total += countExpandNodes(node.Expand)
		}
	}
	return total
}

// compileExpand serializes an expansion tree to the value of an $expand
// parameter. Entries are sorted by navigation property name so output is
// deterministic regardless of map insertion order.
func compileExpand(items map[string]*ExpandNode) string {
	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		node := items[name]
		if node.isEmpty() {
			parts = append(parts, name)
			continue
		}
		parts = append(parts, name+"("+compileExpandOptions(node)+")")
	}

	return strings.Join(parts, ",")
}

// compileExpandOptions serializes the options inside one expand statement,
// joined with ";" in the same canonical order as the root compiler.
func compileExpandOptions(node *ExpandNode) string {
	var statements []string

	if len(node.Select) > 0 {
		statements = append(statements, "$select="+strings.Join(node.Select, ","))
	}
	if !node.Filter.IsZero() {
		statements = append(statements, "$filter="+node.Filter.Expression())
	}
	if len(node.OrderBy) > 0 {
		statements = append(statements, "$orderby="+compileOrderBy(node.OrderBy))
	}
	if node.Top != 0 {
		statements = append(statements, "$top="+strconv.Itoa(node.Top))
	}
	if len(node.Expand) > 0 {
		statements = append(statements, "$expand="+compileExpand(node.Expand))
	}

	return strings.Join(statements, ";")
}
