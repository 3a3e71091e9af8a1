package odata

// MaxPageSize is the largest page size the Web API allows, and the default.
const MaxPageSize = 5000

// Direction is a sort direction for an OrderBy entry.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// OrderBy sorts results by one column.
type OrderBy struct {
	Column    string
	Direction Direction
}

// QueryOptions holds the option set for one in-flight query intent.
//
// A QueryOptions is created empty (aside from the default page size), mutated
// field-by-field between requests, and read by Compile. It is deliberately
// not reset after a request, so pagination can continue from the same base
// options; call Reset between logically distinct queries.
//
// Mutually exclusive options are rejected at assignment time where possible
// (top vs. count) and at compile time otherwise (apply vs. the rest).
type QueryOptions struct {
	table     string
	rowKey    string
	action    string
	addRef    string
	preExpand string

	selected []string
	filter   FilterSpec
	expand   map[string]*ExpandNode
	orderBy  []OrderBy
	top      int
	count    bool
	apply    string

	pagesize        int
	showAnnotations bool
	headers         map[string]string
}

// NewQueryOptions creates an empty option set with the default page size.
func NewQueryOptions() *QueryOptions {
	return &QueryOptions{
		pagesize: MaxPageSize,
		headers:  map[string]string{},
	}
}

// Reset clears all query options and user headers. The page size returns to
// the default.
func (q *QueryOptions) Reset() {
	*q = QueryOptions{
		pagesize: MaxPageSize,
		headers:  map[string]string{},
	}
}

// Clone returns a deep copy of the option set. Use a clone per goroutine
// when dispatching concurrently; a QueryOptions itself must never be mutated
// from more than one goroutine.
func (q *QueryOptions) Clone() *QueryOptions {
	clone := *q

	clone.selected = append([]string(nil), q.selected...)
	clone.filter = FilterSpec{mode: q.filter.mode, fragments: append([]string(nil), q.filter.fragments...)}
	clone.orderBy = append([]OrderBy(nil), q.orderBy...)
	clone.expand = cloneExpand(q.expand)

	clone.headers = make(map[string]string, len(q.headers))
	for name, value := range q.headers {
		clone.headers[name] = value
	}

	return &clone
}

func cloneExpand(items map[string]*ExpandNode) map[string]*ExpandNode {
	if items == nil {
		return nil
	}
	out := make(map[string]*ExpandNode, len(items))
	for name, node := range items {
		if node == nil {
			out[name] = nil
			continue
		}
		clone := *node
		clone.Select = append([]string(nil), node.Select...)
		clone.Filter = FilterSpec{mode: node.Filter.mode, fragments: append([]string(nil), node.Filter.fragments...)}
		clone.OrderBy = append([]OrderBy(nil), node.OrderBy...)
		clone.Expand = cloneExpand(node.Expand)
		out[name] = &clone
	}
	return out
}

// Table returns the target collection name.
func (q *QueryOptions) Table() string { return q.table }

// SetTable sets the target collection name.
func (q *QueryOptions) SetTable(table string) { q.table = table }

// RowKey returns the current row address.
func (q *QueryOptions) RowKey() string { return q.rowKey }

// SetRowKey addresses a single row, either by its opaque identifier or by an
// alternate-key expression of the form "key=value" or "key1=val1,key2=val2".
// The shape of an alternate-key expression is validated during compilation.
func (q *QueryOptions) SetRowKey(key string) { q.rowKey = key }

// Action returns the raw Web API action or function segment.
func (q *QueryOptions) Action() string { return q.action }

// SetAction sets a Web API action or function path segment, e.g. "WhoAmI()".
// Usually set through the client's Actions and Functions families rather
// than directly.
func (q *QueryOptions) SetAction(action string) { q.action = action }

// AddRefToProperty returns the navigation property a reference is added to.
func (q *QueryOptions) AddRefToProperty() string { return q.addRef }

// SetAddRefToProperty makes the compiled output a reference-link path
// ("table(id)/property/$ref") for linking an existing row to the given
// navigation property. All other query options are ignored while set; this
// is documented precedence, not an error.
func (q *QueryOptions) SetAddRefToProperty(property string) { q.addRef = property }

// PreExpand returns the navigation property spliced into the path.
func (q *QueryOptions) PreExpand() string { return q.preExpand }

// SetPreExpand navigates to a linked table before any query options are
// applied, saving an expand statement when only the linked rows are wanted.
func (q *QueryOptions) SetPreExpand(property string) { q.preExpand = property }

// Select returns the selected columns.
func (q *QueryOptions) Select() []string { return q.selected }

// SetSelect chooses which columns are returned from the table.
func (q *QueryOptions) SetSelect(columns []string) { q.selected = columns }

// Filter returns the current filter spec.
func (q *QueryOptions) Filter() FilterSpec { return q.filter }

// SetFilter sets the criteria rows must match. Build the spec with AllOf
// (every fragment must match) or AnyOf (any fragment may match).
func (q *QueryOptions) SetFilter(spec FilterSpec) { q.filter = spec }

// Expand returns the current expansion tree.
func (q *QueryOptions) Expand() map[string]*ExpandNode { return q.expand }

// SetExpand controls what data from related rows is inlined into the
// response. Map a navigation property to nil to expand it bare, or to an
// ExpandNode to apply options inside the expansion. The total node count
// across the whole tree must stay within MaxExpandStatements; the budget is
// checked during compilation.
func (q *QueryOptions) SetExpand(items map[string]*ExpandNode) { q.expand = items }

// OrderBy returns the current sort order.
func (q *QueryOptions) OrderBy() []OrderBy { return q.orderBy }

// SetOrderBy specifies the order in which rows are returned.
func (q *QueryOptions) SetOrderBy(order []OrderBy) { q.orderBy = order }

// Top returns the current result limit. Zero means no limit.
func (q *QueryOptions) Top() int { return q.top }

// SetTop limits the number of rows returned. Top and count are mutually
// exclusive; setting top while count is active fails with
// CONFLICTING_QUERY_OPTIONS.
func (q *QueryOptions) SetTop(n int) error {
	if n != 0 && q.count {
		return newConflictError("top", "count")
	}
	q.top = n
	return nil
}

// Count reports whether the row count was requested.
func (q *QueryOptions) Count() bool { return q.count }

// SetCount requests the count of rows matching the filter criteria alongside
// the results. Count and top are mutually exclusive; setting count while top
// is active fails with CONFLICTING_QUERY_OPTIONS.
func (q *QueryOptions) SetCount(count bool) error {
	if count && q.top != 0 {
		return newConflictError("count", "top")
	}
	q.count = count
	return nil
}

// Apply returns the current apply statement.
func (q *QueryOptions) Apply() string { return q.apply }

// SetApply sets the $apply statement, aggregating or grouping results.
// Build the statement with the apply subpackage or pass a raw string.
// While apply is set, select, filter, orderby, expand, top and count must
// stay unset; compilation fails with CONFLICTING_QUERY_OPTIONS otherwise.
func (q *QueryOptions) SetApply(statement string) { q.apply = statement }

// PageSize returns the configured page size.
func (q *QueryOptions) PageSize() int { return q.pagesize }

// SetPageSize specifies the number of rows to return per page,
// between 1 and MaxPageSize.
func (q *QueryOptions) SetPageSize(size int) error {
	if size < 1 {
		return NewStructuralError(ErrCodeInvalidPageSize, "pagesize", "page size must be at least 1, got %d", size)
	}
	if size > MaxPageSize {
		return NewStructuralError(ErrCodeInvalidPageSize, "pagesize", "max page size is %d, got %d", MaxPageSize, size)
	}
	q.pagesize = size
	return nil
}

// EffectivePageSize returns the page size a request should advertise: the
// configured page size, capped to top when a top limit is set.
func (q *QueryOptions) EffectivePageSize() int {
	if q.top != 0 && q.top < q.pagesize {
		return q.top
	}
	return q.pagesize
}

// ShowAnnotations reports whether response annotations were requested.
func (q *QueryOptions) ShowAnnotations() bool { return q.showAnnotations }

// SetShowAnnotations toggles annotations for returned data (enum labels,
// GUID display names, and so on). Rendered as a Prefer header, not as part
// of the query string.
func (q *QueryOptions) SetShowAnnotations(show bool) { q.showAnnotations = show }

// Header returns a user-set header value and whether it was set.
func (q *QueryOptions) Header(name string) (string, bool) {
	value, ok := q.headers[name]
	return value, ok
}

// SetHeader sets a request header. User-set headers take precedence over the
// per-method defaults the client applies.
func (q *QueryOptions) SetHeader(name, value string) {
	if q.headers == nil {
		q.headers = map[string]string{}
	}
	q.headers[name] = value
}

// DeleteHeader removes a user-set header.
func (q *QueryOptions) DeleteHeader(name string) {
	delete(q.headers, name)
}

// Headers returns a copy of the user-set headers.
func (q *QueryOptions) Headers() map[string]string {
	out := make(map[string]string, len(q.headers))
	for name, value := range q.headers {
		out[name] = value
	}
	return out
}
