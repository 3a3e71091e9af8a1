// Package odata builds OData v4 query strings for the Dataverse Web API.
//
// The central type is QueryOptions: a mutable, single-owner description of
// one query intent (column selection, filters, sorting, paging, nested
// expansion, aggregation). Compile serializes the current option set into a
// single resource path with query parameters, in a fixed canonical order, so
// that identical option sets always produce byte-identical output.
//
// Filter fragments are plain strings. They can be written by hand or built
// with the filter subpackage; either way Compile embeds them verbatim.
// The FilterSpec wrapper decides how multiple fragments combine: AllOf joins
// them with "and", AnyOf joins them with "or".
//
// Structural constraints (expand-statement budget, option conflicts, row key
// shape) are enforced before any output is produced. Violations surface as
// *StructuralError values identifying the offending option; Compile never
// returns a partially built query string.
//
// QueryOptions is not safe for concurrent mutation. To dispatch queries
// concurrently, compile first and share only the resulting strings, or give
// each goroutine its own Clone.
package odata
