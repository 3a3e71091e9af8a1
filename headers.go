package dataverse

import (
	"net/http"
	"strconv"

	"github.com/roach88/dataverse/odata"
)

// preferAnnotations is the Prefer header value that asks the service to
// annotate returned data with enum labels, lookup display names and the like.
const preferAnnotations = `odata.include-annotations="*"`

// defaultHeaders returns the per-method header defaults the Web API expects.
//
// GET and DELETE advertise the page size; POST and PATCH ask for the full
// representation of the affected row back. PATCH additionally carries
// If-Match: * so it never creates rows, only updates existing ones.
func defaultHeaders(method string, query *odata.QueryOptions) http.Header {
	headers := http.Header{}
	headers.Set("OData-MaxVersion", "4.0")
	headers.Set("OData-Version", "4.0")
	headers.Set("Accept", "application/json; odata.metadata=minimal")

	switch method {
	case http.MethodGet:
		headers.Set("Prefer", "odata.maxpagesize="+strconv.Itoa(query.EffectivePageSize()))

	case http.MethodPost:
		headers.Set("Content-Type", "application/json; charset=utf-8")
		headers.Set("Prefer", "return=representation")
		headers.Set("MSCRM.SuppressDuplicateDetection", "false")

	case http.MethodPatch:
		headers.Set("Content-Type", "application/json; charset=utf-8")
		headers.Set("Prefer", "return=representation")
		headers.Set("MSCRM.SuppressDuplicateDetection", "false")
		headers.Set("If-None-Match", "null")
		headers.Set("If-Match", "*")

	case http.MethodDelete:
		headers.Set("Content-Type", "application/json; charset=utf-8")
		headers.Set("Prefer", "odata.maxpagesize="+strconv.Itoa(query.EffectivePageSize()))
	}

	return headers
}

// requestHeaders merges the per-method defaults with annotation preferences
// and user-set headers. User headers always win.
func requestHeaders(method string, query *odata.QueryOptions) http.Header {
	headers := defaultHeaders(method, query)

	if query.ShowAnnotations() {
		headers.Set("Prefer", preferAnnotations)
	}

	for name, value := range query.Headers() {
		headers.Set(name, value)
	}

	return headers
}
