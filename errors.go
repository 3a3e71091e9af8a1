package dataverse

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a failed Web API request. The Code is either the error
// code the service reported or a category derived from the HTTP status.
type APIError struct {
	// Status is the HTTP status code of the response.
	Status int

	// Code categorizes the failure ("not_found", "authentication_failed", ...).
	Code string

	// Message is the error message reported by the service.
	Message string

	// Method is the HTTP method of the failed request.
	Method string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s request failed with status %d (%s): %s", e.Method, e.Status, e.Code, e.Message)
}

// Error categories derived from HTTP status codes, following the Web API
// error handling guidance.
const (
	codeParseError           = "parse_error"
	codeAuthenticationFailed = "authentication_failed"
	codePermissionDenied     = "permission_denied"
	codeNotFound             = "not_found"
	codeMethodNotAllowed     = "method_not_allowed"
	codeDuplicateRecord      = "duplicate_record"
	codePayloadTooLarge      = "payload_too_large"
	codeAPILimitsExceeded    = "api_limits_exceeded"
	codeNotImplemented       = "not_implemented"
	codeServiceUnavailable   = "service_unavailable"
	codeWebAPIError          = "web_api_error"
	codeInvalidJSON          = "invalid_json"
)

var statusCodes = map[int]string{
	http.StatusBadRequest:            codeParseError,
	http.StatusUnauthorized:          codeAuthenticationFailed,
	http.StatusForbidden:             codePermissionDenied,
	http.StatusNotFound:              codeNotFound,
	http.StatusMethodNotAllowed:      codeMethodNotAllowed,
	http.StatusPreconditionFailed:    codeDuplicateRecord,
	http.StatusRequestEntityTooLarge: codePayloadTooLarge,
	http.StatusTooManyRequests:       codeAPILimitsExceeded,
	http.StatusNotImplemented:        codeNotImplemented,
	http.StatusServiceUnavailable:    codeServiceUnavailable,
}

func statusCategory(status int) string {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return codeWebAPIError
}

// IsNotFound returns true if the error is a not-found API error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	return hasCategory(err, codeNotFound)
}

// IsAuthenticationFailed returns true if the error is an authentication
// failure. Uses errors.As to handle wrapped errors.
func IsAuthenticationFailed(err error) bool {
	return hasCategory(err, codeAuthenticationFailed)
}

// IsPermissionDenied returns true if the error is a permission error.
// Uses errors.As to handle wrapped errors.
func IsPermissionDenied(err error) bool {
	return hasCategory(err, codePermissionDenied)
}

// IsDuplicateRecord returns true if the error is a duplicate record error.
// Uses errors.As to handle wrapped errors.
func IsDuplicateRecord(err error) bool {
	return hasCategory(err, codeDuplicateRecord)
}

// IsAPILimitsExceeded returns true if the request was throttled.
// Uses errors.As to handle wrapped errors.
func IsAPILimitsExceeded(err error) bool {
	return hasCategory(err, codeAPILimitsExceeded)
}

// IsServiceUnavailable returns true if the Web API was unavailable.
// Uses errors.As to handle wrapped errors.
func IsServiceUnavailable(err error) bool {
	return hasCategory(err, codeServiceUnavailable)
}

func hasCategory(err error, code string) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code || statusCategory(apiErr.Status) == code
	}
	return false
}
