package dataverse

import (
	"encoding/json"
	"net/http"
)

// GetResponse is the parsed envelope of a successful GET.
type GetResponse struct {
	// Data always holds a list of rows, even when a single row was addressed.
	Data []map[string]any

	// Count is the total row count, present only when count was requested.
	Count *int64

	// NextLink points to the next page of results, empty on the last page.
	NextLink string
}

// errorEnvelope is the error shape the service returns inside a JSON body.
type errorEnvelope struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// decodeBody unmarshals a response body and surfaces a service-reported
// error as an *APIError. A body that is not valid JSON is reported as an
// invalid_json parse failure.
func decodeBody(method string, status int, body []byte, out any) error {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &APIError{
			Status:  status,
			Code:    codeInvalidJSON,
			Message: err.Error() + ". Response: " + string(body),
			Method:  method,
		}
	}

	if envelope.Error != nil {
		code := envelope.Error.Code
		if code == "" {
			code = statusCategory(status)
		}
		return &APIError{
			Status:  status,
			Code:    code,
			Message: envelope.Error.Message,
			Method:  method,
		}
	}

	return json.Unmarshal(body, out)
}

// parseGetResponse peels the OData envelope from a GET body: the "value"
// list (or the row itself for single-row addressing), "@odata.count" and
// "@odata.nextLink".
func parseGetResponse(status int, body []byte, notFoundOK bool) (*GetResponse, error) {
	var payload map[string]any
	if err := decodeBody(http.MethodGet, status, body, &payload); err != nil {
		return nil, err
	}

	var rows []map[string]any
	if value, ok := payload["value"]; ok {
		list, _ := value.([]any)
		for _, entry := range list {
			if row, ok := entry.(map[string]any); ok {
				rows = append(rows, row)
			}
		}
	} else {
		rows = []map[string]any{payload}
	}

	if len(rows) == 0 {
		if notFoundOK {
			return &GetResponse{Data: []map[string]any{}}, nil
		}
		return nil, &APIError{
			Status:  http.StatusNotFound,
			Code:    codeNotFound,
			Message: "No records matching the given criteria.",
			Method:  http.MethodGet,
		}
	}

	response := &GetResponse{Data: rows}
	if link, ok := payload["@odata.nextLink"].(string); ok {
		response.NextLink = link
	}
	if count, ok := payload["@odata.count"].(float64); ok {
		total := int64(count)
		response.Count = &total
	}

	return response, nil
}

// parseRowResponse decodes a POST or PATCH body into a single row. A 204
// response yields an empty row.
func parseRowResponse(method string, status int, body []byte) (map[string]any, error) {
	if status == http.StatusNoContent {
		return map[string]any{}, nil
	}

	var row map[string]any
	if err := decodeBody(method, status, body, &row); err != nil {
		return nil, err
	}
	return row, nil
}
