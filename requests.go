package dataverse

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// GetOptions adjusts a single GET request.
type GetOptions struct {
	// NotFoundOK makes an empty result return an empty list instead of a
	// not_found error.
	NotFoundOK bool

	// Pages is how many additional pages to fetch when the response carries
	// a continuation link. Zero fetches only the first page; a negative
	// value follows continuation links until exhausted.
	Pages int
}

// Get runs the current query and returns the parsed response. Pagination
// past the first page is opt-in through GetOptions.Pages.
func (c *Client) Get(ctx context.Context, opts GetOptions) (*GetResponse, error) {
	url, err := c.currentQuery()
	if err != nil {
		return nil, err
	}
	return c.getURL(ctx, url, opts)
}

// getURL runs a GET against an explicit URL, used for continuation links.
func (c *Client) getURL(ctx context.Context, url string, opts GetOptions) (*GetResponse, error) {
	status, body, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	response, err := parseGetResponse(status, body, opts.NotFoundOK)
	if err != nil {
		c.logFailure(http.MethodGet, url, err)
		return nil, err
	}

	// A continuation link can appear even when everything was already
	// fetched; a short page means there is nothing more to get.
	if len(response.Data) < c.query.EffectivePageSize() {
		response.NextLink = ""
		return response, nil
	}

	for pages := opts.Pages; pages != 0 && response.NextLink != ""; pages-- {
		rest, err := c.getURL(ctx, response.NextLink, GetOptions{NotFoundOK: true})
		if err != nil {
			return nil, err
		}
		response.Data = append(response.Data, rest.Data...)
		response.NextLink = rest.NextLink
	}

	return response, nil
}

// GetAll runs the current query and follows continuation links until the
// result set is exhausted.
func (c *Client) GetAll(ctx context.Context, opts GetOptions) (*GetResponse, error) {
	opts.Pages = -1
	return c.Get(ctx, opts)
}

// Post creates a new row. Table must be set; use select and expand to trim
// the representation returned.
func (c *Client) Post(ctx context.Context, data map[string]any) (map[string]any, error) {
	return c.send(ctx, http.MethodPost, data)
}

// Patch updates a row. Table and row key must be set.
func (c *Client) Patch(ctx context.Context, data map[string]any) (map[string]any, error) {
	return c.send(ctx, http.MethodPatch, data)
}

func (c *Client) send(ctx context.Context, method string, data map[string]any) (map[string]any, error) {
	url, err := c.currentQuery()
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	status, body, err := c.do(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	row, err := parseRowResponse(method, status, body)
	if err != nil {
		c.logFailure(method, url, err)
		return nil, err
	}
	return row, nil
}

// Delete removes a row. Table and row key must be set.
func (c *Client) Delete(ctx context.Context) error {
	url, err := c.currentQuery()
	if err != nil {
		return err
	}

	status, body, err := c.do(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	if status == http.StatusNoContent {
		return nil
	}

	var discard map[string]any
	if err := decodeBody(http.MethodDelete, status, body, &discard); err != nil {
		c.logFailure(http.MethodDelete, url, err)
		return err
	}
	return nil
}

// do executes one HTTP request with the per-method default headers applied
// and returns the status code and body.
func (c *Client) do(ctx context.Context, method, url string, body io.Reader) (int, []byte, error) {
	request, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, nil, err
	}
	request.Header = requestHeaders(method, c.query)

	c.log.Debug("dataverse request",
		zap.String("method", method),
		zap.String("url", url),
	)

	response, err := c.http.Do(request)
	if err != nil {
		return 0, nil, err
	}
	defer response.Body.Close()
	c.requests.Add(1)

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return 0, nil, err
	}

	if response.StatusCode >= http.StatusBadRequest {
		apiErr := responseError(method, response.StatusCode, payload)
		c.logFailure(method, url, apiErr)
		return 0, nil, apiErr
	}

	return response.StatusCode, payload, nil
}

// responseError turns a failed response into an *APIError, preferring the
// error code and message from the body when the service provided them.
func responseError(method string, status int, body []byte) *APIError {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		code := envelope.Error.Code
		if code == "" {
			code = statusCategory(status)
		}
		return &APIError{Status: status, Code: code, Message: envelope.Error.Message, Method: method}
	}

	return &APIError{
		Status:  status,
		Code:    statusCategory(status),
		Message: http.StatusText(status),
		Method:  method,
	}
}

func (c *Client) logFailure(method, url string, err error) {
	c.log.Warn("dataverse request failed",
		zap.String("method", method),
		zap.String("url", url),
		zap.Error(err),
	)
}
