package dataverse

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	body   map[string]any
}

func recordRequests(t *testing.T, record *[]recordedRequest) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}
		*record = append(*record, recordedRequest{method: r.Method, path: r.URL.Path, body: body})
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestActions_WinQuote(t *testing.T) {
	var requests []recordedRequest
	client := newTestClient(t, recordRequests(t, &requests))

	require.NoError(t, client.Actions.WinQuote(context.Background(), "123"))

	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPost, requests[0].method)
	assert.Equal(t, "/WinQuote", requests[0].path)
	assert.EqualValues(t, -1, requests[0].body["Status"])

	quoteClose, ok := requests[0].body["QuoteClose"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/quotes(123)", quoteClose["quoteid@odata.bind"])
	assert.Equal(t, "Microsoft.Dynamics.CRM.quoteclose", quoteClose["@odata.type"])
}

func TestActions_ActivateQuote(t *testing.T) {
	var requests []recordedRequest
	client := newTestClient(t, recordRequests(t, &requests))

	_, err := client.Actions.ActivateQuote(context.Background(), "123", []string{"name"})
	require.NoError(t, err)

	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPatch, requests[0].method)
	assert.Equal(t, "/quotes(123)", requests[0].path)
	assert.EqualValues(t, int(QuoteStateActive), requests[0].body["statecode"])
}

func TestActions_ConvertQuoteToOrder(t *testing.T) {
	var requests []recordedRequest
	client := newTestClient(t, recordRequests(t, &requests))

	_, err := client.Actions.ConvertQuoteToOrder(context.Background(), "123", nil)
	require.NoError(t, err)

	require.Len(t, requests, 1)
	assert.Equal(t, "/ConvertQuoteToSalesOrder", requests[0].path)
	assert.Equal(t, "123", requests[0].body["QuoteId"])
	assert.Equal(t, map[string]any{"AllColumns": true}, requests[0].body["ColumnSet"])
}

func TestActions_CancelOrder(t *testing.T) {
	var requests []recordedRequest
	client := newTestClient(t, recordRequests(t, &requests))

	require.NoError(t, client.Actions.CancelOrder(context.Background(), "456", CancelOrderReasonNoMoney))

	require.Len(t, requests, 1)
	assert.Equal(t, "/CancelSalesOrder", requests[0].path)
	assert.EqualValues(t, CancelOrderReasonNoMoney, requests[0].body["Status"])
}

func TestActions_DeleteQuote(t *testing.T) {
	var requests []recordedRequest
	client := newTestClient(t, recordRequests(t, &requests))

	require.NoError(t, client.Actions.DeleteQuote(context.Background(), "123"))

	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodDelete, requests[0].method)
	assert.Equal(t, "/quotes(123)", requests[0].path)
}

func TestActions_SendEmailFromTemplate(t *testing.T) {
	var requests []recordedRequest
	client := newTestClient(t, recordRequests(t, &requests))

	_, err := client.Actions.SendEmailFromTemplate(context.Background(), EmailTemplate{
		TemplateID:     "template",
		ContextTable:   "contact",
		ContextRowID:   "ctx",
		SenderID:       "sender",
		ToRecipientIDs: []string{"to1", "to2"},
		CcRecipientIDs: []string{"cc"},
	})
	require.NoError(t, err)

	require.Len(t, requests, 1)
	assert.Equal(t, "/SendEmailFromTemplate", requests[0].path)

	target, ok := requests[0].body["Target"].(map[string]any)
	require.True(t, ok)
	parties, ok := target["email_activity_parties"].([]any)
	require.True(t, ok)
	// sender + two to-recipients + one cc-recipient
	assert.Len(t, parties, 4)
}

func TestActions_ResetQueryBetweenCalls(t *testing.T) {
	var requests []recordedRequest
	client := newTestClient(t, recordRequests(t, &requests))

	// Leftover options from previous use must not leak into the action
	client.Query().SetTable("accounts")
	client.Query().SetSelect([]string{"name"})

	require.NoError(t, client.Actions.WinQuote(context.Background(), "123"))

	require.Len(t, requests, 1)
	assert.Equal(t, "/WinQuote", requests[0].path)
}
