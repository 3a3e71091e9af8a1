package dataverse

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFunctionsClient(t *testing.T, record *[]string) *Client {
	t.Helper()
	return newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*record = append(*record, r.URL.Path)
		w.Write([]byte(`{"value":[{"result":"ok"}]}`))
	}))
}

func TestFunctions_WhoAmI(t *testing.T) {
	var requests []string
	client := newFunctionsClient(t, &requests)

	rows, err := client.Functions.WhoAmI(context.Background())
	require.NoError(t, err)

	require.Len(t, requests, 1)
	assert.Equal(t, "/WhoAmI()", requests[0])
	require.Len(t, rows, 1)
	assert.Equal(t, "ok", rows[0]["result"])
}

func TestFunctions_ExpandCalendar(t *testing.T) {
	var requests []string
	client := newFunctionsClient(t, &requests)

	_, err := client.Functions.ExpandCalendar(context.Background(), "2024-01-01", "2024-01-31")
	require.NoError(t, err)

	require.Len(t, requests, 1)
	assert.Equal(t, "/ExpandCalendar(Start='2024-01-01',End='2024-01-31')", requests[0])
}

func TestFunctions_FormatAddress(t *testing.T) {
	var requests []string
	client := newFunctionsClient(t, &requests)

	_, err := client.Functions.FormatAddress(context.Background(), Address{
		Line1:      "1 Main St",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62701",
		Country:    "US",
	})
	require.NoError(t, err)

	require.Len(t, requests, 1)
	assert.Equal(t,
		"/FormatAddress(Line1='1 Main St',City='Springfield',StateOrProvince='IL',PostalCode='62701',Country='US')",
		requests[0])
}

func TestFunctions_GetValidReferencedEntities(t *testing.T) {
	var requests []string
	client := newFunctionsClient(t, &requests)

	_, err := client.Functions.GetValidReferencedEntities(context.Background(), "account")
	require.NoError(t, err)

	require.Len(t, requests, 1)
	assert.Equal(t, "/GetValidReferencedEntities(ReferencingEntityName='account')", requests[0])
}

func TestFunctions_RetrieveAllEntities(t *testing.T) {
	var requests []string
	client := newFunctionsClient(t, &requests)

	_, err := client.Functions.RetrieveAllEntities(context.Background(), EntityFilterAttributes, true)
	require.NoError(t, err)

	require.Len(t, requests, 1)
	assert.Equal(t, "/RetrieveAllEntities(EntityFilters=2,RetrieveAsIfPublished=true)", requests[0])
}
