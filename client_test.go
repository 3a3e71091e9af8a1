package dataverse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		APIURL:       server.URL,
		TokenURL:     server.URL + "/token",
		ClientID:     "client",
		ClientSecret: "secret",
		Scopes:       []string{server.URL + "/.default"},
		Timeout:      5 * time.Second,
	}, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	return client
}

func TestGet_List(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contacts", r.URL.Path)
		w.Write([]byte(`{"value":[{"fullname":"First"},{"fullname":"Second"}],"@odata.count":2}`))
	}))

	client.Query().SetTable("contacts")

	response, err := client.Get(context.Background(), GetOptions{})
	require.NoError(t, err)

	require.Len(t, response.Data, 2)
	assert.Equal(t, "First", response.Data[0]["fullname"])
	require.NotNil(t, response.Count)
	assert.EqualValues(t, 2, *response.Count)
	assert.Empty(t, response.NextLink)
	assert.EqualValues(t, 1, client.RequestCount())
}

func TestGet_SingleRowWrappedInList(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"fullname":"Only"}`))
	}))

	client.Query().SetTable("contacts")
	client.Query().SetRowKey("123")

	response, err := client.Get(context.Background(), GetOptions{})
	require.NoError(t, err)
	require.Len(t, response.Data, 1)
	assert.Equal(t, "Only", response.Data[0]["fullname"])
}

func TestGet_EmptyResult(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value":[]}`))
	})

	t.Run("raises not found by default", func(t *testing.T) {
		client := newTestClient(t, handler)
		client.Query().SetTable("contacts")

		_, err := client.Get(context.Background(), GetOptions{})
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})

	t.Run("not found ok returns empty list", func(t *testing.T) {
		client := newTestClient(t, handler)
		client.Query().SetTable("contacts")

		response, err := client.Get(context.Background(), GetOptions{NotFoundOK: true})
		require.NoError(t, err)
		assert.Empty(t, response.Data)
	})
}

func TestGet_Pagination(t *testing.T) {
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/contacts", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value":[{"n":1},{"n":2}],"@odata.nextLink":"` + server.URL + `/page2"}`))
	})
	mux.HandleFunc("/page2", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value":[{"n":3}]}`))
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		APIURL:       server.URL,
		TokenURL:     server.URL + "/token",
		ClientID:     "client",
		ClientSecret: "secret",
		Scopes:       []string{"scope"},
	}, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	client.Query().SetTable("contacts")
	require.NoError(t, client.Query().SetPageSize(2))

	t.Run("first page only without a page budget", func(t *testing.T) {
		response, err := client.Get(context.Background(), GetOptions{})
		require.NoError(t, err)
		assert.Len(t, response.Data, 2)
		assert.NotEmpty(t, response.NextLink)
	})

	t.Run("follows continuation links", func(t *testing.T) {
		response, err := client.GetAll(context.Background(), GetOptions{})
		require.NoError(t, err)
		assert.Len(t, response.Data, 3)
		assert.Empty(t, response.NextLink)
	})
}

func TestGet_ShortPageDropsContinuationLink(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value":[{"n":1}],"@odata.nextLink":"http://ignored"}`))
	}))

	client.Query().SetTable("contacts")
	require.NoError(t, client.Query().SetPageSize(5))

	response, err := client.GetAll(context.Background(), GetOptions{})
	require.NoError(t, err)
	assert.Len(t, response.Data, 1)
	assert.Empty(t, response.NextLink)
}

func TestPost(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"contactid":"123","fullname":"Created"}`))
	}))

	client.Query().SetTable("contacts")

	row, err := client.Post(context.Background(), map[string]any{"fullname": "Created"})
	require.NoError(t, err)
	assert.Equal(t, "123", row["contactid"])
}

func TestPatch_NoContent(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))

	client.Query().SetTable("contacts")
	client.Query().SetRowKey("123")

	row, err := client.Patch(context.Background(), map[string]any{"fullname": "Updated"})
	require.NoError(t, err)
	assert.Empty(t, row)
}

func TestDelete(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/contacts(123)", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	client.Query().SetTable("contacts")
	client.Query().SetRowKey("123")

	require.NoError(t, client.Delete(context.Background()))
}

func TestErrorTaxonomy(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, check: IsAuthenticationFailed},
		{name: "forbidden", status: http.StatusForbidden, check: IsPermissionDenied},
		{name: "not found", status: http.StatusNotFound, check: IsNotFound},
		{name: "precondition failed", status: http.StatusPreconditionFailed, check: IsDuplicateRecord},
		{name: "too many requests", status: http.StatusTooManyRequests, check: IsAPILimitsExceeded},
		{name: "service unavailable", status: http.StatusServiceUnavailable, check: IsServiceUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(`{"error":{"code":"0x80040203","message":"it broke"}}`))
			}))
			client.Query().SetTable("contacts")

			_, err := client.Get(context.Background(), GetOptions{})
			require.Error(t, err)
			assert.True(t, tc.check(err))

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, "it broke", apiErr.Message)
		})
	}
}

func TestErrorWithoutBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	client.Query().SetTable("contacts")

	_, err := client.Get(context.Background(), GetOptions{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, codeWebAPIError, apiErr.Code)
}

func TestCompileErrorBlocksRequest(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be sent")
	}))

	client.Query().SetTable("contacts")
	client.Query().SetRowKey("bad =key")

	_, err := client.Get(context.Background(), GetOptions{})
	assert.Error(t, err)
	assert.Zero(t, client.RequestCount())
}
