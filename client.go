// Package dataverse is a client for the Microsoft Dataverse Web API
// (Dynamics 365). It builds OData queries through the odata subpackages and
// executes them over an OAuth2 client-credentials transport.
//
// A Client owns one QueryOptions instance: set options on it, run a request,
// and call Reset before composing the next logically distinct query. Clients
// are not safe for concurrent use; create one client per goroutine, or clone
// query options and pass compiled queries explicitly.
package dataverse

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/roach88/dataverse/odata"
)

// Client talks to one Dataverse organization.
type Client struct {
	apiURL   string
	http     *http.Client
	log      *zap.Logger
	query    *odata.QueryOptions
	requests atomic.Int64

	// Actions exposes the predefined Web API actions (quote and order state
	// transitions, templated email).
	Actions *Actions

	// Functions exposes the predefined Web API functions (WhoAmI, metadata
	// retrieval, address formatting).
	Functions *Functions
}

// Option adjusts client construction.
type Option func(*Client)

// WithHTTPClient replaces the OAuth2-backed HTTP client. The given client is
// used as-is, so it must carry its own authentication if any is needed.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.http = httpClient }
}

// WithLogger sets the logger. The default client logs nothing.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient connects to the organization described by cfg using the OAuth 2.0
// client credentials flow. The application user behind ClientID must exist in
// the organization and hold a security role.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	c := &Client{
		apiURL: strings.TrimRight(cfg.APIURL, "/") + "/",
		log:    zap.NewNop(),
		query:  odata.NewQueryOptions(),
	}
	c.Actions = &Actions{client: c}
	c.Functions = &Functions{client: c}

	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		credentials := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       cfg.Scopes,
		}

		source := credentials.TokenSource(context.Background())
		if cfg.CacheToken {
			cached, err := newCachedTokenSource(cfg, source)
			if err != nil {
				return nil, err
			}
			source = cached
		}

		c.http = &http.Client{
			Transport: &oauth2.Transport{Source: source},
			Timeout:   cfg.Timeout,
		}
	}

	return c, nil
}

// Query returns the client's query options. Mutate them between requests;
// requests compile whatever is currently set.
func (c *Client) Query() *odata.QueryOptions {
	return c.query
}

// Reset clears all query options and headers.
func (c *Client) Reset() {
	c.query.Reset()
}

// RequestCount reports how many requests the client has processed.
func (c *Client) RequestCount() int64 {
	return c.requests.Load()
}

// currentQuery compiles the query options into a full request URL.
func (c *Client) currentQuery() (string, error) {
	compiled, err := c.query.Compile()
	if err != nil {
		return "", err
	}
	return c.apiURL + compiled, nil
}
