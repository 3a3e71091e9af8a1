package dataverse

import (
	"encoding/json"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/roach88/dataverse/internal/cache"
)

// tokenExpiryLeeway is subtracted from a token's lifetime before it is
// cached, so a token read from the cache is never on the verge of expiry.
const tokenExpiryLeeway = time.Minute

// cachedTokenSource persists tokens to a sqlite cache so separate processes
// against the same organization reuse one token instead of each fetching
// their own.
type cachedTokenSource struct {
	key    string
	cache  *cache.Cache
	source oauth2.TokenSource

	current *oauth2.Token
}

func newCachedTokenSource(cfg Config, source oauth2.TokenSource) (*cachedTokenSource, error) {
	store, err := cache.Open(cfg.CachePath)
	if err != nil {
		return nil, err
	}
	return &cachedTokenSource{
		key:    cfg.ClientID + "|" + strings.Join(cfg.Scopes, ","),
		cache:  store,
		source: source,
	}, nil
}

// Token returns the in-memory token while valid, then the cached token, and
// only fetches a fresh one when both are stale.
func (s *cachedTokenSource) Token() (*oauth2.Token, error) {
	if s.current.Valid() {
		return s.current, nil
	}

	if token := s.load(); token.Valid() {
		s.current = token
		return token, nil
	}

	token, err := s.source.Token()
	if err != nil {
		return nil, err
	}
	s.current = token
	s.store(token)
	return token, nil
}

func (s *cachedTokenSource) load() *oauth2.Token {
	raw, ok, err := s.cache.Get(s.key)
	if err != nil || !ok {
		return nil
	}

	var token oauth2.Token
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil
	}
	return &token
}

func (s *cachedTokenSource) store(token *oauth2.Token) {
	lifetime := time.Until(token.Expiry) - tokenExpiryLeeway
	if lifetime <= 0 {
		return
	}

	raw, err := json.Marshal(token)
	if err != nil {
		return
	}
	_ = s.cache.Set(s.key, raw, lifetime)
}
