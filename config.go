package dataverse

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config carries the connection settings for a client.
type Config struct {
	// APIURL is the API root, e.g. "https://org.crm.dynamics.com/api/data/v9.2".
	APIURL string

	// TokenURL is the OAuth token endpoint the client credentials flow posts to.
	TokenURL string

	// ClientID and ClientSecret identify the application user.
	ClientID     string
	ClientSecret string

	// Scopes lists the OAuth scopes to request, usually one entry of the form
	// "https://org.crm.dynamics.com/.default".
	Scopes []string

	// CacheToken persists fetched tokens to disk so restarts reuse them.
	CacheToken bool

	// CachePath overrides where the token cache database lives. Empty means
	// the system temp directory.
	CachePath string

	// Timeout bounds each HTTP request. Zero disables the timeout.
	Timeout time.Duration
}

func (c Config) validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("config: api url is required")
	}
	if c.TokenURL == "" {
		return fmt.Errorf("config: token url is required")
	}
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("config: client id and client secret are required")
	}
	if len(c.Scopes) == 0 {
		return fmt.Errorf("config: at least one scope is required")
	}
	return nil
}

// FromEnvironment builds a Config from environment variables, loading a .env
// file first when one is present:
//
//	DATAVERSE_API_URL        API root url (required)
//	DATAVERSE_TOKEN_URL      token endpoint url (required)
//	DATAVERSE_CLIENT_ID      application client id (required)
//	DATAVERSE_CLIENT_SECRET  application client secret (required)
//	DATAVERSE_SCOPES         comma separated scope list (required)
//	DATAVERSE_CACHE_TOKEN    "1" or "true" to persist tokens (default true)
//	DATAVERSE_CACHE_PATH     token cache database location
//	DATAVERSE_TIMEOUT        request timeout in seconds (default 5)
func FromEnvironment() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		APIURL:       os.Getenv("DATAVERSE_API_URL"),
		TokenURL:     os.Getenv("DATAVERSE_TOKEN_URL"),
		ClientID:     os.Getenv("DATAVERSE_CLIENT_ID"),
		ClientSecret: os.Getenv("DATAVERSE_CLIENT_SECRET"),
		CacheToken:   true,
		CachePath:    os.Getenv("DATAVERSE_CACHE_PATH"),
		Timeout:      5 * time.Second,
	}

	if scopes := os.Getenv("DATAVERSE_SCOPES"); scopes != "" {
		for _, scope := range strings.Split(scopes, ",") {
			if scope = strings.TrimSpace(scope); scope != "" {
				cfg.Scopes = append(cfg.Scopes, scope)
			}
		}
	}

	if raw, ok := os.LookupEnv("DATAVERSE_CACHE_TOKEN"); ok {
		cfg.CacheToken = cast.ToBool(raw)
	}
	if raw, ok := os.LookupEnv("DATAVERSE_TIMEOUT"); ok {
		cfg.Timeout = time.Duration(cast.ToInt(raw)) * time.Second
	}

	return cfg, cfg.validate()
}
