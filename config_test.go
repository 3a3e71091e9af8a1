package dataverse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATAVERSE_API_URL", "https://org.crm.dynamics.com/api/data/v9.2")
	t.Setenv("DATAVERSE_TOKEN_URL", "https://login.example.com/token")
	t.Setenv("DATAVERSE_CLIENT_ID", "client")
	t.Setenv("DATAVERSE_CLIENT_SECRET", "secret")
	t.Setenv("DATAVERSE_SCOPES", "https://org.crm.dynamics.com/.default")
}

func TestFromEnvironment(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := FromEnvironment()
	require.NoError(t, err)

	assert.Equal(t, "https://org.crm.dynamics.com/api/data/v9.2", cfg.APIURL)
	assert.Equal(t, []string{"https://org.crm.dynamics.com/.default"}, cfg.Scopes)
	assert.True(t, cfg.CacheToken)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestFromEnvironment_MultipleScopes(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DATAVERSE_SCOPES", "https://a.example.com/.default, https://b.example.com/.default")

	cfg, err := FromEnvironment()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://a.example.com/.default",
		"https://b.example.com/.default",
	}, cfg.Scopes)
}

func TestFromEnvironment_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DATAVERSE_CACHE_TOKEN", "0")
	t.Setenv("DATAVERSE_TIMEOUT", "30")

	cfg, err := FromEnvironment()
	require.NoError(t, err)
	assert.False(t, cfg.CacheToken)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestFromEnvironment_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DATAVERSE_CLIENT_SECRET", "")

	_, err := FromEnvironment()
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	valid := Config{
		APIURL:       "https://org.crm.dynamics.com/api/data/v9.2",
		TokenURL:     "https://login.example.com/token",
		ClientID:     "client",
		ClientSecret: "secret",
		Scopes:       []string{"scope"},
	}
	require.NoError(t, valid.validate())

	for name, mutate := range map[string]func(*Config){
		"api url":   func(c *Config) { c.APIURL = "" },
		"token url": func(c *Config) { c.TokenURL = "" },
		"client id": func(c *Config) { c.ClientID = "" },
		"secret":    func(c *Config) { c.ClientSecret = "" },
		"scopes":    func(c *Config) { c.Scopes = nil },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			assert.Error(t, cfg.validate())
		})
	}
}
