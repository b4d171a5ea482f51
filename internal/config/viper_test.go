package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir is a stand-in for t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func validTestConfig() *Config {
	var c Config
	c.Log.Level = "info"
	c.Log.Format = "text"
	c.Catalog.Backend = "file"
	c.Catalog.File = "catalog.yaml"
	return &c
}

func TestValidateConfig(t *testing.T) {
	t.Run("valid file backend", func(t *testing.T) {
		assert.NoError(t, validateConfig(validTestConfig()))
	})

	t.Run("valid postgrest backend", func(t *testing.T) {
		c := validTestConfig()
		c.Catalog.Backend = "postgrest"
		c.PostgREST.URL = "https://example.test/rest/v1"
		assert.NoError(t, validateConfig(c))
	})

	t.Run("unknown log level", func(t *testing.T) {
		c := validTestConfig()
		c.Log.Level = "loud"
		assert.Error(t, validateConfig(c))
	})

	t.Run("unknown log format", func(t *testing.T) {
		c := validTestConfig()
		c.Log.Format = "xml"
		assert.Error(t, validateConfig(c))
	})

	t.Run("file backend without path", func(t *testing.T) {
		c := validTestConfig()
		c.Catalog.File = ""
		assert.Error(t, validateConfig(c))
	})

	t.Run("postgrest backend without url", func(t *testing.T) {
		c := validTestConfig()
		c.Catalog.Backend = "postgrest"
		assert.Error(t, validateConfig(c))
	})

	t.Run("unknown backend", func(t *testing.T) {
		c := validTestConfig()
		c.Catalog.Backend = "dynamo"
		assert.Error(t, validateConfig(c))
	})
}

func TestInitializeConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "file", cfg.Catalog.Backend)
	assert.Equal(t, "catalog.yaml", cfg.Catalog.File)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestInitializeConfig_Environment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PRICELIST_STORE_ID", "store-9")
	t.Setenv("PRICELIST_API_KEY", "secret")

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "store-9", cfg.Store.ID)
	assert.Equal(t, "secret", cfg.PostgREST.APIKey)
}
