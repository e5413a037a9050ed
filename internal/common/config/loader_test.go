package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadFromFileAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
search:
  backend: elasticsearch
database:
  elasticsearch:
    addresses:
      - http://localhost:9200
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "stapubox", cfg.Search.IndexName)
	assert.Equal(t, 10000, cfg.Search.DefaultRadius)
	assert.Equal(t, 20, cfg.Search.DefaultHitsPage)
	assert.Equal(t, 100, cfg.Search.MaxHitsPerPage)
	assert.Equal(t, 60000, cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFileRejectsUnknownBackend(t *testing.T) {
	path := writeConfigFile(t, `
search:
  backend: solr
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search.backend")
}

func TestLoadFromFileDerivesAlgoliaBaseURL(t *testing.T) {
	path := writeConfigFile(t, `
search:
  backend: algolia
algolia:
  app_id: TESTAPP
  api_key: secret
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://TESTAPP-dsn.algolia.net", cfg.Algolia.BaseURL)
}

func TestElasticsearchConfigGetURL(t *testing.T) {
	assert.Equal(t, "http://es:9200",
		ElasticsearchConfig{URL: "http://es:9200", Addresses: []string{"http://other:9200"}}.GetURL())
	assert.Equal(t, "http://other:9200",
		ElasticsearchConfig{Addresses: []string{"http://other:9200"}}.GetURL())
	assert.Equal(t, "", ElasticsearchConfig{}.GetURL())
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 5*time.Second, GetDuration(5000))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}
