// internal/search/elasticsearch_test.go
package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stapubox-search/internal/common/logger"
	"stapubox-search/internal/query"
)

func newTestESClient(t *testing.T, handler http.HandlerFunc) (*elasticsearch.Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		handler(w, r)
	}))

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{srv.URL},
	})
	require.NoError(t, err)

	return client, srv
}

func TestElasticsearchSearcherParsesHits(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	client, srv := newTestESClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"took": 4,
			"hits": {
				"total": {"value": 2},
				"hits": [
					{"_source": {"objectID": "coach_1", "type": "coach"}},
					{"_source": {"objectID": "coach_2", "type": "coach"}}
				]
			}
		}`))
	})
	defer srv.Close()

	searcher := NewElasticsearchSearcher(client, logger.NewTestLogger(t))

	translated := query.Translate(query.Input{Text: "cricket coach"})
	resp, err := searcher.Search(context.Background(), Request{Index: "stapubox", Query: translated})
	require.NoError(t, err)

	assert.Equal(t, "/stapubox/_search", gotPath)

	boolQuery := gotBody["query"].(map[string]interface{})["bool"].(map[string]interface{})
	assert.Contains(t, boolQuery, "must")
	assert.Contains(t, boolQuery, "filter")

	assert.Equal(t, 2, resp.NbHits)
	require.Len(t, resp.Hits, 2)
	assert.Equal(t, "coach_1", resp.Hits[0]["objectID"])
	assert.Equal(t, int64(4), resp.TookMS)
	assert.Equal(t, "elasticsearch", resp.Backend)
}

func TestElasticsearchSearcherIndexNotFound(t *testing.T) {
	client, srv := newTestESClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": {"type": "index_not_found_exception"}}`))
	})
	defer srv.Close()

	searcher := NewElasticsearchSearcher(client, logger.NewNoOpLogger())

	_, err := searcher.Search(context.Background(), Request{
		Index: "missing",
		Query: query.Translate(query.Input{Text: "chess"}),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INDEX_NOT_FOUND")
}

func TestElasticsearchSearcherBackendError(t *testing.T) {
	client, srv := newTestESClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"type": "search_phase_execution_exception"}}`))
	})
	defer srv.Close()

	searcher := NewElasticsearchSearcher(client, logger.NewNoOpLogger())

	_, err := searcher.Search(context.Background(), Request{
		Index: "stapubox",
		Query: query.Translate(query.Input{Text: "chess"}),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEARCH_BACKEND_FAILED")
}
