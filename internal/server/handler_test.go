// internal/server/handler_test.go
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stapubox-search/internal/cache"
	"stapubox-search/internal/common/config"
	"stapubox-search/internal/common/database"
	"stapubox-search/internal/common/logger"
	"stapubox-search/internal/common/observability"
	"stapubox-search/internal/search"
)

// stubSearcher records requests and returns a canned response or error.
type stubSearcher struct {
	calls    int
	lastReq  search.Request
	response *search.Response
	err      error
}

func (s *stubSearcher) Search(ctx context.Context, req search.Request) (*search.Response, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func (s *stubSearcher) Name() string {
	return "stub"
}

func testConfig() *config.Config {
	return &config.Config{
		Search: config.SearchConfig{
			Backend:         "elasticsearch",
			IndexName:       "stapubox",
			DefaultRadius:   10000,
			DefaultHitsPage: 20,
			MaxHitsPerPage:  100,
			RequestTimeout:  5000,
		},
	}
}

func newTestHandler(t *testing.T, searcher search.Searcher, respCache *cache.ResponseCache) *Handler {
	t.Helper()
	return NewHandler(testConfig(), searcher, respCache, logger.NewTestLogger(t), observability.New("test"))
}

func doSearch(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/search", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.HandleSearch(rec, req)
	return rec
}

func TestHandleSearchTranslatesAndQueriesBackend(t *testing.T) {
	stub := &stubSearcher{
		response: &search.Response{
			Hits:        []search.Hit{{"objectID": "player_1"}},
			NbHits:      1,
			HitsPerPage: 20,
			Backend:     "stub",
		},
	}
	h := newTestHandler(t, stub, nil)

	rec := doSearch(t, h, `{"q": "u16 cricket"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.OK)
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, "age <= 16 AND type:player AND sport:cricket", resp.Parsed.Filters)
	assert.Equal(t, []string{"uage", "sport"}, resp.Parsed.Trace)
	require.NotNil(t, resp.Results)
	assert.Equal(t, 1, resp.Results.NbHits)

	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, "stapubox", stub.lastReq.Index)
	assert.Equal(t, 20, stub.lastReq.Query.HitsPerPage)
}

func TestHandleSearchRejectsNonPost(t *testing.T) {
	h := newTestHandler(t, &stubSearcher{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	rec := httptest.NewRecorder()
	h.HandleSearch(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleSearchRejectsMalformedJSON(t *testing.T) {
	h := newTestHandler(t, &stubSearcher{}, nil)

	rec := doSearch(t, h, `{"q": `)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.OK)
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

func TestHandleSearchSchemaValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing query", body: `{"page": 0}`},
		{name: "lat without lng", body: `{"q": "cricket", "lat": 19.07}`},
		{name: "latitude out of range", body: `{"q": "cricket", "lat": 120.0, "lng": 77.59}`},
		{name: "unknown field", body: `{"q": "cricket", "index": "other"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubSearcher{}
			h := newTestHandler(t, stub, nil)

			rec := doSearch(t, h, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "INVALID_QUERY_FORMAT", resp.Error.Code)
			assert.False(t, resp.Error.Retryable)
			assert.NotEmpty(t, resp.Error.Details)
			assert.Equal(t, 0, stub.calls)
		})
	}
}

func TestHandleSearchDefaultsGeoAnchorToCaller(t *testing.T) {
	stub := &stubSearcher{response: &search.Response{Backend: "stub"}}
	h := newTestHandler(t, stub, nil)

	rec := doSearch(t, h, `{"q": "cricket", "lat": 19.076, "lng": 72.8777}`)
	require.Equal(t, http.StatusOK, rec.Code)

	anchor := stub.lastReq.Query.GeoAnchor
	require.NotNil(t, anchor)
	assert.Equal(t, 19.076, anchor.Lat)
	assert.Equal(t, 72.8777, anchor.Lng)
	assert.Equal(t, 10000, anchor.RadiusMeters)
}

func TestHandleSearchClampsHitsPerPage(t *testing.T) {
	stub := &stubSearcher{response: &search.Response{Backend: "stub"}}
	h := newTestHandler(t, stub, nil)

	rec := doSearch(t, h, `{"q": "cricket", "hitsPerPage": 100}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100, stub.lastReq.Query.HitsPerPage)
}

func TestHandleSearchBackendFailure(t *testing.T) {
	stub := &stubSearcher{err: context.DeadlineExceeded}
	h := newTestHandler(t, stub, nil)

	rec := doSearch(t, h, `{"q": "cricket"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.OK)
	assert.Equal(t, "SEARCH_BACKEND_FAILED", resp.Error.Code)
	assert.True(t, resp.Error.Retryable)
}

func TestHandleSearchServesFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })

	respCache := cache.New(rdb, time.Minute, logger.NewTestLogger(t))

	stub := &stubSearcher{
		response: &search.Response{NbHits: 2, Backend: "stub"},
	}
	h := newTestHandler(t, stub, respCache)

	first := doSearch(t, h, `{"q": "cricket coach"}`)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, 1, stub.calls)

	second := doSearch(t, h, `{"q": "cricket coach"}`)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 1, stub.calls)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.True(t, resp.Cached)
	assert.Equal(t, 2, resp.Results.NbHits)
}

func TestHandleHealth(t *testing.T) {
	h := newTestHandler(t, &stubSearcher{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.HandleHealth(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
