// internal/search/algolia.go
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	stderrors "stapubox-search/internal/common/errors"
	commonhttp "stapubox-search/internal/common/http"
	"stapubox-search/internal/common/logger"
	"stapubox-search/internal/common/metrics"
)

// AlgoliaSearcher runs translated queries against the hosted Algolia REST
// API. BaseURL is configurable so tests can stand in a local server.
type AlgoliaSearcher struct {
	appID   string
	apiKey  string
	baseURL string
	client  *commonhttp.Client
	logger  logger.Logger
}

func NewAlgoliaSearcher(appID, apiKey, baseURL string, timeout time.Duration, log logger.Logger) *AlgoliaSearcher {
	return &AlgoliaSearcher{
		appID:   appID,
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  commonhttp.NewClient(timeout),
		logger:  log,
	}
}

func (s *AlgoliaSearcher) Name() string {
	return "algolia"
}

// algoliaQueryBody is the REST search body: Algolia takes every search
// option as one URL-encoded params string.
type algoliaQueryBody struct {
	Params string `json:"params"`
}

type algoliaResponse struct {
	Hits             []map[string]interface{} `json:"hits"`
	NbHits           int                      `json:"nbHits"`
	Page             int                      `json:"page"`
	HitsPerPage      int                      `json:"hitsPerPage"`
	ProcessingTimeMS int64                    `json:"processingTimeMS"`
}

func (s *AlgoliaSearcher) Search(ctx context.Context, req Request) (*Response, error) {
	params := url.Values{}
	params.Set("query", req.Query.FreeText)
	if req.Query.Filters != "" {
		params.Set("filters", req.Query.Filters)
	}
	if req.Query.GeoAnchor != nil {
		params.Set("aroundLatLng", fmt.Sprintf("%g,%g", req.Query.GeoAnchor.Lat, req.Query.GeoAnchor.Lng))
		params.Set("aroundRadius", strconv.Itoa(req.Query.GeoAnchor.RadiusMeters))
	}
	params.Set("page", strconv.Itoa(req.Query.Page))
	params.Set("hitsPerPage", strconv.Itoa(req.Query.HitsPerPage))

	body, err := json.Marshal(algoliaQueryBody{Params: params.Encode()})
	if err != nil {
		return nil, stderrors.NewSearchBackendFailedError(s.Name(), err)
	}

	endpoint := fmt.Sprintf("%s/1/indexes/%s/query", s.baseURL, url.PathEscape(req.Index))
	httpReq, err := s.newRequest(endpoint, body)
	if err != nil {
		return nil, stderrors.NewSearchBackendFailedError(s.Name(), err)
	}

	start := time.Now()
	resp, err := s.client.DoWithContext(ctx, httpReq)
	metrics.SearchRequestDuration.WithLabelValues(s.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, stderrors.NewSearchTimeoutError(s.Name())
		}
		return nil, stderrors.NewExternalServiceError(s.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, stderrors.NewIndexNotFoundError(req.Index)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, stderrors.NewSearchBackendFailedError(s.Name(), fmt.Errorf("status %d", resp.StatusCode))
	}

	var parsed algoliaResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, stderrors.NewSearchBackendFailedError(s.Name(), err)
	}

	hits := make([]Hit, 0, len(parsed.Hits))
	for _, h := range parsed.Hits {
		hits = append(hits, Hit(h))
	}

	s.logger.Debug("algolia search completed", map[string]interface{}{
		"index":   req.Index,
		"nb_hits": parsed.NbHits,
		"took_ms": parsed.ProcessingTimeMS,
	})

	return &Response{
		Hits:        hits,
		NbHits:      parsed.NbHits,
		Page:        parsed.Page,
		HitsPerPage: parsed.HitsPerPage,
		TookMS:      parsed.ProcessingTimeMS,
		Backend:     s.Name(),
	}, nil
}

// saveBatchSize bounds one batch write; Algolia caps batch payloads, and
// 1000 objects keeps each request well under the limit.
const saveBatchSize = 1000

type algoliaBatchOperation struct {
	Action string                 `json:"action"`
	Body   map[string]interface{} `json:"body"`
}

type algoliaBatchBody struct {
	Requests []algoliaBatchOperation `json:"requests"`
}

// ClearObjects deletes every record in the index, leaving settings intact.
func (s *AlgoliaSearcher) ClearObjects(ctx context.Context, index string) error {
	endpoint := fmt.Sprintf("%s/1/indexes/%s/clear", s.baseURL, url.PathEscape(index))
	httpReq, err := s.newRequest(endpoint, nil)
	if err != nil {
		return stderrors.NewSearchBackendFailedError(s.Name(), err)
	}

	resp, err := s.client.DoWithContext(ctx, httpReq)
	if err != nil {
		return stderrors.NewExternalServiceError(s.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return stderrors.NewIndexNotFoundError(index)
	}
	if resp.StatusCode != http.StatusOK {
		return stderrors.NewSearchBackendFailedError(s.Name(), fmt.Errorf("status %d", resp.StatusCode))
	}
	return nil
}

// SaveObjects writes records to the index through the batch endpoint in
// chunks of saveBatchSize.
func (s *AlgoliaSearcher) SaveObjects(ctx context.Context, index string, objects []map[string]interface{}) error {
	endpoint := fmt.Sprintf("%s/1/indexes/%s/batch", s.baseURL, url.PathEscape(index))

	for start := 0; start < len(objects); start += saveBatchSize {
		end := start + saveBatchSize
		if end > len(objects) {
			end = len(objects)
		}

		batch := algoliaBatchBody{Requests: make([]algoliaBatchOperation, 0, end-start)}
		for _, obj := range objects[start:end] {
			batch.Requests = append(batch.Requests, algoliaBatchOperation{Action: "addObject", Body: obj})
		}

		body, err := json.Marshal(batch)
		if err != nil {
			return stderrors.NewSearchBackendFailedError(s.Name(), err)
		}

		httpReq, err := s.newRequest(endpoint, body)
		if err != nil {
			return stderrors.NewSearchBackendFailedError(s.Name(), err)
		}

		resp, err := s.client.DoWithContext(ctx, httpReq)
		if err != nil {
			return stderrors.NewExternalServiceError(s.Name(), err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return stderrors.NewSearchBackendFailedError(s.Name(), fmt.Errorf("status %d", resp.StatusCode))
		}

		s.logger.Info("algolia batch saved", map[string]interface{}{
			"index": index,
			"count": end - start,
		})
	}
	return nil
}

func (s *AlgoliaSearcher) newRequest(endpoint string, body []byte) (*http.Request, error) {
	httpReq, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Algolia-Application-Id", s.appID)
	httpReq.Header.Set("X-Algolia-API-Key", s.apiKey)
	return httpReq, nil
}
