// internal/search/elasticsearch.go
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	stderrors "stapubox-search/internal/common/errors"
	"stapubox-search/internal/common/logger"
	"stapubox-search/internal/common/metrics"
	"stapubox-search/internal/search/esquery"

	"github.com/elastic/go-elasticsearch/v8"
)

// ElasticsearchSearcher runs translated queries against an Elasticsearch
// index.
type ElasticsearchSearcher struct {
	client *elasticsearch.Client
	logger logger.Logger
}

func NewElasticsearchSearcher(client *elasticsearch.Client, log logger.Logger) *ElasticsearchSearcher {
	return &ElasticsearchSearcher{
		client: client,
		logger: log,
	}
}

func (s *ElasticsearchSearcher) Name() string {
	return "elasticsearch"
}

// esSearchResponse mirrors the subset of the Elasticsearch response body we
// read.
type esSearchResponse struct {
	Took int64 `json:"took"`
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source map[string]interface{} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *ElasticsearchSearcher) Search(ctx context.Context, req Request) (*Response, error) {
	esReq, err := esquery.BuildSearchRequest(req.Index, req.Query)
	if err != nil {
		return nil, stderrors.NewSearchBackendFailedError(s.Name(), err)
	}

	start := time.Now()
	res, err := esReq.Do(ctx, s.client)
	metrics.SearchRequestDuration.WithLabelValues(s.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, stderrors.NewSearchTimeoutError(s.Name())
		}
		return nil, stderrors.NewElasticsearchConnectionFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		if res.StatusCode == 404 {
			return nil, stderrors.NewIndexNotFoundError(req.Index)
		}
		return nil, stderrors.NewSearchBackendFailedError(s.Name(), fmt.Errorf("status %s", res.Status()))
	}

	var parsed esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, stderrors.NewSearchBackendFailedError(s.Name(), err)
	}

	hits := make([]Hit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hits = append(hits, Hit(h.Source))
	}

	s.logger.Debug("elasticsearch search completed", map[string]interface{}{
		"index":   req.Index,
		"nb_hits": parsed.Hits.Total.Value,
		"took_ms": parsed.Took,
	})

	return &Response{
		Hits:        hits,
		NbHits:      parsed.Hits.Total.Value,
		Page:        req.Query.Page,
		HitsPerPage: req.Query.HitsPerPage,
		TookMS:      parsed.Took,
		Backend:     s.Name(),
	}, nil
}
