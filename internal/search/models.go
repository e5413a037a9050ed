// internal/search/models.go
package search

import (
	"context"

	"stapubox-search/internal/query"
)

// Request carries a translated query to a backend.
type Request struct {
	Index string
	Query query.Result
}

// Hit is one matched record, schema-free on purpose: the index holds eight
// record shapes and the handler passes hits through untouched.
type Hit map[string]interface{}

// Response is the backend-agnostic result page.
type Response struct {
	Hits        []Hit  `json:"hits"`
	NbHits      int    `json:"nbHits"`
	Page        int    `json:"page"`
	HitsPerPage int    `json:"hitsPerPage"`
	TookMS      int64  `json:"tookMs"`
	Backend     string `json:"backend"`
}

// Searcher executes a translated query against one search backend.
type Searcher interface {
	Search(ctx context.Context, req Request) (*Response, error)
	Name() string
}
