// internal/server/models.go
package server

import (
	"stapubox-search/internal/query"
	"stapubox-search/internal/search"
)

// SearchRequest is the POST /search body. Lat and Lng are pointers so a
// missing coordinate is distinguishable from zero.
type SearchRequest struct {
	Q            string   `json:"q"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	Page         int      `json:"page,omitempty"`
	HitsPerPage  int      `json:"hitsPerPage,omitempty"`
	RadiusMeters int      `json:"radiusMeters,omitempty"`
}

// SearchResponse is the success envelope: the translated query alongside
// the backend results, so clients can inspect what the engine understood.
type SearchResponse struct {
	OK        bool             `json:"ok"`
	RequestID string           `json:"requestId"`
	Parsed    query.Result     `json:"parsed"`
	Results   *search.Response `json:"results"`
	Cached    bool             `json:"cached,omitempty"`
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	OK        bool        `json:"ok"`
	RequestID string      `json:"requestId"`
	Error     ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code      string   `json:"code"`
	Message   string   `json:"message"`
	Retryable bool     `json:"retryable"`
	Details   []string `json:"details,omitempty"`
}
