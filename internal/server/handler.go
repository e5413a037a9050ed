// internal/server/handler.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"stapubox-search/internal/cache"
	"stapubox-search/internal/common/config"
	stderrors "stapubox-search/internal/common/errors"
	"stapubox-search/internal/common/logger"
	"stapubox-search/internal/common/metrics"
	"stapubox-search/internal/common/observability"
	"stapubox-search/internal/common/validation"
	"stapubox-search/internal/query"
	"stapubox-search/internal/search"
)

const maxRequestBody = 1 << 20

// Handler serves the search API: it validates the request, translates the
// free-form query, consults the response cache and falls through to the
// configured backend.
type Handler struct {
	cfg      *config.Config
	searcher search.Searcher
	cache    *cache.ResponseCache
	logger   logger.Logger
	obs      *observability.Observability
}

func NewHandler(cfg *config.Config, searcher search.Searcher, respCache *cache.ResponseCache, log logger.Logger, obs *observability.Observability) *Handler {
	return &Handler{
		cfg:      cfg,
		searcher: searcher,
		cache:    respCache,
		logger:   log,
		obs:      obs,
	}
}

func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	start := time.Now()

	if r.Method != http.MethodPost {
		h.writeError(w, requestID, http.StatusMethodNotAllowed, stderrors.NewInvalidRequestError("method not allowed"), nil)
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err != nil {
		h.writeError(w, requestID, http.StatusBadRequest, stderrors.NewInvalidRequestError("unable to read request body"), nil)
		return
	}

	// Decode twice: once untyped for schema validation, once typed.
	var bodyMap map[string]interface{}
	if err := json.Unmarshal(raw, &bodyMap); err != nil {
		h.writeError(w, requestID, http.StatusBadRequest, stderrors.NewInvalidRequestError("request body is not valid JSON"), nil)
		return
	}

	result, err := validation.ValidateSearchRequest(bodyMap)
	if err != nil {
		h.writeError(w, requestID, http.StatusInternalServerError, stderrors.NewInvalidRequestError("request validation error"), nil)
		return
	}
	if !result.Valid {
		messages := result.GetErrorMessages()
		h.writeError(w, requestID, http.StatusBadRequest, stderrors.NewInvalidQueryFormatError(strings.Join(messages, "; ")), messages)
		return
	}

	var req SearchRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		h.writeError(w, requestID, http.StatusBadRequest, stderrors.NewInvalidRequestError("request body is not valid JSON"), nil)
		return
	}

	in := query.Input{
		Text:         req.Q,
		Page:         req.Page,
		HitsPerPage:  req.HitsPerPage,
		RadiusMeters: req.RadiusMeters,
	}
	if in.HitsPerPage <= 0 {
		in.HitsPerPage = h.cfg.Search.DefaultHitsPage
	}
	if in.HitsPerPage > h.cfg.Search.MaxHitsPerPage {
		in.HitsPerPage = h.cfg.Search.MaxHitsPerPage
	}
	if in.RadiusMeters <= 0 {
		in.RadiusMeters = h.cfg.Search.DefaultRadius
	}
	if req.Lat != nil && req.Lng != nil {
		in.UserLocation = &query.LatLng{Lat: *req.Lat, Lng: *req.Lng}
	}

	translated := query.Translate(in)

	metrics.QueryTranslations.Inc()
	for _, rule := range translated.Trace {
		metrics.TranslationRulesFired.WithLabelValues(rule).Inc()
	}

	// No rule anchored the query geographically but the caller sent
	// coordinates: default to searching around the caller.
	if translated.GeoAnchor == nil && in.UserLocation != nil {
		translated.GeoAnchor = &query.GeoAnchor{
			Lat:          in.UserLocation.Lat,
			Lng:          in.UserLocation.Lng,
			RadiusMeters: in.RadiusMeters,
		}
	}

	h.logger.Info("query translated", map[string]interface{}{
		"request_id": requestID,
		"free_text":  translated.FreeText,
		"filters":    translated.Filters,
		"trace":      translated.Trace,
	})

	cacheKey := cache.Key(h.cfg.Search.IndexName, translated)
	if h.cache != nil {
		if cached := h.cache.Get(r.Context(), cacheKey); cached != nil {
			h.obs.RecordSearchProcessed(r.Context(), "cache_hit")
			h.writeJSON(w, http.StatusOK, SearchResponse{
				OK:        true,
				RequestID: requestID,
				Parsed:    translated,
				Results:   cached,
				Cached:    true,
			})
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), config.GetDuration(h.cfg.Search.RequestTimeout))
	defer cancel()

	resp, err := h.searcher.Search(ctx, search.Request{
		Index: h.cfg.Search.IndexName,
		Query: translated,
	})
	if err != nil {
		h.obs.RecordSearchProcessed(r.Context(), "error")
		h.obs.RecordSearchDuration(r.Context(), time.Since(start), "error")
		metrics.SearchRequests.WithLabelValues(h.searcher.Name(), "error").Inc()

		var stdErr *stderrors.StandardError
		if !errors.As(err, &stdErr) {
			stdErr = stderrors.NewSearchBackendFailedError(h.searcher.Name(), err)
		}

		h.logger.WithError(err).Error("backend search failed", map[string]interface{}{
			"request_id": requestID,
			"backend":    h.searcher.Name(),
			"category":   stderrors.GetErrorCategory(stdErr.Code),
		})
		h.writeError(w, requestID, http.StatusBadGateway, stdErr, nil)
		return
	}

	if h.cache != nil {
		h.cache.Set(r.Context(), cacheKey, resp)
	}

	h.obs.RecordSearchProcessed(r.Context(), "success")
	h.obs.RecordSearchDuration(r.Context(), time.Since(start), "success")
	metrics.SearchRequests.WithLabelValues(h.searcher.Name(), "success").Inc()

	h.writeJSON(w, http.StatusOK, SearchResponse{
		OK:        true,
		RequestID: requestID,
		Parsed:    translated,
		Results:   resp,
	})
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"backend": h.searcher.Name(),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.WithError(err).Warn("failed to write response", nil)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, requestID string, status int, stdErr *stderrors.StandardError, details []string) {
	h.writeJSON(w, status, ErrorResponse{
		OK:        false,
		RequestID: requestID,
		Error: ErrorDetail{
			Code:      string(stdErr.Code),
			Message:   stdErr.Message,
			Retryable: stderrors.IsRetryableErrorCode(stdErr.Code),
			Details:   details,
		},
	})
}
