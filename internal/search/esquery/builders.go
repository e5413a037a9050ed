package esquery

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"stapubox-search/internal/query"
)

var ErrMissingIndex = errors.New("index name is required")

// BuildSearchRequest maps a translated query onto an Elasticsearch search
// request. Free text becomes a multi_match must clause; every predicate
// becomes a filter clause, so predicate matching never affects scoring.
func BuildSearchRequest(index string, q query.Result) (*esapi.SearchRequest, error) {
	if index == "" {
		return nil, ErrMissingIndex
	}

	body := BuildQueryBody(q)

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query body: %w", err)
	}

	from := q.Page * q.HitsPerPage
	size := q.HitsPerPage

	req := esapi.SearchRequest{
		Index: []string{index},
		Body:  strings.NewReader(string(raw)),
		From:  &from,
		Size:  &size,
	}

	return &req, nil
}

// BuildQueryBody builds the bool query for a translated query.
func BuildQueryBody(q query.Result) map[string]interface{} {
	boolQuery := make(map[string]interface{})
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if q.FreeText != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  q.FreeText,
				"fields": []string{"name^3", "search_blob^2", "description"},
				"type":   "best_fields",
			},
		})
	}

	for _, pred := range q.FilterExpression {
		if clause := predicateClause(pred); clause != nil {
			filterClauses = append(filterClauses, clause)
		}
	}

	if q.GeoAnchor != nil {
		filterClauses = append(filterClauses, map[string]interface{}{
			"geo_distance": map[string]interface{}{
				"distance": fmt.Sprintf("%dm", q.GeoAnchor.RadiusMeters),
				"location": map[string]interface{}{
					"lat": q.GeoAnchor.Lat,
					"lon": q.GeoAnchor.Lng,
				},
			},
		})
	}

	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery["must"] = mustClauses
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
	}
}

func predicateClause(pred query.Predicate) interface{} {
	switch p := pred.(type) {
	case query.Equality:
		return map[string]interface{}{
			"term": map[string]interface{}{p.Field: p.Value},
		}

	case query.Comparison:
		bound := "lte"
		if p.Op == query.OpGTE {
			bound = "gte"
		}
		return map[string]interface{}{
			"range": map[string]interface{}{
				p.Field: map[string]interface{}{bound: p.Value},
			},
		}

	case query.Disjunction:
		should := make([]interface{}, 0, len(p.Predicates))
		for _, inner := range p.Predicates {
			if clause := predicateClause(inner); clause != nil {
				should = append(should, clause)
			}
		}
		if len(should) == 0 {
			return nil
		}
		return map[string]interface{}{
			"bool": map[string]interface{}{
				"should":               should,
				"minimum_should_match": 1,
			},
		}
	}

	return nil
}
