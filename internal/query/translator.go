// internal/query/translator.go
package query

import "strings"

// DefaultRadiusMeters is the radius applied to "near me" searches when the
// caller does not override it.
const DefaultRadiusMeters = 10000

// DefaultHitsPerPage is applied when the caller leaves the page size unset.
const DefaultHitsPerPage = 20

// LatLng is a user coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// GeoAnchor is a point plus radius for proximity search, distinct from an
// exact location_city equality filter.
type GeoAnchor struct {
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	RadiusMeters int     `json:"radiusMeters"`
}

// Input is one translation request. UserLocation is nil when the caller
// sent no coordinates; RadiusMeters zero means the default radius.
type Input struct {
	Text         string
	UserLocation *LatLng
	Page         int
	HitsPerPage  int
	RadiusMeters int
}

// Result is the structured query produced from free-form search text.
// Trace lists the rules that fired, in order, for diagnostics only.
type Result struct {
	FreeText         string      `json:"freeText"`
	FilterExpression []Predicate `json:"-"`
	Filters          string      `json:"filters"`
	GeoAnchor        *GeoAnchor  `json:"geoAnchor,omitempty"`
	Page             int         `json:"page"`
	HitsPerPage      int         `json:"hitsPerPage"`
	Trace            []string    `json:"trace"`
}

// Translate runs the extraction rules in their fixed order against the
// query text and assembles the structured result. It is deterministic,
// allocates everything fresh per call and never fails: malformed input
// degrades to rules not firing.
func Translate(in Input) Result {
	raw := strings.TrimSpace(in.Text)
	lc := strings.ToLower(raw)

	res := Result{
		FreeText:         raw,
		FilterExpression: []Predicate{},
		Page:             in.Page,
		HitsPerPage:      in.HitsPerPage,
		Trace:            []string{},
	}
	if res.Page < 0 {
		res.Page = 0
	}
	if res.HitsPerPage <= 0 {
		res.HitsPerPage = DefaultHitsPerPage
	}
	if raw == "" {
		return res
	}

	b := NewBuilder()
	tags := extractHashtags(raw)

	ruleHashtags(tags, b)
	ruleAgeCap(raw, b)
	ruleSport(raw, b)
	ruleEntityType(raw, b)
	ruleBoolPhrases(lc, b)
	ruleExperience(raw, b)
	ruleAmountComparisons(raw, lc, b)
	ruleOperatingHours(raw, b)
	res.GeoAnchor = ruleProximity(raw, in.UserLocation, in.RadiusMeters, b)

	// Hashtag-only queries rely on filters alone; the free text would
	// otherwise have to match a literal "#" in the index.
	if strings.HasPrefix(raw, "#") && len(tags) > 0 {
		res.FreeText = ""
		b.Fired("hashtag_only")
	}

	res.FilterExpression = b.Predicates()
	res.Filters = b.Render()
	res.Trace = b.Trace()
	return res
}
