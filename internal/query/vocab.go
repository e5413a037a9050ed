// internal/query/vocab.go
package query

import "regexp"

// Fixed vocabularies for the extraction rules. These mirror the fields the
// indexed records actually carry; extending a vocabulary is a data change,
// not a code change elsewhere.

var sportVocabulary = []string{"cricket", "football", "badminton", "chess", "swimming", "athletics"}

// typeKeywords are scanned in order; the first normalized hit wins.
var typeKeywords = []string{
	"player", "coach", "venue", "residence", "event", "tournament",
	"squad", "company", "post", "hostel", "academy",
}

// typeSynonyms normalizes colloquial entity names onto indexed type values.
var typeSynonyms = map[string]string{
	"tournament": "event",
	"hostel":     "residence",
	"academy":    "company",
}

// boolPhrases is an ordered table, not a map: phrase scan order is part of
// the trace contract and must stay deterministic.
type boolPhrase struct {
	phrase    string
	predicate Equality
}

var boolPhrases = []boolPhrase{
	{"public", Equality{Field: "is_public", Value: "true"}},
	{"private", Equality{Field: "is_public", Value: "false"}},
	{"open to join", Equality{Field: "open_to_join", Value: "true"}},
	{"open_to_join", Equality{Field: "open_to_join", Value: "true"}},
	{"verified", Equality{Field: "verified", Value: "true"}},
	{"active", Equality{Field: "is_active", Value: "true"}},
}

// cityVocabulary holds the lowercase city names recognized by the proximity
// rule. The rule capitalizes the first letter when emitting location_city,
// which matches the dataset spelling "Bangalore" but would miss an index
// that stores "Bengaluru".
var cityVocabulary = []string{"mumbai", "delhi", "bangalore", "pune", "hyderabad"}

var (
	sportRes    map[string]*regexp.Regexp
	typeRes     map[string]*regexp.Regexp
	nearCityRes map[string]*regexp.Regexp
	inCityRes   map[string]*regexp.Regexp
)

func init() {
	sportRes = make(map[string]*regexp.Regexp, len(sportVocabulary))
	for _, s := range sportVocabulary {
		sportRes[s] = regexp.MustCompile(`(?i)\b` + s + `\b`)
	}

	typeRes = make(map[string]*regexp.Regexp, len(typeKeywords))
	for _, t := range typeKeywords {
		typeRes[t] = regexp.MustCompile(`(?i)\b` + t + `s?\b`)
	}

	nearCityRes = make(map[string]*regexp.Regexp, len(cityVocabulary))
	inCityRes = make(map[string]*regexp.Regexp, len(cityVocabulary))
	for _, c := range cityVocabulary {
		nearCityRes[c] = regexp.MustCompile(`(?i)near\s+` + c)
		inCityRes[c] = regexp.MustCompile(`(?i)in\s+` + c)
	}
}
