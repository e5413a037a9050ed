// internal/query/rules.go
package query

import (
	"regexp"
	"strconv"
	"strings"
)

// Extraction rules. Each rule is a total function of the raw query text
// that either appends predicates to the builder or leaves it untouched;
// there is no error path. Rule execution order lives in Translate and is
// part of the contract.

var (
	hashtagRe  = regexp.MustCompile(`#([A-Za-z0-9_]+)`)
	ageShortRe = regexp.MustCompile(`(?i)\bu[-\s]?(\d{1,2})\b`)
	ageUnderRe = regexp.MustCompile(`(?i)\bunder\s+(\d{1,2})\b`)

	experienceOfRe    = regexp.MustCompile(`(?i)experience\s*(?:of)?\s*(?:>=|<=|>|<)?\s*(\d{1,3})`)
	experienceYearsRe = regexp.MustCompile(`(?i)(\d{1,2})\+?\s*years? (?:experience|exp)`)

	// Amount tokens may carry commas, decimals and magnitude suffixes;
	// ParseMagnitude sorts them out afterwards.
	genericUnderRe  = regexp.MustCompile(`\b(?:under|below|less than|<)\s+([0-9,.kKmMlL]+)\b`)
	genericAboveRe  = regexp.MustCompile(`\b(?:above|over|greater than|>|>=)\s+([0-9,.kKmMlL]+)\b`)
	coachPriceRe    = regexp.MustCompile(`(?i)coach\s+(?:under|below|<=|<)\s*([0-9,.kKmMlL]+)\s*(?:per session|session|/session)?`)
	entryFeeRe      = regexp.MustCompile(`(?i)\b(?:entry fee|entry|fee)\s*(?:under|below|<=|<|over|above|>=|>)?\s*([0-9,.kKmMlL]+)\b`)
	tournamentFeeRe = regexp.MustCompile(`(?i)\btournaments?\s+(?:under|below)\s+([0-9,.kKmMlL]+)\b`)
	residenceRentRe = regexp.MustCompile(`(?i)\b(hostel|hostels|hostel under|residence) (?:under|below)\s*([0-9,.kKmMlL]+)\b`)
	prizePoolRe     = regexp.MustCompile(`(?i)\b(prize pool|prize)\s*(?:above|over|greater than|>)\s*([0-9,.kKmMlL]+)\b`)

	openAfterRe = regexp.MustCompile(`(?i)open after\s+(\d{1,2}(?::\d{2})?\s*(am|pm)?)`)
	openTillRe  = regexp.MustCompile(`(?i)open (?:till|until)\s+(\d{1,2}(?::\d{2})?\s*(am|pm)?)`)
	nearMeRe    = regexp.MustCompile(`(?i)\bnear me\b`)

	entryHintRe   = regexp.MustCompile(`entry|fee|tournament`)
	prizeHintRe   = regexp.MustCompile(`prize|prize pool`)
	monthlyHintRe = regexp.MustCompile(`hostel|monthly|per month|monthly price`)
	hourlyHintRe  = regexp.MustCompile(`hour|hourly|venue`)
)

func extractHashtags(raw string) []string {
	matches := hashtagRe.FindAllStringSubmatch(raw, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1])
	}
	return tags
}

// ruleHashtags ORs every #tag in the query into one hashtags group.
func ruleHashtags(tags []string, b *Builder) {
	if len(tags) == 0 {
		return
	}
	group := Disjunction{Predicates: make([]Predicate, 0, len(tags))}
	for _, tag := range tags {
		group.Predicates = append(group.Predicates, Equality{Field: "hashtags", Value: tag})
	}
	b.Append(group)
	b.Fired("hashtags")
}

// ruleAgeCap matches "u16", "u-16" and "under 16". The two-digit limit
// keeps "under 1000" for the numeric comparison rule.
func ruleAgeCap(raw string, b *Builder) {
	m := ageShortRe.FindStringSubmatch(raw)
	if m == nil {
		m = ageUnderRe.FindStringSubmatch(raw)
	}
	if m == nil {
		return
	}
	age, err := strconv.Atoi(m[1])
	if err != nil || age == 0 {
		return
	}
	b.Append(Comparison{Field: "age", Op: OpLTE, Value: age})
	b.Append(Equality{Field: "type", Value: "player"})
	b.Fired("uage")
}

// ruleSport adds an equality for the first sport vocabulary word present.
func ruleSport(raw string, b *Builder) {
	for _, s := range sportVocabulary {
		if sportRes[s].MatchString(raw) {
			b.Append(Equality{Field: "sport", Value: s})
			b.Fired("sport")
			return
		}
	}
}

// ruleEntityType matches singular or plural type keywords, normalizes
// synonyms and keeps the first unique hit.
func ruleEntityType(raw string, b *Builder) {
	var types []string
	seen := map[string]bool{}
	for _, t := range typeKeywords {
		if !typeRes[t].MatchString(raw) {
			continue
		}
		normalized := t
		if syn, ok := typeSynonyms[t]; ok {
			normalized = syn
		}
		if !seen[normalized] {
			seen[normalized] = true
			types = append(types, normalized)
		}
	}
	if len(types) == 0 {
		return
	}
	b.Append(Equality{Field: "type", Value: types[0]})
	b.Fired("type")
}

// ruleBoolPhrases appends one predicate per matched phrase; several may
// match in a single query.
func ruleBoolPhrases(lc string, b *Builder) {
	for _, bp := range boolPhrases {
		if strings.Contains(lc, bp.phrase) {
			b.Append(bp.predicate)
			b.Fired("bool:" + bp.phrase)
		}
	}
}

// ruleExperience covers "experience of 5", "experience >= 5" and
// "10+ years experience". Any hit implies a coach lookup with at least
// one year of experience.
func ruleExperience(raw string, b *Builder) {
	m := experienceOfRe.FindStringSubmatch(raw)
	if m == nil {
		m = experienceYearsRe.FindStringSubmatch(raw)
	}
	if m == nil {
		return
	}
	years, err := strconv.Atoi(m[1])
	if err != nil || years == 0 {
		return
	}
	b.Append(Comparison{Field: "experience_years", Op: OpGTE, Value: years})
	b.Append(Equality{Field: "type", Value: "coach"})
	b.Fired("experience")
}

type amountCandidate struct {
	fieldHint string
	op        Operator
	value     int
}

// collectAmountCandidates runs the currency-like sub-patterns in a fixed
// order. A sub-pattern whose amount token fails to parse contributes
// nothing. The entry-fee pattern applies <= even when the direction word
// said "over"; that matches the shipped behavior and is pinned by tests.
func collectAmountCandidates(raw string) []amountCandidate {
	var out []amountCandidate

	appendMatch := func(m []string, group int, hint string, op Operator) {
		if m == nil {
			return
		}
		if n, ok := ParseMagnitude(m[group]); ok {
			out = append(out, amountCandidate{fieldHint: hint, op: op, value: n})
		}
	}

	appendMatch(genericUnderRe.FindStringSubmatch(raw), 1, "", OpLTE)
	appendMatch(genericAboveRe.FindStringSubmatch(raw), 1, "", OpGTE)
	appendMatch(coachPriceRe.FindStringSubmatch(raw), 1, "price_per_session", OpLTE)
	appendMatch(entryFeeRe.FindStringSubmatch(raw), 1, "entry_fee", OpLTE)
	appendMatch(tournamentFeeRe.FindStringSubmatch(raw), 1, "entry_fee", OpLTE)
	appendMatch(residenceRentRe.FindStringSubmatch(raw), 2, "monthly_price", OpLTE)
	appendMatch(prizePoolRe.FindStringSubmatch(raw), 2, "prize_pool", OpGTE)

	return out
}

// inferAmountField resolves an unbound comparison against nearby keywords.
// Returns "" when no field can be inferred; the candidate is then dropped
// rather than guessed.
func inferAmountField(lc string) string {
	switch {
	case entryHintRe.MatchString(lc):
		return "entry_fee"
	case prizeHintRe.MatchString(lc):
		return "prize_pool"
	case monthlyHintRe.MatchString(lc):
		return "monthly_price"
	case hourlyHintRe.MatchString(lc):
		return "hourly_price"
	}
	return ""
}

// ruleAmountComparisons appends one comparison per resolvable candidate.
func ruleAmountComparisons(raw, lc string, b *Builder) {
	for _, cand := range collectAmountCandidates(raw) {
		field := cand.fieldHint
		if field == "" {
			field = inferAmountField(lc)
		}
		if field == "" {
			continue
		}
		b.Append(Comparison{Field: field, Op: cand.op, Value: cand.value})
		b.Fired("numeric:" + field)
	}
}

// ruleOperatingHours turns "open after 10pm" / "open till 23" into a
// closing-hour bound.
func ruleOperatingHours(raw string, b *Builder) {
	m := openAfterRe.FindStringSubmatch(raw)
	if m == nil {
		m = openTillRe.FindStringSubmatch(raw)
	}
	if m == nil {
		return
	}
	hour, ok := ParseHour(m[1])
	if !ok {
		return
	}
	b.Append(Comparison{Field: "venue_timings.close_hour", Op: OpGTE, Value: hour})
	b.Fired("openAfter")
}

// ruleProximity returns a geo anchor for "near me" when the caller sent
// coordinates; otherwise it scans the city vocabulary and emits exact-city
// equalities. The two strategies never combine in one call.
func ruleProximity(raw string, loc *LatLng, radiusMeters int, b *Builder) *GeoAnchor {
	if nearMeRe.MatchString(raw) && loc != nil {
		if radiusMeters <= 0 {
			radiusMeters = DefaultRadiusMeters
		}
		b.Fired("near_me")
		return &GeoAnchor{Lat: loc.Lat, Lng: loc.Lng, RadiusMeters: radiusMeters}
	}

	for _, c := range cityVocabulary {
		if nearCityRes[c].MatchString(raw) || inCityRes[c].MatchString(raw) {
			b.Append(Equality{Field: "location_city", Value: strings.ToUpper(c[:1]) + c[1:]})
			b.Fired("near_city")
		}
	}
	return nil
}
