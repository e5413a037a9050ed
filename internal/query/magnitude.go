// internal/query/magnitude.go
package query

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	lakhRe     = regexp.MustCompile(`(\d+(\.\d+)?)\s*(lakh|l|lac)`)
	thousandRe = regexp.MustCompile(`(\d+(\.\d+)?)\s*k`)
)

// ParseMagnitude normalizes a numeric token like "1,000", "1k", "1.5 lakh"
// or "1l" into an integer amount. The lakh suffix is checked before the k
// suffix so a trailing "l" is never read as anything else. Returns false
// when the token carries no recognizable number.
func ParseMagnitude(token string) (int, bool) {
	token = strings.TrimSpace(strings.ToLower(strings.ReplaceAll(token, ",", "")))
	if token == "" {
		return 0, false
	}

	if m := lakhRe.FindStringSubmatch(token); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			return int(math.Round(n * 100000)), true
		}
	}
	if m := thousandRe.FindStringSubmatch(token); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			return int(math.Round(n * 1000)), true
		}
	}
	if n, err := strconv.ParseFloat(token, 64); err == nil {
		return int(math.Round(n)), true
	}

	return 0, false
}
