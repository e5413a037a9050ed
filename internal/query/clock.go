// internal/query/clock.go
package query

import (
	"regexp"
	"strconv"
	"strings"
)

var hourRe = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)

// ParseHour converts clock tokens like "10pm", "10 pm" or "22:00" into an
// hour on the 0-24 scale. "pm" shifts hours below 12 forward; "12am" maps
// to 0. Minutes are accepted but discarded. Callers are expected to pass
// text already confirmed to be hour-like; a bare "22" comes back as 22.
func ParseHour(token string) (int, bool) {
	m := hourRe.FindStringSubmatch(token)
	if m == nil {
		return 0, false
	}

	h, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}

	switch strings.ToLower(m[3]) {
	case "pm":
		if h < 12 {
			h += 12
		}
	case "am":
		if h == 12 {
			h = 0
		}
	}

	return h, true
}
