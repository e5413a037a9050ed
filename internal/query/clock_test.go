// internal/query/clock_test.go
package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHour(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  int
		ok    bool
	}{
		{name: "pm shifts forward", token: "10pm", want: 22, ok: true},
		{name: "pm with space", token: "10 pm", want: 22, ok: true},
		{name: "uppercase meridiem", token: "10PM", want: 22, ok: true},
		{name: "noon stays twelve", token: "12pm", want: 12, ok: true},
		{name: "midnight maps to zero", token: "12am", want: 0, ok: true},
		{name: "morning am", token: "7am", want: 7, ok: true},
		{name: "bare 24h hour", token: "22", want: 22, ok: true},
		{name: "minutes discarded", token: "22:30", want: 22, ok: true},
		{name: "minutes with pm", token: "9:45pm", want: 21, ok: true},
		{name: "no digits", token: "evening", ok: false},
		{name: "empty", token: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseHour(tt.token)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
