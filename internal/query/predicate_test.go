// internal/query/predicate_test.go
package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredicateRendering(t *testing.T) {
	tests := []struct {
		name string
		pred Predicate
		want string
	}{
		{name: "equality", pred: Equality{Field: "type", Value: "coach"}, want: "type:coach"},
		{name: "comparison lte", pred: Comparison{Field: "age", Op: OpLTE, Value: 16}, want: "age <= 16"},
		{name: "comparison gte", pred: Comparison{Field: "experience_years", Op: OpGTE, Value: 5}, want: "experience_years >= 5"},
		{
			name: "disjunction",
			pred: Disjunction{Predicates: []Predicate{
				Equality{Field: "hashtags", Value: "trials"},
				Equality{Field: "hashtags", Value: "camp"},
			}},
			want: "(hashtags:trials OR hashtags:camp)",
		},
		{
			name: "single element disjunction",
			pred: Disjunction{Predicates: []Predicate{Equality{Field: "hashtags", Value: "trials"}}},
			want: "(hashtags:trials)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred.String())
		})
	}
}

func TestRender(t *testing.T) {
	t.Run("empty sequence renders empty string", func(t *testing.T) {
		assert.Equal(t, "", Render(nil))
		assert.Equal(t, "", Render([]Predicate{}))
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		got := Render([]Predicate{
			Equality{Field: "sport", Value: "cricket"},
			Comparison{Field: "age", Op: OpLTE, Value: 16},
			Equality{Field: "type", Value: "player"},
		})
		assert.Equal(t, "sport:cricket AND age <= 16 AND type:player", got)
	})

	t.Run("duplicates are kept", func(t *testing.T) {
		got := Render([]Predicate{
			Equality{Field: "type", Value: "coach"},
			Equality{Field: "type", Value: "coach"},
		})
		assert.Equal(t, "type:coach AND type:coach", got)
	})
}

func TestBuilder(t *testing.T) {
	b := NewBuilder()
	assert.Empty(t, b.Predicates())
	assert.Empty(t, b.Trace())
	assert.Equal(t, "", b.Render())

	b.Append(Equality{Field: "sport", Value: "chess"})
	b.Fired("sport")
	b.Append(Comparison{Field: "entry_fee", Op: OpLTE, Value: 500})
	b.Fired("numeric:entry_fee")

	assert.Len(t, b.Predicates(), 2)
	assert.Equal(t, []string{"sport", "numeric:entry_fee"}, b.Trace())
	assert.Equal(t, "sport:chess AND entry_fee <= 500", b.Render())
}
