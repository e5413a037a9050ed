// internal/query/predicate.go
package query

import (
	"fmt"
	"strings"
)

// Operator is a numeric comparison operator accepted by the backend filter
// language. No rule produces strict inequalities.
type Operator string

const (
	OpLTE Operator = "<="
	OpGTE Operator = ">="
)

// Predicate is a single structured condition destined for the backend
// filter expression: an equality, a numeric comparison or an OR-group.
type Predicate interface {
	fmt.Stringer
}

// Equality filters on an exact field value, rendered "field:value".
type Equality struct {
	Field string
	Value string
}

func (p Equality) String() string {
	return p.Field + ":" + p.Value
}

// Comparison filters on a numeric bound, rendered "field <= 100".
type Comparison struct {
	Field string
	Op    Operator
	Value int
}

func (p Comparison) String() string {
	return fmt.Sprintf("%s %s %d", p.Field, p.Op, p.Value)
}

// Disjunction is an OR-group counting as one element of the top-level
// AND sequence, rendered parenthesized.
type Disjunction struct {
	Predicates []Predicate
}

func (p Disjunction) String() string {
	parts := make([]string, 0, len(p.Predicates))
	for _, inner := range p.Predicates {
		parts = append(parts, inner.String())
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// Render joins top-level predicates with AND, preserving insertion order.
// Rendering the same sequence twice yields the same string.
func Render(predicates []Predicate) string {
	if len(predicates) == 0 {
		return ""
	}
	parts := make([]string, 0, len(predicates))
	for _, p := range predicates {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, " AND ")
}

// Builder accumulates predicates and a trace of the rules that fired.
// Rules append in their fixed execution order; nothing is deduplicated,
// so two rules may both contribute a "type" equality.
type Builder struct {
	predicates []Predicate
	trace      []string
}

func NewBuilder() *Builder {
	return &Builder{
		predicates: []Predicate{},
		trace:      []string{},
	}
}

// Append adds a predicate to the ordered sequence.
func (b *Builder) Append(p Predicate) {
	b.predicates = append(b.predicates, p)
}

// Fired records a rule identifier in the trace.
func (b *Builder) Fired(rule string) {
	b.trace = append(b.trace, rule)
}

// Predicates returns the accumulated sequence in insertion order.
func (b *Builder) Predicates() []Predicate {
	return b.predicates
}

// Trace returns the ordered list of rule identifiers that fired.
func (b *Builder) Trace() []string {
	return b.trace
}

// Render renders the accumulated sequence as one filter expression.
func (b *Builder) Render() string {
	return Render(b.predicates)
}
