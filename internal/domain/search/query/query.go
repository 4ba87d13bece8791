// Package query defines the search query AST: a conjunction of scoped
// filters, sort directives, an optional free-text query, and an optional
// vector similarity query. Instances are built per request, validated
// once, compiled once, and discarded.
package query

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/annolab/annosearch/internal/domain/search/scope"
)

// MaxFilters bounds the number of filters in a single query.
const MaxFilters = 32

// Filter is the sealed union of filter clauses: a terms match or a
// numeric range, each bound to a scope.
type Filter interface {
	Scope() scope.Scope
	sealedFilter()
}

// Terms matches records whose scoped value equals any of the given values.
type Terms struct {
	filterScope scope.Scope
	values      []string
}

// NewTerms validates and creates a terms filter.
func NewTerms(s scope.Scope, values []string) (Terms, error) {
	if s == nil {
		return Terms{}, fmt.Errorf("filter scope is required")
	}
	if len(values) == 0 {
		return Terms{}, fmt.Errorf("terms filter requires at least one value")
	}
	for _, v := range values {
		if v == "" {
			return Terms{}, fmt.Errorf("terms filter values cannot be empty")
		}
	}
	return Terms{filterScope: s, values: values}, nil
}

// Scope returns the filter target.
func (f Terms) Scope() scope.Scope { return f.filterScope }

// Values returns the matched values.
func (f Terms) Values() []string { return f.values }

func (f Terms) sealedFilter() {}

// Range matches records whose scoped numeric value lies within [ge, le].
// Either bound may be absent, but not both.
type Range struct {
	filterScope scope.Scope
	ge, le      *float64
}

// NewRange validates and creates a range filter.
func NewRange(s scope.Scope, ge, le *float64) (Range, error) {
	if s == nil {
		return Range{}, fmt.Errorf("filter scope is required")
	}
	if ge == nil && le == nil {
		return Range{}, fmt.Errorf("range filter requires at least one bound")
	}
	if ge != nil && le != nil && *ge > *le {
		return Range{}, fmt.Errorf("range filter lower bound exceeds upper bound")
	}
	return Range{filterScope: s, ge: ge, le: le}, nil
}

// Scope returns the filter target.
func (f Range) Scope() scope.Scope { return f.filterScope }

// GE returns the inclusive lower bound, if any.
func (f Range) GE() *float64 { return f.ge }

// LE returns the inclusive upper bound, if any.
func (f Range) LE() *float64 { return f.le }

func (f Range) sealedFilter() {}

// Order is a sort direction.
type Order string

const (
	// Asc sorts ascending.
	Asc Order = "asc"
	// Desc sorts descending.
	Desc Order = "desc"
)

// IsValid checks if the order is supported.
func (o Order) IsValid() bool { return o == Asc || o == Desc }

// Sort is a single sort directive over a scope.
type Sort struct {
	sortScope scope.Scope
	order     Order
}

// NewSort validates and creates a sort directive.
func NewSort(s scope.Scope, order Order) (Sort, error) {
	if s == nil {
		return Sort{}, fmt.Errorf("sort scope is required")
	}
	if order == "" {
		order = Asc
	}
	if !order.IsValid() {
		return Sort{}, fmt.Errorf("invalid sort order: %q", order)
	}
	return Sort{sortScope: s, order: order}, nil
}

// Scope returns the sort target.
func (s Sort) Scope() scope.Scope { return s.sortScope }

// Order returns the sort direction.
func (s Sort) Order() Order { return s.order }

// MaxTextLength bounds the free-text query length.
const MaxTextLength = 4096

// Text is a free-text query, optionally restricted to one field.
type Text struct {
	field string
	value string
}

// NewText validates and creates a text query. An empty field searches all
// searchable fields.
func NewText(field, value string) (Text, error) {
	if value == "" {
		return Text{}, fmt.Errorf("text query value is required")
	}
	if len(value) > MaxTextLength {
		return Text{}, fmt.Errorf("text query too long (max %d chars)", MaxTextLength)
	}
	return Text{field: field, value: value}, nil
}

// Field returns the target field name, empty for all fields.
func (t Text) Field() string { return t.field }

// Value returns the query text.
func (t Text) Value() string { return t.value }

// Vector is a similarity query against a named vector settings, seeded
// either by a literal vector or by a reference to an existing record's
// vector. Exactly one of the two seeds must be set.
type Vector struct {
	name     string
	value    []float32
	recordID uuid.UUID
	maxK     int
	minScore *float64
}

// DefaultVectorK is the similarity result count when the caller gives none.
const DefaultVectorK = 50

// NewVector validates and creates a vector query.
func NewVector(name string, value []float32, recordID uuid.UUID, maxK int, minScore *float64) (Vector, error) {
	if name == "" {
		return Vector{}, fmt.Errorf("vector settings name is required")
	}
	if len(value) == 0 && recordID == uuid.Nil {
		return Vector{}, fmt.Errorf("vector query requires a value or a record reference")
	}
	if len(value) > 0 && recordID != uuid.Nil {
		return Vector{}, fmt.Errorf("vector query cannot have both a value and a record reference")
	}
	if maxK <= 0 {
		maxK = DefaultVectorK
	}
	if minScore != nil && (*minScore < 0 || *minScore > 1) {
		return Vector{}, fmt.Errorf("min_score must be between 0 and 1")
	}
	return Vector{name: name, value: value, recordID: recordID, maxK: maxK, minScore: minScore}, nil
}

// Name returns the vector settings name.
func (v Vector) Name() string { return v.name }

// Value returns the literal query vector, nil in record-reference mode.
func (v Vector) Value() []float32 { return v.value }

// RecordID returns the referenced record, uuid.Nil in literal mode.
func (v Vector) RecordID() uuid.UUID { return v.recordID }

// ByRecord reports whether the query is seeded by an existing record.
func (v Vector) ByRecord() bool { return v.recordID != uuid.Nil }

// MaxK returns the requested similarity result count.
func (v Vector) MaxK() int { return v.maxK }

// MinScore returns the post-retrieval score threshold, if any.
func (v Vector) MinScore() *float64 { return v.minScore }

// Query is a complete, unvalidated search request over one dataset.
type Query struct {
	filters []Filter
	sort    []Sort
	text    *Text
	vector  *Vector
	offset  int
	limit   int
}

// Pagination limits.
const (
	DefaultLimit = 50
	MaxLimit     = 1000
)

// New validates and normalizes a query. Filters combine conjunctively:
// every filter must hold.
func New(filters []Filter, sort []Sort, text *Text, vector *Vector, offset, limit int) (Query, error) {
	if len(filters) > MaxFilters {
		return Query{}, fmt.Errorf("too many filters (max %d)", MaxFilters)
	}
	if text != nil && vector != nil {
		return Query{}, fmt.Errorf("query cannot combine text and vector search")
	}
	if vector != nil && len(sort) > 0 {
		return Query{}, fmt.Errorf("vector query cannot have explicit sort")
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Query{filters: filters, sort: sort, text: text, vector: vector, offset: offset, limit: limit}, nil
}

// Filters returns the conjunctive filters.
func (q Query) Filters() []Filter { return q.filters }

// Sort returns the ordered sort directives.
func (q Query) Sort() []Sort { return q.sort }

// Text returns the free-text query, if any.
func (q Query) Text() *Text { return q.text }

// Vector returns the vector query, if any.
func (q Query) Vector() *Vector { return q.vector }

// Offset returns the pagination offset.
func (q Query) Offset() int { return q.offset }

// Limit returns the pagination limit.
func (q Query) Limit() int { return q.limit }
