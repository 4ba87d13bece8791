package engine

// Clause is the sealed union of intermediate query predicates. Adapters
// render clauses into their concrete query DSL.
type Clause interface {
	clause()
}

// Term matches an exact value on a keyword field.
type Term struct {
	Field string
	Value string
}

func (Term) clause() {}

// Terms matches any of the values on a keyword field.
type Terms struct {
	Field  string
	Values []string
}

func (Terms) clause() {}

// Range matches numeric or date values within inclusive bounds.
type Range struct {
	Field  string
	GE, LE *float64
}

func (Range) clause() {}

// Exists matches documents carrying any value under the field.
type Exists struct {
	Field string
}

func (Exists) clause() {}

// Match is a full-text match. An empty Field targets all searchable
// record fields.
type Match struct {
	Field string
	Value string
}

func (Match) clause() {}

// Bool combines clauses with boolean semantics. Filter clauses intersect
// without scoring, mirroring conjunctive (`and_`) filter semantics.
type Bool struct {
	Must    []Clause
	Should  []Clause
	Filter  []Clause
	MustNot []Clause
	// MinimumShouldMatch applies when Should is non-empty.
	MinimumShouldMatch int
}

func (Bool) clause() {}

// IsEmpty reports whether the bool group has no clauses.
func (b Bool) IsEmpty() bool {
	return len(b.Must) == 0 && len(b.Should) == 0 && len(b.Filter) == 0 && len(b.MustNot) == 0
}

// SortOrder is a rendered sort direction.
type SortOrder string

// Sort directions.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortField is a rendered sort directive. Field "_score" sorts by
// relevance.
type SortField struct {
	Field string
	Order SortOrder
}

// ScoreField is the engine pseudo-field holding the relevance score.
const ScoreField = "_score"

// KNN is a vector similarity directive: find the K nearest neighbors of
// Vector under Field, restricted by the boolean filter tree.
type KNN struct {
	Field  string
	Vector []float32
	K      int
}

// SearchRequest is the compiler output: everything an adapter needs to
// render one engine query. MinScore is applied post-retrieval by the
// normalizer, since native threshold support differs between engines.
type SearchRequest struct {
	Index    string
	Query    Bool
	KNN      *KNN
	Sort     []SortField
	Offset   int
	Size     int
	MinScore *float64
}
