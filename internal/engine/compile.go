package engine

import (
	"fmt"

	"github.com/annolab/annosearch/internal/domain/dataset"
	"github.com/annolab/annosearch/internal/domain/search/query"
	"github.com/annolab/annosearch/internal/domain/search/scope"
)

// ResponseStatusMissing is the virtual response status matching records a
// user has not responded to at all. It compiles to a must-not-exists
// clause rather than a term, since absent responses index nothing.
const ResponseStatusMissing = "missing"

// Compile translates a validated query into the engine-agnostic search
// request. The username scopes response paths the same way they were
// indexed. queryVector must carry the resolved vector when the query has
// a vector part: either the literal value or the referenced record's
// vector, resolved by the caller before compilation.
func Compile(ds *dataset.Dataset, username string, q query.Query, queryVector []float32) (*SearchRequest, error) {
	req := &SearchRequest{
		Index:  IndexName(ds.ID()),
		Offset: q.Offset(),
		Size:   q.Limit(),
	}

	for _, f := range q.Filters() {
		clause, err := compileFilter(username, f)
		if err != nil {
			return nil, err
		}
		req.Query.Filter = append(req.Query.Filter, clause)
	}

	if text := q.Text(); text != nil {
		field := ""
		if text.Field() != "" {
			field = FieldPath(text.Field())
		}
		req.Query.Must = append(req.Query.Must, Match{Field: field, Value: text.Value()})
	}

	if vec := q.Vector(); vec != nil {
		if len(queryVector) == 0 {
			return nil, fmt.Errorf("vector query %q: query vector not resolved", vec.Name())
		}
		req.KNN = &KNN{
			Field:  VectorPath(vec.Name()),
			Vector: queryVector,
			K:      vec.MaxK(),
		}
		req.MinScore = vec.MinScore()
		// A record-seeded similarity search never returns the seed itself.
		if vec.ByRecord() {
			req.Query.MustNot = append(req.Query.MustNot, Term{Field: "id", Value: vec.RecordID().String()})
		}
	}

	sort, err := compileSort(username, q)
	if err != nil {
		return nil, err
	}
	req.Sort = sort

	return req, nil
}

// compileFilter dispatches on the filter variant, then on its scope.
func compileFilter(username string, f query.Filter) (Clause, error) {
	switch filter := f.(type) {
	case query.Terms:
		return compileTerms(username, filter)
	case query.Range:
		field, err := scopePath(username, filter.Scope())
		if err != nil {
			return nil, err
		}
		return Range{Field: field, GE: filter.GE(), LE: filter.LE()}, nil
	default:
		return nil, fmt.Errorf("unsupported filter type %T", f)
	}
}

func compileTerms(username string, f query.Terms) (Clause, error) {
	s := f.Scope()

	// Response-status filters treat "missing" as the absence of the user's
	// response, which only a must-not-exists clause can express.
	if rs, ok := s.(scope.Response); ok && rs.Property() == scope.ResponsePropertyStatus {
		return compileResponseStatus(username, f.Values()), nil
	}

	field, err := scopePath(username, s)
	if err != nil {
		return nil, err
	}
	if len(f.Values()) == 1 {
		return Term{Field: field, Value: f.Values()[0]}, nil
	}
	return Terms{Field: field, Values: f.Values()}, nil
}

func compileResponseStatus(username string, values []string) Clause {
	statusField := ResponseStatusPath(username)

	var present []string
	missing := false
	for _, v := range values {
		if v == ResponseStatusMissing {
			missing = true
			continue
		}
		present = append(present, v)
	}

	if !missing {
		if len(present) == 1 {
			return Term{Field: statusField, Value: present[0]}
		}
		return Terms{Field: statusField, Values: present}
	}

	noResponse := Bool{MustNot: []Clause{Exists{Field: statusField}}}
	if len(present) == 0 {
		return noResponse
	}
	return Bool{
		Should:             []Clause{noResponse, Terms{Field: statusField, Values: present}},
		MinimumShouldMatch: 1,
	}
}

// scopePath maps a scope to its document field path. The dispatch is
// exhaustive over the four scope kinds; an unknown variant is a
// programming error, not user input.
func scopePath(username string, s scope.Scope) (string, error) {
	switch sc := s.(type) {
	case scope.Record:
		return sc.Property(), nil
	case scope.Metadata:
		return MetadataPath(sc.Property()), nil
	case scope.Response:
		if sc.Property() == scope.ResponsePropertyStatus {
			return ResponseStatusPath(username), nil
		}
		return ResponseValuePath(username, sc.Question()), nil
	case scope.Suggestion:
		return SuggestionPath(sc.Question(), sc.Property()), nil
	default:
		return "", fmt.Errorf("unsupported scope type %T", s)
	}
}

// compileSort renders sort directives and appends the deterministic
// tie-break. Unordered score ties would make repeated identical queries
// nondeterministic and break pagination.
func compileSort(username string, q query.Query) ([]SortField, error) {
	if len(q.Sort()) == 0 {
		if q.Text() != nil || q.Vector() != nil {
			return []SortField{
				{Field: ScoreField, Order: SortDesc},
				{Field: "id", Order: SortAsc},
			}, nil
		}
		return []SortField{
			{Field: "inserted_at", Order: SortAsc},
			{Field: "id", Order: SortAsc},
		}, nil
	}

	sort := make([]SortField, 0, len(q.Sort())+1)
	sawID := false
	for _, s := range q.Sort() {
		field, err := scopePath(username, s.Scope())
		if err != nil {
			return nil, err
		}
		if field == "id" {
			sawID = true
		}
		sort = append(sort, SortField{Field: field, Order: SortOrder(s.Order())})
	}
	if !sawID {
		sort = append(sort, SortField{Field: "id", Order: SortAsc})
	}
	return sort, nil
}
