package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/annolab/annosearch/internal/domain/search/result"
	"github.com/annolab/annosearch/internal/engine"
)

// Search renders the compiled request into the Elasticsearch DSL,
// executes it, and normalizes the hits.
func (s *Store) Search(ctx context.Context, req *engine.SearchRequest) (result.Set, error) {
	body, err := json.Marshal(buildSearchBody(req))
	if err != nil {
		return result.Set{}, fmt.Errorf("marshal search body: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(req.Index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return result.Set{}, &engine.Error{Op: engine.OpSearch, Err: err}
	}
	defer drain(res.Body)

	if res.IsError() {
		return result.Set{}, &engine.Error{Op: engine.OpSearch, Err: fmt.Errorf("status %s: %s", res.Status(), readBody(res.Body))}
	}

	var raw engine.SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return result.Set{}, fmt.Errorf("decode search response: %w", err)
	}

	return engine.Normalize(&raw, req.MinScore)
}

// buildSearchBody renders the intermediate tree into the request body.
// The tracked total is always exact, never a capped estimate, and the
// compiler-provided sort keeps score ties deterministic.
func buildSearchBody(req *engine.SearchRequest) map[string]any {
	body := map[string]any{
		"from":             req.Offset,
		"size":             req.Size,
		"track_total_hits": true,
		"_source":          false,
		"sort":             buildSort(req.Sort),
	}

	if req.KNN != nil {
		knn := map[string]any{
			"field":          req.KNN.Field,
			"query_vector":   req.KNN.Vector,
			"k":              req.KNN.K,
			"num_candidates": numCandidates(req.KNN.K),
		}
		// kNN pre-filters take the boolean tree so the K survivors already
		// satisfy every filter.
		if !req.Query.IsEmpty() {
			knn["filter"] = buildBool(req.Query)
		}
		body["knn"] = knn
		return body
	}

	if req.Query.IsEmpty() {
		body["query"] = map[string]any{"match_all": map[string]any{}}
	} else {
		body["query"] = buildBool(req.Query)
	}
	return body
}

// numCandidates derives the kNN candidate pool from k in three stages:
// wider pools trade latency for recall as k grows.
func numCandidates(k int) int {
	switch {
	case k < 50:
		return 500
	case k < 200:
		return 100
	default:
		return 2000
	}
}

func buildBool(b engine.Bool) map[string]any {
	boolQuery := map[string]any{}
	if len(b.Must) > 0 {
		boolQuery["must"] = buildClauses(b.Must)
	}
	if len(b.Should) > 0 {
		boolQuery["should"] = buildClauses(b.Should)
		if b.MinimumShouldMatch > 0 {
			boolQuery["minimum_should_match"] = b.MinimumShouldMatch
		}
	}
	if len(b.Filter) > 0 {
		boolQuery["filter"] = buildClauses(b.Filter)
	}
	if len(b.MustNot) > 0 {
		boolQuery["must_not"] = buildClauses(b.MustNot)
	}
	return map[string]any{"bool": boolQuery}
}

func buildClauses(clauses []engine.Clause) []map[string]any {
	out := make([]map[string]any, 0, len(clauses))
	for _, c := range clauses {
		out = append(out, buildClause(c))
	}
	return out
}

func buildClause(c engine.Clause) map[string]any {
	switch clause := c.(type) {
	case engine.Term:
		return map[string]any{"term": map[string]any{clause.Field: clause.Value}}
	case engine.Terms:
		return map[string]any{"terms": map[string]any{clause.Field: clause.Values}}
	case engine.Range:
		bounds := map[string]any{}
		if clause.GE != nil {
			bounds["gte"] = *clause.GE
		}
		if clause.LE != nil {
			bounds["lte"] = *clause.LE
		}
		return map[string]any{"range": map[string]any{clause.Field: bounds}}
	case engine.Exists:
		return map[string]any{"exists": map[string]any{"field": clause.Field}}
	case engine.Match:
		if clause.Field == "" {
			return map[string]any{
				"multi_match": map[string]any{
					"query":  clause.Value,
					"fields": []string{"fields.*"},
				},
			}
		}
		return map[string]any{"match": map[string]any{clause.Field: map[string]any{"query": clause.Value}}}
	case engine.Bool:
		return buildBool(clause)
	default:
		// New clause variants must be rendered here before the compiler may
		// emit them.
		panic(fmt.Sprintf("unsupported clause type %T", c))
	}
}

func buildSort(sort []engine.SortField) []map[string]any {
	out := make([]map[string]any, 0, len(sort))
	for _, s := range sort {
		out = append(out, map[string]any{s.Field: map[string]any{"order": string(s.Order)}})
	}
	return out
}

func readBody(body io.Reader) string {
	data, err := io.ReadAll(body)
	if err != nil {
		return ""
	}
	return string(data)
}
