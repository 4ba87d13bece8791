package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/annolab/annosearch/internal/domain/search/result"
	"github.com/annolab/annosearch/internal/engine"
)

// Search renders the compiled request into the OpenSearch DSL, executes
// it, and normalizes the hits.
func (s *Store) Search(ctx context.Context, req *engine.SearchRequest) (result.Set, error) {
	body, err := json.Marshal(buildSearchBody(req))
	if err != nil {
		return result.Set{}, fmt.Errorf("marshal search body: %w", err)
	}

	res, err := opensearchapi.SearchRequest{
		Index: []string{req.Index},
		Body:  bytes.NewReader(body),
	}.Do(ctx, s.client)
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
// Unlike Elasticsearch there is no top-level knn section: the knn plugin
// exposes a knn query clause that joins the boolean tree, with filters
// applied alongside it.
func buildSearchBody(req *engine.SearchRequest) map[string]any {
	body := map[string]any{
		"from":             req.Offset,
		"size":             req.Size,
		"track_total_hits": true,
		"_source":          false,
		"sort":             buildSort(req.Sort),
	}

	if req.KNN != nil {
		boolQuery := map[string]any{
			"must": []map[string]any{
				{
					"knn": map[string]any{
						req.KNN.Field: map[string]any{
							"vector": req.KNN.Vector,
							"k":      req.KNN.K,
						},
					},
				},
			},
		}
		if !req.Query.IsEmpty() {
			boolQuery["filter"] = []map[string]any{buildBool(req.Query)}
		}
		body["query"] = map[string]any{"bool": boolQuery}
		return body
	}

	if req.Query.IsEmpty() {
		body["query"] = map[string]any{"match_all": map[string]any{}}
	} else {
		body["query"] = buildBool(req.Query)
	}
	return body
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
