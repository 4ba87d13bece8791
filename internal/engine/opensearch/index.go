package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/annolab/annosearch/internal/domain/dataset"
	"github.com/annolab/annosearch/internal/engine"
)

// CreateIndex creates the per-dataset records index with a strict mapping
// computed from the dataset schema. Indexes with vector settings enable
// the knn codec at creation time since it cannot be toggled later.
func (s *Store) CreateIndex(ctx context.Context, ds *dataset.Dataset) error {
	spec := map[string]any{"mappings": buildMappings(ds)}
	if len(ds.VectorSettings()) > 0 {
		spec["settings"] = map[string]any{"index.knn": true}
	}
	body, err := json.Marshal(spec)
	if err != nil {
		return fmt.Errorf("marshal mappings: %w", err)
	}

	res, err := opensearchapi.IndicesCreateRequest{
		Index: engine.IndexName(ds.ID()),
		Body:  bytes.NewReader(body),
	}.Do(ctx, s.client)
	if err != nil {
		return &engine.Error{Op: engine.OpCreateIndex, Err: err}
	}
	defer drain(res.Body)

	if res.IsError() {
		if isErrorType(res.Body, "resource_already_exists_exception") {
			return engine.ErrIndexExists
		}
		return &engine.Error{Op: engine.OpCreateIndex, Err: fmt.Errorf("status %s", res.Status())}
	}
	return nil
}

// DeleteIndex removes a dataset's index. Deleting an absent index is not
// an error.
func (s *Store) DeleteIndex(ctx context.Context, datasetID uuid.UUID) error {
	res, err := opensearchapi.IndicesDeleteRequest{
		Index:             []string{engine.IndexName(datasetID)},
		IgnoreUnavailable: boolPtr(true),
	}.Do(ctx, s.client)
	if err != nil {
		return &engine.Error{Op: engine.OpDeleteIndex, Err: err}
	}
	defer drain(res.Body)

	if res.IsError() {
		return &engine.Error{Op: engine.OpDeleteIndex, Err: fmt.Errorf("status %s", res.Status())}
	}
	return nil
}

// IndexExists probes index existence.
func (s *Store) IndexExists(ctx context.Context, datasetID uuid.UUID) (bool, error) {
	res, err := opensearchapi.IndicesExistsRequest{
		Index: []string{engine.IndexName(datasetID)},
	}.Do(ctx, s.client)
	if err != nil {
		return false, &engine.Error{Op: engine.OpIndexExists, Err: err}
	}
	defer drain(res.Body)

	if res.StatusCode == 404 {
		return false, nil
	}
	if res.IsError() {
		return false, &engine.Error{Op: engine.OpIndexExists, Err: fmt.Errorf("status %s", res.Status())}
	}
	return true, nil
}

// buildMappings computes the strict index mapping: unknown top-level
// fields are rejected, while dynamic templates admit the per-user
// response subtrees the document shape produces at indexing time.
func buildMappings(ds *dataset.Dataset) map[string]any {
	properties := map[string]any{
		"id":          map[string]any{"type": "keyword"},
		"status":      map[string]any{"type": "keyword"},
		"inserted_at": map[string]any{"type": "date_nanos"},
		"updated_at":  map[string]any{"type": "date_nanos"},
		"fields":      map[string]any{"properties": fieldMappings(ds.Fields())},
		"responses":   map[string]any{"type": "object", "dynamic": true},
	}

	if props := ds.MetadataProperties(); len(props) > 0 {
		properties["metadata"] = map[string]any{"properties": metadataMappings(props)}
	}
	if questions := ds.Questions(); len(questions) > 0 {
		properties["suggestions"] = map[string]any{"properties": suggestionMappings(questions)}
	}
	if settings := ds.VectorSettings(); len(settings) > 0 {
		vectors := make(map[string]any, len(settings))
		for _, vs := range settings {
			vectors[vs.Name()] = map[string]any{
				"type":      "knn_vector",
				"dimension": vs.Dimensions(),
				"method": map[string]any{
					"name":       "hnsw",
					"engine":     "lucene",
					"space_type": "l2",
				},
			}
		}
		properties["vectors"] = map[string]any{"properties": vectors}
	}

	return map[string]any{
		"dynamic":           "strict",
		"properties":        properties,
		"dynamic_templates": responseTemplates(ds.Questions()),
	}
}

func fieldMappings(fields []dataset.Field) map[string]any {
	props := make(map[string]any, len(fields))
	for _, f := range fields {
		switch f.Type() {
		case dataset.FieldText:
			props[f.Name()] = map[string]any{"type": "text"}
		case dataset.FieldImage:
			props[f.Name()] = map[string]any{"type": "keyword", "index": false}
		default:
			props[f.Name()] = map[string]any{"type": "object", "enabled": false}
		}
	}
	return props
}

func metadataMappings(props []dataset.MetadataProperty) map[string]any {
	out := make(map[string]any, len(props))
	for _, p := range props {
		switch p.Type() {
		case dataset.MetadataInteger:
			out[p.Name()] = map[string]any{"type": "long"}
		case dataset.MetadataFloat:
			out[p.Name()] = map[string]any{"type": "float"}
		default:
			out[p.Name()] = map[string]any{"type": "keyword"}
		}
	}
	return out
}

func suggestionMappings(questions []dataset.Question) map[string]any {
	out := make(map[string]any, len(questions))
	for _, q := range questions {
		out[q.Name()] = map[string]any{
			"properties": map[string]any{
				"value": questionValueMapping(q.Type()),
				"score": map[string]any{"type": "float"},
				"agent": map[string]any{"type": "keyword"},
				"type":  map[string]any{"type": "keyword"},
			},
		}
	}
	return out
}

// responseTemplates admits responses.<username>.* sub-keys: one template
// for the per-user status, one per question for answer values. The path
// patterns must mirror the document shape exactly or filters on response
// scopes silently match nothing.
func responseTemplates(questions []dataset.Question) []map[string]any {
	templates := []map[string]any{
		{
			"responses_status": map[string]any{
				"path_match": "responses.*.status",
				"mapping":    map[string]any{"type": "keyword"},
			},
		},
	}
	for _, q := range questions {
		templates = append(templates, map[string]any{
			"responses_values_" + q.Name(): map[string]any{
				"path_match": "responses.*.values." + q.Name(),
				"mapping":    questionValueMapping(q.Type()),
			},
		})
	}
	return templates
}

func questionValueMapping(t dataset.QuestionType) map[string]any {
	switch t {
	case dataset.QuestionRating:
		return map[string]any{"type": "integer"}
	case dataset.QuestionText:
		return map[string]any{"type": "text"}
	default:
		return map[string]any{"type": "keyword"}
	}
}

// isErrorType reports whether the error body names the given exception
// type. The body can only be read once, so callers pass it here directly.
func isErrorType(body io.Reader, errType string) bool {
	data, err := io.ReadAll(body)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), errType)
}
