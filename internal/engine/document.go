package engine

import (
	"time"

	"github.com/annolab/annosearch/internal/domain/dataset"
)

// EncodeRecord renders a record into the engine document shape. Both
// adapters index the same document; only the field mappings differ.
// Changing this shape requires a full reindex since mappings are strict.
func EncodeRecord(r dataset.Record) map[string]any {
	doc := map[string]any{
		"id":          r.ID().String(),
		"status":      string(r.Status()),
		"inserted_at": r.InsertedAt().UTC().Format(time.RFC3339Nano),
		"updated_at":  r.UpdatedAt().UTC().Format(time.RFC3339Nano),
		"fields":      r.Fields(),
	}

	if md := r.Metadata(); len(md) > 0 {
		doc["metadata"] = md
	}

	if responses := r.Responses(); len(responses) > 0 {
		byUser := make(map[string]any, len(responses))
		for _, resp := range responses {
			byUser[resp.Username] = map[string]any{
				"values": resp.Values,
				"status": string(resp.Status),
			}
		}
		doc["responses"] = byUser
	}

	if suggestions := r.Suggestions(); len(suggestions) > 0 {
		byQuestion := make(map[string]any, len(suggestions))
		for _, sug := range suggestions {
			entry := map[string]any{"value": sug.Value}
			if sug.Score != nil {
				entry["score"] = *sug.Score
			}
			if sug.Agent != "" {
				entry["agent"] = sug.Agent
			}
			if sug.Type != "" {
				entry["type"] = sug.Type
			}
			byQuestion[sug.QuestionName] = entry
		}
		doc["suggestions"] = byQuestion
	}

	if vectors := r.Vectors(); len(vectors) > 0 {
		byName := make(map[string]any, len(vectors))
		for name, value := range vectors {
			byName[name] = value
		}
		doc["vectors"] = byName
	}

	return doc
}
