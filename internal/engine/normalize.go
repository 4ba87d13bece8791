package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/annolab/annosearch/internal/domain/search/result"
)

// SearchResponse is the raw hits envelope both engines return. Adapters
// decode their HTTP response bodies into it and hand it to Normalize.
type SearchResponse struct {
	Hits struct {
		Total struct {
			Value    int64  `json:"value"`
			Relation string `json:"relation"`
		} `json:"total"`
		Hits []Hit `json:"hits"`
	} `json:"hits"`
}

// Hit is a single raw document hit.
type Hit struct {
	ID    string   `json:"_id"`
	Score *float64 `json:"_score"`
}

// Normalize converts a raw engine response into an ordered result set,
// preserving engine retrieval order. Hits below minScore are dropped
// client-side: not every engine applies score thresholds uniformly with
// kNN, so the cut happens after retrieval on both.
func Normalize(resp *SearchResponse, minScore *float64) (result.Set, error) {
	items := make([]result.Item, 0, len(resp.Hits.Hits))
	total := resp.Hits.Total.Value

	for _, hit := range resp.Hits.Hits {
		var score float64
		if hit.Score != nil {
			score = *hit.Score
		}
		if minScore != nil && score < *minScore {
			total--
			continue
		}
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			return result.Set{}, fmt.Errorf("parse hit id %q: %w", hit.ID, err)
		}
		items = append(items, result.NewItem(id, score))
	}

	return result.NewSet(total, items), nil
}
