package search

import (
	"context"

	"github.com/google/uuid"

	"github.com/annolab/annosearch/internal/domain/dataset"
	"github.com/annolab/annosearch/internal/domain/search/result"
	"github.com/annolab/annosearch/internal/engine"
)

// Engine defines the engine contract for search operations.
type Engine interface {
	Search(ctx context.Context, req *engine.SearchRequest) (result.Set, error)
	SupportsVectorSearch(ctx context.Context) bool
}

// RecordReader reads records for vector resolution in record-seeded
// similarity queries.
type RecordReader interface {
	Get(ctx context.Context, datasetID, recordID uuid.UUID) (dataset.Record, error)
}
