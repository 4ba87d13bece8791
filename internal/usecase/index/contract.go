package index

import (
	"context"

	"github.com/google/uuid"

	"github.com/annolab/annosearch/internal/domain/dataset"
)

// Engine defines the engine contract for index lifecycle operations.
type Engine interface {
	CreateIndex(ctx context.Context, ds *dataset.Dataset) error
	DeleteIndex(ctx context.Context, datasetID uuid.UUID) error
	IndexExists(ctx context.Context, datasetID uuid.UUID) (bool, error)
	BulkUpsert(ctx context.Context, ds *dataset.Dataset, records []dataset.Record) error
	DeleteRecords(ctx context.Context, datasetID uuid.UUID, ids []uuid.UUID) error
}

// RecordSource pages through a dataset's records for reindexing.
// Implementations return fewer than limit records only on the last page.
type RecordSource interface {
	ListRecords(ctx context.Context, datasetID uuid.UUID, offset, limit int) ([]dataset.Record, error)
}
