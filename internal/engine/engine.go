// Package engine defines the search-engine contract shared by the
// Elasticsearch and OpenSearch adapters, the engine-agnostic intermediate
// query tree the compiler produces, and the normalizer that turns raw
// engine hits back into an ordered result set.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/annolab/annosearch/internal/domain/dataset"
	"github.com/annolab/annosearch/internal/domain/search/result"
)

// DefaultBulkBatchSize bounds bulk request bodies when (re)indexing records.
const DefaultBulkBatchSize = 100

// Engine is the adapter contract. Two independent implementations exist
// (elastic, opensearch); they share only the compiler output as input.
type Engine interface {
	Pinger
	IndexManager
	Indexer
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks engine connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// IndexManager provides per-dataset index lifecycle operations.
// DeleteIndex is idempotent: deleting an absent index is not an error.
type IndexManager interface {
	CreateIndex(ctx context.Context, ds *dataset.Dataset) error
	DeleteIndex(ctx context.Context, datasetID uuid.UUID) error
	IndexExists(ctx context.Context, datasetID uuid.UUID) (bool, error)
}

// Indexer writes record documents into a dataset's index.
// BulkUpsert aborts with a BulkError when any item fails.
type Indexer interface {
	BulkUpsert(ctx context.Context, ds *dataset.Dataset, records []dataset.Record) error
	DeleteRecords(ctx context.Context, datasetID uuid.UUID, ids []uuid.UUID) error
}

// Searcher executes a compiled search request.
type Searcher interface {
	Search(ctx context.Context, req *SearchRequest) (result.Set, error)
	SupportsVectorSearch(ctx context.Context) bool
}
