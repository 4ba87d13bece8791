// Package index implements dataset index lifecycle: create, delete,
// existence checks, record upserts and deletes, and full rebuilds.
package index

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/annolab/annosearch/internal/domain/dataset"
	"github.com/annolab/annosearch/internal/engine"
	"github.com/annolab/annosearch/internal/metrics"
)

// Service manages per-dataset search indexes.
type Service struct {
	engine    Engine
	records   RecordSource
	batchSize int
}

// New creates an index service.
func New(eng Engine, records RecordSource) *Service {
	return &Service{engine: eng, records: records, batchSize: engine.DefaultBulkBatchSize}
}

// Create creates the dataset's index. Creating an index that already
// exists is not an error; the mapping is derived from the same schema
// either way.
func (s *Service) Create(ctx context.Context, ds *dataset.Dataset) error {
	err := s.engine.CreateIndex(ctx, ds)
	if err != nil && !errors.Is(err, engine.ErrIndexExists) {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Delete removes the dataset's index. Idempotent.
func (s *Service) Delete(ctx context.Context, datasetID uuid.UUID) error {
	if err := s.engine.DeleteIndex(ctx, datasetID); err != nil {
		return fmt.Errorf("delete index: %w", err)
	}
	return nil
}

// Exists probes index existence.
func (s *Service) Exists(ctx context.Context, datasetID uuid.UUID) (bool, error) {
	return s.engine.IndexExists(ctx, datasetID)
}

// Upsert indexes the given records.
func (s *Service) Upsert(ctx context.Context, ds *dataset.Dataset, records []dataset.Record) error {
	if len(records) == 0 {
		return nil
	}
	if err := s.bulkUpsert(ctx, ds, records); err != nil {
		return fmt.Errorf("bulk upsert: %w", err)
	}
	return nil
}

func (s *Service) bulkUpsert(ctx context.Context, ds *dataset.Dataset, records []dataset.Record) error {
	err := s.engine.BulkUpsert(ctx, ds, records)
	if err != nil {
		var bulkErr *engine.BulkError
		if errors.As(err, &bulkErr) {
			metrics.BulkErrorsTotal.Add(float64(len(bulkErr.Items)))
		}
		return err
	}
	metrics.IndexedDocumentsTotal.Add(float64(len(records)))
	return nil
}

// DeleteRecords removes the given records from the index.
func (s *Service) DeleteRecords(ctx context.Context, datasetID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.engine.DeleteRecords(ctx, datasetID, ids); err != nil {
		return fmt.Errorf("delete records: %w", err)
	}
	return nil
}

// Reindex rebuilds the dataset's index from scratch: drop, recreate with
// the current schema, then stream every record through bulk upsert in
// batches. Never an in-place partial rebuild, since mapping changes
// require a fresh index.
func (s *Service) Reindex(ctx context.Context, ds *dataset.Dataset) error {
	if err := s.engine.DeleteIndex(ctx, ds.ID()); err != nil {
		return fmt.Errorf("delete index: %w", err)
	}
	if err := s.engine.CreateIndex(ctx, ds); err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	for offset := 0; ; offset += s.batchSize {
		batch, err := s.records.ListRecords(ctx, ds.ID(), offset, s.batchSize)
		if err != nil {
			return fmt.Errorf("list records at offset %d: %w", offset, err)
		}
		if len(batch) == 0 {
			return nil
		}
		if err := s.bulkUpsert(ctx, ds, batch); err != nil {
			return fmt.Errorf("bulk upsert at offset %d: %w", offset, err)
		}
		if len(batch) < s.batchSize {
			return nil
		}
	}
}
