// Package search implements the query validation and execution flow:
// validate schema references, resolve record-seeded vectors, compile,
// and run against the engine. Validation failures never reach the engine.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/annolab/annosearch/internal/domain"
	"github.com/annolab/annosearch/internal/domain/dataset"
	"github.com/annolab/annosearch/internal/domain/search/query"
	"github.com/annolab/annosearch/internal/domain/search/result"
	"github.com/annolab/annosearch/internal/engine"
	"github.com/annolab/annosearch/internal/metrics"
)

// Service handles record search over one dataset at a time.
type Service struct {
	engine  Engine
	records RecordReader
}

// New creates a search service.
func New(eng Engine, records RecordReader) *Service {
	return &Service{engine: eng, records: records}
}

// Search validates the query against the dataset schema, resolves the
// query vector if needed, compiles, and executes. Schema reference
// failures come back wrapped in ErrUnprocessableQuery: the dataset
// exists, the query just doesn't fit it.
func (s *Service) Search(
	ctx context.Context, ds *dataset.Dataset, username string, q query.Query,
) (result.Set, error) {
	kind := queryKind(q)
	start := time.Now()

	set, err := s.search(ctx, ds, username, q)

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.SearchRequestsTotal.WithLabelValues(kind, status).Inc()
	metrics.SearchRequestDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	return set, err
}

func (s *Service) search(
	ctx context.Context, ds *dataset.Dataset, username string, q query.Query,
) (result.Set, error) {
	if err := validateQuery(ds, q); err != nil {
		return result.Set{}, fmt.Errorf("%w: %w", domain.ErrUnprocessableQuery, err)
	}

	var queryVector []float32
	if vec := q.Vector(); vec != nil {
		if !s.engine.SupportsVectorSearch(ctx) {
			return result.Set{}, domain.ErrVectorSearchNotSupported
		}
		resolved, err := s.resolveVector(ctx, ds, vec)
		if err != nil {
			return result.Set{}, err
		}
		queryVector = resolved
	}

	req, err := engine.Compile(ds, username, q, queryVector)
	if err != nil {
		return result.Set{}, fmt.Errorf("compile query: %w", err)
	}

	return s.engine.Search(ctx, req)
}

func queryKind(q query.Query) string {
	switch {
	case q.Vector() != nil:
		return "vector"
	case q.Text() != nil:
		return "text"
	default:
		return "filter"
	}
}

// resolveVector returns the literal query vector or, in record-reference
// mode, the referenced record's stored vector. A record that exists but
// lacks the vector is a distinct condition from a dead reference: the
// caller can retry with a different record.
func (s *Service) resolveVector(
	ctx context.Context, ds *dataset.Dataset, vec *query.Vector,
) ([]float32, error) {
	if !vec.ByRecord() {
		return vec.Value(), nil
	}

	record, err := s.records.Get(ctx, ds.ID(), vec.RecordID())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", domain.ErrUnprocessableQuery, err)
		}
		return nil, fmt.Errorf("get record %s: %w", vec.RecordID(), err)
	}

	value, ok := record.Vector(vec.Name())
	if !ok {
		return nil, domain.NewMissingVector(vec.Name(), vec.RecordID())
	}
	return value, nil
}
