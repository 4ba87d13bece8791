package index

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/annolab/annosearch/internal/domain/dataset"
	"github.com/annolab/annosearch/internal/engine"
)

type stubEngine struct {
	ops        []string
	batchSizes []int
	createErr  error
	deleteErr  error
	bulkErr    error
	exists     bool
}

func (s *stubEngine) CreateIndex(_ context.Context, _ *dataset.Dataset) error {
	s.ops = append(s.ops, "create")
	return s.createErr
}

func (s *stubEngine) DeleteIndex(_ context.Context, _ uuid.UUID) error {
	s.ops = append(s.ops, "delete")
	return s.deleteErr
}

func (s *stubEngine) IndexExists(_ context.Context, _ uuid.UUID) (bool, error) {
	s.ops = append(s.ops, "exists")
	return s.exists, nil
}

func (s *stubEngine) BulkUpsert(_ context.Context, _ *dataset.Dataset, records []dataset.Record) error {
	s.ops = append(s.ops, "bulk")
	s.batchSizes = append(s.batchSizes, len(records))
	return s.bulkErr
}

func (s *stubEngine) DeleteRecords(_ context.Context, _ uuid.UUID, ids []uuid.UUID) error {
	s.ops = append(s.ops, "delete_records")
	s.batchSizes = append(s.batchSizes, len(ids))
	return nil
}

type stubSource struct {
	records []dataset.Record
	err     error
}

func (s *stubSource) ListRecords(_ context.Context, _ uuid.UUID, offset, limit int) ([]dataset.Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	if offset >= len(s.records) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.records) {
		end = len(s.records)
	}
	return s.records[offset:end], nil
}

func indexDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	prompt, _ := dataset.NewField("prompt", dataset.FieldText)
	ds, err := dataset.New(uuid.New(), "index_test", []dataset.Field{prompt}, nil, nil, nil)
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	return &ds
}

func makeRecords(t *testing.T, datasetID uuid.UUID, n int) []dataset.Record {
	t.Helper()
	records := make([]dataset.Record, 0, n)
	for i := 0; i < n; i++ {
		r, err := dataset.NewRecord(
			uuid.New(), datasetID, dataset.RecordPending,
			map[string]any{"prompt": "hi"}, nil, nil, nil, nil,
			time.Now(), time.Now(),
		)
		if err != nil {
			t.Fatalf("record: %v", err)
		}
		records = append(records, r)
	}
	return records
}

func TestCreate_AlreadyExistsIsNotAnError(t *testing.T) {
	eng := &stubEngine{createErr: engine.ErrIndexExists}
	svc := New(eng, &stubSource{})

	if err := svc.Create(context.Background(), indexDataset(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreate_PropagatesOtherErrors(t *testing.T) {
	wantErr := errors.New("mapping rejected")
	eng := &stubEngine{createErr: wantErr}
	svc := New(eng, &stubSource{})

	if err := svc.Create(context.Background(), indexDataset(t)); !errors.Is(err, wantErr) {
		t.Errorf("expected create error, got %v", err)
	}
}

func TestReindex_Sequence(t *testing.T) {
	ds := indexDataset(t)
	eng := &stubEngine{}
	// 250 records across three pages with batch size 100
	src := &stubSource{records: makeRecords(t, ds.ID(), 250)}
	svc := New(eng, src)

	if err := svc.Reindex(context.Background(), ds); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"delete", "create", "bulk", "bulk", "bulk"}
	if len(eng.ops) != len(want) {
		t.Fatalf("expected ops %v, got %v", want, eng.ops)
	}
	for i := range want {
		if eng.ops[i] != want[i] {
			t.Fatalf("expected ops %v, got %v", want, eng.ops)
		}
	}

	wantBatches := []int{100, 100, 50}
	for i := range wantBatches {
		if eng.batchSizes[i] != wantBatches[i] {
			t.Errorf("batch %d: expected %d records, got %d", i, wantBatches[i], eng.batchSizes[i])
		}
	}
}

func TestReindex_EmptyDataset(t *testing.T) {
	ds := indexDataset(t)
	eng := &stubEngine{}
	svc := New(eng, &stubSource{})

	if err := svc.Reindex(context.Background(), ds); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"delete", "create"}
	if len(eng.ops) != 2 || eng.ops[0] != want[0] || eng.ops[1] != want[1] {
		t.Errorf("expected ops %v, got %v", want, eng.ops)
	}
}

func TestReindex_BulkFailureAborts(t *testing.T) {
	ds := indexDataset(t)
	bulkErr := &engine.BulkError{Items: []engine.BulkItemError{{DocumentID: "a", Status: 400}}}
	eng := &stubEngine{bulkErr: bulkErr}
	src := &stubSource{records: makeRecords(t, ds.ID(), 250)}
	svc := New(eng, src)

	err := svc.Reindex(context.Background(), ds)
	if err == nil {
		t.Fatal("expected error")
	}

	var gotBulk *engine.BulkError
	if !errors.As(err, &gotBulk) {
		t.Fatalf("expected *engine.BulkError, got %T", err)
	}

	// first failed batch stops the rebuild
	bulkCalls := 0
	for _, op := range eng.ops {
		if op == "bulk" {
			bulkCalls++
		}
	}
	if bulkCalls != 1 {
		t.Errorf("expected 1 bulk call before abort, got %d", bulkCalls)
	}
}

func TestUpsert_SkipsEmptyBatch(t *testing.T) {
	eng := &stubEngine{}
	svc := New(eng, &stubSource{})

	if err := svc.Upsert(context.Background(), indexDataset(t), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(eng.ops) != 0 {
		t.Errorf("expected no engine calls, got %v", eng.ops)
	}
}

func TestDeleteRecords_SkipsEmptyBatch(t *testing.T) {
	eng := &stubEngine{}
	svc := New(eng, &stubSource{})

	if err := svc.DeleteRecords(context.Background(), uuid.New(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(eng.ops) != 0 {
		t.Errorf("expected no engine calls, got %v", eng.ops)
	}
}

func TestExists(t *testing.T) {
	eng := &stubEngine{exists: true}
	svc := New(eng, &stubSource{})

	ok, err := svc.Exists(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected index to exist")
	}
}
