package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/annolab/annosearch/internal/domain"
	"github.com/annolab/annosearch/internal/domain/dataset"
	"github.com/annolab/annosearch/internal/domain/search/query"
	"github.com/annolab/annosearch/internal/domain/search/result"
	"github.com/annolab/annosearch/internal/domain/search/scope"
	"github.com/annolab/annosearch/internal/engine"
)

type stubEngine struct {
	lastReq   *engine.SearchRequest
	calls     int
	set       result.Set
	err       error
	noVectors bool
}

func (s *stubEngine) Search(_ context.Context, req *engine.SearchRequest) (result.Set, error) {
	s.calls++
	s.lastReq = req
	return s.set, s.err
}

func (s *stubEngine) SupportsVectorSearch(_ context.Context) bool { return !s.noVectors }

type stubRecords struct {
	record dataset.Record
	err    error
}

func (s *stubRecords) Get(_ context.Context, _, _ uuid.UUID) (dataset.Record, error) {
	return s.record, s.err
}

func serviceDataset(t *testing.T) *dataset.Dataset {
	t.Helper()

	prompt, _ := dataset.NewField("prompt", dataset.FieldText)
	sentiment, err := dataset.NewQuestion(uuid.New(), "sentiment", dataset.QuestionLabel, dataset.QuestionSettings{
		Options: []string{"positive", "negative"},
	})
	if err != nil {
		t.Fatalf("question: %v", err)
	}
	loss, _ := dataset.NewMetadataProperty("loss", dataset.MetadataFloat, nil, nil, nil)
	embedding, _ := dataset.NewVectorSettings("embedding", 2)

	ds, err := dataset.New(
		uuid.New(), "service_test",
		[]dataset.Field{prompt},
		[]dataset.Question{sentiment},
		[]dataset.MetadataProperty{loss},
		[]dataset.VectorSettings{embedding},
	)
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	return &ds
}

func emptyQuery(t *testing.T) query.Query {
	t.Helper()
	q, err := query.New(nil, nil, nil, nil, 0, 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	return q
}

func TestSearch_UnknownReferenceIsUnprocessable(t *testing.T) {
	ds := serviceDataset(t)
	eng := &stubEngine{}
	svc := New(eng, &stubRecords{})

	metaScope, _ := scope.NewMetadata("absent")
	f, _ := query.NewTerms(metaScope, []string{"x"})
	q, _ := query.New([]query.Filter{f}, nil, nil, nil, 0, 0)

	_, err := svc.Search(context.Background(), ds, "alice", q)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrUnprocessableQuery) {
		t.Errorf("expected ErrUnprocessableQuery, got %v", err)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected wrapped ErrNotFound, got %v", err)
	}
	if eng.calls != 0 {
		t.Errorf("validation failure must not reach the engine, got %d calls", eng.calls)
	}
}

func TestSearch_ValidQueryReachesEngine(t *testing.T) {
	ds := serviceDataset(t)
	id := uuid.New()
	eng := &stubEngine{set: result.NewSet(1, []result.Item{result.NewItem(id, 1.5)})}
	svc := New(eng, &stubRecords{})

	set, err := svc.Search(context.Background(), ds, "alice", emptyQuery(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Total() != 1 || set.Items()[0].RecordID() != id {
		t.Errorf("unexpected result set: %+v", set)
	}
	if eng.lastReq == nil || eng.lastReq.Index != engine.IndexName(ds.ID()) {
		t.Errorf("unexpected compiled request: %+v", eng.lastReq)
	}
}

func TestSearch_VectorUnsupportedEngine(t *testing.T) {
	ds := serviceDataset(t)
	eng := &stubEngine{noVectors: true}
	svc := New(eng, &stubRecords{})

	vec, _ := query.NewVector("embedding", []float32{0.1, 0.2}, uuid.Nil, 10, nil)
	q, _ := query.New(nil, nil, nil, &vec, 0, 0)

	_, err := svc.Search(context.Background(), ds, "alice", q)
	if !errors.Is(err, domain.ErrVectorSearchNotSupported) {
		t.Errorf("expected ErrVectorSearchNotSupported, got %v", err)
	}
	if eng.calls != 0 {
		t.Error("unsupported vector search must not reach the engine")
	}
}

func TestSearch_RecordSeededVector(t *testing.T) {
	ds := serviceDataset(t)
	seedID := uuid.New()

	record, err := dataset.NewRecord(
		seedID, ds.ID(), dataset.RecordPending,
		map[string]any{"prompt": "hi"}, nil,
		map[string][]float32{"embedding": {0.3, 0.4}},
		nil, nil, time.Now(), time.Now(),
	)
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	eng := &stubEngine{}
	svc := New(eng, &stubRecords{record: record})

	vec, _ := query.NewVector("embedding", nil, seedID, 10, nil)
	q, _ := query.New(nil, nil, nil, &vec, 0, 0)

	if _, err := svc.Search(context.Background(), ds, "alice", q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if eng.lastReq == nil || eng.lastReq.KNN == nil {
		t.Fatal("expected compiled KNN request")
	}
	got := eng.lastReq.KNN.Vector
	if len(got) != 2 || got[0] != 0.3 || got[1] != 0.4 {
		t.Errorf("expected resolved record vector, got %v", got)
	}
}

func TestSearch_ReferencedRecordNotFound(t *testing.T) {
	ds := serviceDataset(t)
	seedID := uuid.New()
	eng := &stubEngine{}
	svc := New(eng, &stubRecords{err: domain.NewNotFound("record", seedID.String(), ds.ID())})

	vec, _ := query.NewVector("embedding", nil, seedID, 10, nil)
	q, _ := query.New(nil, nil, nil, &vec, 0, 0)

	_, err := svc.Search(context.Background(), ds, "alice", q)
	if !errors.Is(err, domain.ErrUnprocessableQuery) {
		t.Errorf("expected ErrUnprocessableQuery, got %v", err)
	}
	if eng.calls != 0 {
		t.Error("dead record reference must not reach the engine")
	}
}

func TestSearch_MissingVectorIsDistinct(t *testing.T) {
	ds := serviceDataset(t)
	seedID := uuid.New()

	record, err := dataset.NewRecord(
		seedID, ds.ID(), dataset.RecordPending,
		map[string]any{"prompt": "hi"}, nil, nil, nil, nil,
		time.Now(), time.Now(),
	)
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	eng := &stubEngine{}
	svc := New(eng, &stubRecords{record: record})

	vec, _ := query.NewVector("embedding", nil, seedID, 10, nil)
	q, _ := query.New(nil, nil, nil, &vec, 0, 0)

	_, err = svc.Search(context.Background(), ds, "alice", q)
	if !errors.Is(err, domain.ErrMissingVector) {
		t.Fatalf("expected ErrMissingVector, got %v", err)
	}
	if errors.Is(err, domain.ErrUnprocessableQuery) {
		t.Error("missing vector must stay distinct from unprocessable query")
	}

	var mv *domain.MissingVectorError
	if !errors.As(err, &mv) {
		t.Fatalf("expected *domain.MissingVectorError, got %T", err)
	}
	if mv.Code() != domain.MissingVectorErrorCode {
		t.Errorf("unexpected code: %q", mv.Code())
	}
	if mv.RecordID != seedID || mv.VectorName != "embedding" {
		t.Errorf("unexpected error detail: %+v", mv)
	}
}

func TestSearch_EnginePropagatesError(t *testing.T) {
	ds := serviceDataset(t)
	wantErr := errors.New("engine down")
	eng := &stubEngine{err: wantErr}
	svc := New(eng, &stubRecords{})

	_, err := svc.Search(context.Background(), ds, "alice", emptyQuery(t))
	if !errors.Is(err, wantErr) {
		t.Errorf("expected engine error, got %v", err)
	}
}
