package dataset

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RecordStatus is the annotation lifecycle state of a record.
type RecordStatus string

const (
	// RecordPending awaits responses.
	RecordPending RecordStatus = "pending"
	// RecordCompleted has enough submitted responses.
	RecordCompleted RecordStatus = "completed"
)

// ResponseStatus is the state of a single user's response.
type ResponseStatus string

const (
	// ResponseDraft is saved but not submitted.
	ResponseDraft ResponseStatus = "draft"
	// ResponseSubmitted is final.
	ResponseSubmitted ResponseStatus = "submitted"
	// ResponseDiscarded was explicitly skipped.
	ResponseDiscarded ResponseStatus = "discarded"
)

// IsValid checks if the response status is a known state.
func (s ResponseStatus) IsValid() bool {
	return s == ResponseDraft || s == ResponseSubmitted || s == ResponseDiscarded
}

// Response holds one user's answers for a record, keyed by question name.
type Response struct {
	Username string
	Status   ResponseStatus
	Values   map[string]any
}

// Suggestion is a model-generated answer for a question on a record.
type Suggestion struct {
	QuestionName string
	Value        any
	Score        *float64
	Agent        string
	Type         string // "model" or "human"
}

// Record is a data row of a dataset together with its annotation state.
// The search subsystem reads records when indexing and when resolving
// similarity-query references; it never mutates them.
type Record struct {
	id          uuid.UUID
	datasetID   uuid.UUID
	status      RecordStatus
	fields      map[string]any
	metadata    map[string]any
	vectors     map[string][]float32
	responses   []Response
	suggestions []Suggestion
	insertedAt  time.Time
	updatedAt   time.Time
}

// NewRecord validates and creates a Record.
func NewRecord(
	id, datasetID uuid.UUID, status RecordStatus,
	fields, metadata map[string]any, vectors map[string][]float32,
	responses []Response, suggestions []Suggestion,
	insertedAt, updatedAt time.Time,
) (Record, error) {
	if id == uuid.Nil {
		return Record{}, fmt.Errorf("record id is required")
	}
	if datasetID == uuid.Nil {
		return Record{}, fmt.Errorf("record dataset id is required")
	}
	if status == "" {
		status = RecordPending
	}
	if status != RecordPending && status != RecordCompleted {
		return Record{}, fmt.Errorf("invalid record status: %q", status)
	}
	return Record{
		id: id, datasetID: datasetID, status: status,
		fields: fields, metadata: metadata, vectors: vectors,
		responses: responses, suggestions: suggestions,
		insertedAt: insertedAt, updatedAt: updatedAt,
	}, nil
}

// ID returns the record identifier.
func (r Record) ID() uuid.UUID { return r.id }

// DatasetID returns the owning dataset identifier.
func (r Record) DatasetID() uuid.UUID { return r.datasetID }

// Status returns the annotation lifecycle state.
func (r Record) Status() RecordStatus { return r.status }

// Fields returns the record field values keyed by field name.
func (r Record) Fields() map[string]any { return r.fields }

// Metadata returns the metadata values keyed by property name.
func (r Record) Metadata() map[string]any { return r.metadata }

// Vectors returns the vector values keyed by vector settings name.
func (r Record) Vectors() map[string][]float32 { return r.vectors }

// Vector returns the vector value for the named settings, if present.
func (r Record) Vector(settingsName string) ([]float32, bool) {
	v, ok := r.vectors[settingsName]
	return v, ok
}

// Responses returns the per-user responses.
func (r Record) Responses() []Response { return r.responses }

// Suggestions returns the model suggestions.
func (r Record) Suggestions() []Suggestion { return r.suggestions }

// InsertedAt returns the creation timestamp.
func (r Record) InsertedAt() time.Time { return r.insertedAt }

// UpdatedAt returns the last-update timestamp.
func (r Record) UpdatedAt() time.Time { return r.updatedAt }
