package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound signals a missing resource or schema reference.
	ErrNotFound = errors.New("not found")
	// ErrUnprocessableQuery signals a query referencing entities absent from
	// the dataset schema. The dataset itself exists, so callers render this
	// as 422, never 404.
	ErrUnprocessableQuery = errors.New("unprocessable query")
	// ErrMissingVector signals a record that exists but has no value for the
	// requested vector settings.
	ErrMissingVector = errors.New("missing vector")
	// ErrVectorSearchNotSupported signals that the engine lacks kNN support.
	ErrVectorSearchNotSupported = errors.New("vector search not supported by engine")
)

// MissingVectorErrorCode is the machine-readable code for MissingVectorError,
// kept distinct from generic not-found so clients can retry with a different
// record instead of treating the reference as dead.
const MissingVectorErrorCode = "missing_vector_error"

// NotFoundError wraps ErrNotFound with the kind and name of the unresolved
// schema reference plus the dataset it was checked against.
type NotFoundError struct {
	Entity    string // "field", "question", "metadata property", "vector settings", "record"
	Name      string
	DatasetID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in dataset %s", e.Entity, e.Name, e.DatasetID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound creates a not-found reference error.
func NewNotFound(entity, name string, datasetID uuid.UUID) error {
	return &NotFoundError{Entity: entity, Name: name, DatasetID: datasetID}
}

// MissingVectorError wraps ErrMissingVector with the record and vector
// settings involved.
type MissingVectorError struct {
	VectorName string
	RecordID   uuid.UUID
}

func (e *MissingVectorError) Error() string {
	return fmt.Sprintf("record %s has no vector for settings %q", e.RecordID, e.VectorName)
}

func (e *MissingVectorError) Unwrap() error { return ErrMissingVector }

// Code returns the machine-readable error code.
func (e *MissingVectorError) Code() string { return MissingVectorErrorCode }

// NewMissingVector creates a missing-vector error.
func NewMissingVector(vectorName string, recordID uuid.UUID) error {
	return &MissingVectorError{VectorName: vectorName, RecordID: recordID}
}
