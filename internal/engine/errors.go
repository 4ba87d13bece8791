package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for engine operations.
var (
	ErrIndexNotFound = errors.New("engine: index not found")
	ErrIndexExists   = errors.New("engine: index already exists")
	ErrUnavailable   = errors.New("engine: unavailable")
)

// Op constants name engine operations for error context.
const (
	OpCreateIndex = "indices.create"
	OpDeleteIndex = "indices.delete"
	OpIndexExists = "indices.exists"
	OpBulk        = "bulk"
	OpSearch      = "search"
	OpPing        = "ping"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// BulkItemError describes one failed document in a bulk request.
type BulkItemError struct {
	DocumentID string
	Status     int
	Type       string
	Reason     string
}

func (e BulkItemError) Error() string {
	return fmt.Sprintf("document %s: [%d] %s: %s", e.DocumentID, e.Status, e.Type, e.Reason)
}

// BulkError aggregates every per-document failure of a bulk request.
// Any failed item fails the whole call: callers must re-drive a full
// reindex rather than assume a partial write is safe.
type BulkError struct {
	Items []BulkItemError
}

func (e *BulkError) Error() string {
	msgs := make([]string, len(e.Items))
	for i, item := range e.Items {
		msgs[i] = item.Error()
	}
	return fmt.Sprintf("bulk indexing failed for %d document(s): %s", len(e.Items), strings.Join(msgs, "; "))
}
