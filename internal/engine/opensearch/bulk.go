package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/annolab/annosearch/internal/domain/dataset"
	"github.com/annolab/annosearch/internal/engine"
)

// bulkResponse is the subset of the bulk API response needed to decide
// success per item.
type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		ID     string `json:"_id"`
		Status int    `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	} `json:"items"`
}

// BulkUpsert indexes records in batches. Any failed item aborts with a
// BulkError so a caller never mistakes a partial write for success.
func (s *Store) BulkUpsert(ctx context.Context, ds *dataset.Dataset, records []dataset.Record) error {
	index := engine.IndexName(ds.ID())

	for start := 0; start < len(records); start += s.batchSize {
		end := start + s.batchSize
		if end > len(records) {
			end = len(records)
		}

		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		for _, r := range records[start:end] {
			if err := enc.Encode(map[string]any{"index": map[string]any{"_id": r.ID().String()}}); err != nil {
				return fmt.Errorf("encode bulk action: %w", err)
			}
			if err := enc.Encode(engine.EncodeRecord(r)); err != nil {
				return fmt.Errorf("encode document %s: %w", r.ID(), err)
			}
		}

		if err := s.executeBulk(ctx, index, &buf); err != nil {
			return err
		}
	}
	return nil
}

// DeleteRecords removes documents by id. Absent documents are ignored so
// deletes stay idempotent.
func (s *Store) DeleteRecords(ctx context.Context, datasetID uuid.UUID, ids []uuid.UUID) error {
	index := engine.IndexName(datasetID)

	for start := 0; start < len(ids); start += s.batchSize {
		end := start + s.batchSize
		if end > len(ids) {
			end = len(ids)
		}

		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		for _, id := range ids[start:end] {
			if err := enc.Encode(map[string]any{"delete": map[string]any{"_id": id.String()}}); err != nil {
				return fmt.Errorf("encode bulk action: %w", err)
			}
		}

		if err := s.executeBulk(ctx, index, &buf); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) executeBulk(ctx context.Context, index string, body *bytes.Buffer) error {
	res, err := opensearchapi.BulkRequest{
		Index: index,
		Body:  bytes.NewReader(body.Bytes()),
	}.Do(ctx, s.client)
	if err != nil {
		return &engine.Error{Op: engine.OpBulk, Err: err}
	}
	defer drain(res.Body)

	if res.IsError() {
		return &engine.Error{Op: engine.OpBulk, Err: fmt.Errorf("status %s: %s", res.Status(), readBody(res.Body))}
	}

	var parsed bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("decode bulk response: %w", err)
	}
	return bulkItemErrors(&parsed)
}

// bulkItemErrors collects per-item failures from a bulk response.
// A 404 on a delete action is absence, not failure.
func bulkItemErrors(resp *bulkResponse) error {
	if !resp.Errors {
		return nil
	}

	var items []engine.BulkItemError
	for _, entry := range resp.Items {
		for action, item := range entry {
			if item.Error == nil {
				continue
			}
			if action == "delete" && item.Status == 404 {
				continue
			}
			items = append(items, engine.BulkItemError{
				DocumentID: item.ID,
				Status:     item.Status,
				Type:       item.Error.Type,
				Reason:     item.Error.Reason,
			})
		}
	}
	if len(items) == 0 {
		return nil
	}
	return &engine.BulkError{Items: items}
}
