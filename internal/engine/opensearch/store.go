// Package opensearch implements the engine contract on OpenSearch 2 via
// the official opensearch-go client.
package opensearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/annolab/annosearch/internal/engine"
)

// Compile-time check: Store implements engine.Engine.
var _ engine.Engine = (*Store)(nil)

// DefaultMaxRetries bounds transport retries. Exhausting the budget is a
// hard failure, never a silent empty result.
const DefaultMaxRetries = 5

// Config holds connection parameters for an OpenSearch store.
type Config struct {
	Addrs          []string
	Username       string
	Password       string
	MaxRetries     int
	RetryOnTimeout bool
	BulkBatchSize  int
}

// Store implements engine.Engine via opensearch-go. One client and its
// connection pool are shared across concurrent queries; connections are
// released on Close, not per call.
type Store struct {
	client    *opensearch.Client
	transport *http.Transport
	batchSize int
}

// NewStore creates an OpenSearch store.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.BulkBatchSize <= 0 {
		cfg.BulkBatchSize = engine.DefaultBulkBatchSize
	}

	transport := &http.Transport{}
	client, err := opensearch.NewClient(opensearch.Config{
		Addresses:            cfg.Addrs,
		Username:             cfg.Username,
		Password:             cfg.Password,
		MaxRetries:           cfg.MaxRetries,
		RetryOnStatus:        []int{502, 503, 504},
		EnableRetryOnTimeout: cfg.RetryOnTimeout,
		Transport:            transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client, transport: transport, batchSize: cfg.BulkBatchSize}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	res, err := opensearchapi.PingRequest{}.Do(ctx, s.client)
	if err != nil {
		return &engine.Error{Op: engine.OpPing, Err: err}
	}
	defer drain(res.Body)
	if res.IsError() {
		return &engine.Error{Op: engine.OpPing, Err: fmt.Errorf("status %s", res.Status())}
	}
	return nil
}

// Close releases pooled connections.
func (s *Store) Close() {
	s.transport.CloseIdleConnections()
}

// WaitForReady polls Ping until the engine responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for engine: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// SupportsVectorSearch reports kNN support. The knn plugin ships with
// every OpenSearch distribution this adapter targets.
func (s *Store) SupportsVectorSearch(_ context.Context) bool {
	return true
}

// drain consumes and closes a response body so the connection is reused.
func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}

func boolPtr(v bool) *bool { return &v }

func readBody(body io.Reader) string {
	data, err := io.ReadAll(body)
	if err != nil {
		return ""
	}
	return string(data)
}
