// Package elastic implements the engine contract on Elasticsearch 8 via
// the official go-elasticsearch client.
package elastic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/annolab/annosearch/internal/engine"
)

// Compile-time check: Store implements engine.Engine.
var _ engine.Engine = (*Store)(nil)

// DefaultMaxRetries bounds transport retries. Exhausting the budget is a
// hard failure, never a silent empty result.
const DefaultMaxRetries = 5

// Config holds connection parameters for an Elasticsearch store.
type Config struct {
	Addrs          []string
	Username       string
	Password       string
	MaxRetries     int
	RetryOnTimeout bool
	BulkBatchSize  int
}

// Store implements engine.Engine via go-elasticsearch. One client and its
// connection pool are shared across concurrent queries; connections are
// released on Close, not per call.
type Store struct {
	client    *elasticsearch.Client
	transport *http.Transport
	batchSize int
}

// NewStore creates an Elasticsearch store.
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
	esCfg := elasticsearch.Config{
		Addresses:     cfg.Addrs,
		Username:      cfg.Username,
		Password:      cfg.Password,
		MaxRetries:    cfg.MaxRetries,
		RetryOnStatus: []int{502, 503, 504},
		Transport:     transport,
	}
	if cfg.RetryOnTimeout {
		esCfg.RetryOnError = func(_ *http.Request, err error) bool {
			var ne net.Error
			return errors.As(err, &ne) && ne.Timeout()
		}
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client, transport: transport, batchSize: cfg.BulkBatchSize}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
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

// SupportsVectorSearch reports kNN support. Elasticsearch 8 always has it.
func (s *Store) SupportsVectorSearch(_ context.Context) bool {
	return true
}

// drain consumes and closes a response body so the connection is reused.
func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
