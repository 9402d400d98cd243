// Package qdrant is a thin client for the Qdrant HTTP management plane.
// It covers only the handful of endpoints collection provisioning needs;
// point and search operations are out of scope.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vektorops/qdrant-init/internal/domain"
	"github.com/vektorops/qdrant-init/internal/metrics"
)

const defaultRequestTimeout = 30 * time.Second

// StatusError is returned when the server answers with a non-success status.
// It wraps domain.ErrRejected so callers can discriminate server rejections
// from transport failures with errors.Is.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s (status %d): %s", domain.ErrRejected.Error(), e.Status, e.Body)
}

func (e *StatusError) Unwrap() error { return domain.ErrRejected }

// ServiceInfo is the root endpoint response.
type ServiceInfo struct {
	Title   string
	Version string
}

// Config holds client settings.
type Config struct {
	// BaseURL is the management API address, e.g. "http://localhost:6333".
	BaseURL string
	// Timeout bounds every individual request. Zero means the default 30s.
	Timeout time.Duration
	Logger  *zap.Logger
	Metrics *metrics.Set
}

// Client issues requests against the Qdrant management API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	metrics *metrics.Set
}

// New creates a Client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
		metrics: cfg.Metrics,
	}
}

// BaseURL returns the configured management API address.
func (c *Client) BaseURL() string { return c.baseURL }

// Ping probes the service root. Any 2xx response counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/", nil, "ping")
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// ServiceInfo fetches the root endpoint metadata (title, version).
func (c *Client) ServiceInfo(ctx context.Context) (ServiceInfo, error) {
	resp, err := c.do(ctx, http.MethodGet, "/", nil, "service_info")
	if err != nil {
		return ServiceInfo{}, err
	}
	defer resp.Body.Close()

	var body serviceInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ServiceInfo{}, fmt.Errorf("decode service info: %w", err)
	}
	return ServiceInfo{Title: body.Title, Version: body.Version}, nil
}

// WaitReady polls the service root until it responds with success, up to
// attempts probes with delay between them. It exits early on the first
// success and returns a domain.ErrUnavailable-wrapped error once the budget
// is exhausted.
func (c *Client) WaitReady(ctx context.Context, attempts int, delay time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		c.metrics.IncProbeAttempt()

		err := c.Ping(ctx)
		if err == nil {
			c.logger.Info("service is ready", zap.Int("attempt", i+1))
			return nil
		}
		lastErr = err
		c.logger.Info("service not ready",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", attempts),
			zap.Error(err),
		)

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", domain.ErrUnavailable, ctx.Err())
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("%w after %d attempts: %v", domain.ErrUnavailable, attempts, lastErr)
}

// Exists reports whether a collection is present.
// A clean 404 yields (false, nil); transport failures and other non-success
// statuses yield (false, err) so callers can tell absence from breakage.
func (c *Client) Exists(ctx context.Context, name string) (bool, error) {
	resp, err := c.do(ctx, http.MethodGet, "/collections/"+name, nil, "collection_get")
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Status == http.StatusNotFound {
			return false, nil
		}
		return false, err
	}
	drain(resp)
	return true, nil
}

// CreateCollection creates a collection with the spec's vector configuration.
// The endpoint is an upsert-style PUT; this client only ever uses it for
// initial creation.
func (c *Client) CreateCollection(ctx context.Context, spec domain.CollectionSpec) error {
	body := createCollectionRequest{
		Vectors: vectorParams{
			Size:     spec.VectorSize(),
			Distance: string(spec.Distance()),
		},
	}
	resp, err := c.do(ctx, http.MethodPut, "/collections/"+spec.Name(), body, "collection_create")
	if err != nil {
		return fmt.Errorf("create collection %q: %w", spec.Name(), err)
	}
	drain(resp)
	return nil
}

// CreateFieldIndex creates a payload field index on an existing collection.
func (c *Client) CreateFieldIndex(ctx context.Context, collection string, field domain.Field) error {
	body := createIndexRequest{
		FieldName:   field.Name(),
		FieldSchema: string(field.FieldType()),
	}
	resp, err := c.do(ctx, http.MethodPut, "/collections/"+collection+"/index", body, "index_create")
	if err != nil {
		return fmt.Errorf("index field %q on %q: %w", field.Name(), collection, err)
	}
	drain(resp)
	return nil
}

// ListCollections returns the names of all existing collections in the
// order the service reports them.
func (c *Client) ListCollections(ctx context.Context) ([]string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/collections", nil, "collection_list")
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer resp.Body.Close()

	var body listCollectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode collection list: %w", err)
	}
	names := make([]string, len(body.Result.Collections))
	for i, col := range body.Result.Collections {
		names[i] = col.Name
	}
	return names, nil
}

// do issues a request and normalizes failures: transport errors are wrapped
// as-is, non-2xx responses become *StatusError with the response body text.
// On success the caller owns resp.Body.
func (c *Client) do(ctx context.Context, method, path string, body any, op string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.IncRequest(op, "transport_error")
		return nil, fmt.Errorf("request %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		c.metrics.IncRequest(op, "rejected")
		return nil, &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	c.metrics.IncRequest(op, "ok")
	return resp, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}
