// Package pinecone provides a vectorstore.Store backed by a Pinecone-style
// vector index over its REST API.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/poiesic/docindex/vectorstore"
)

// Config holds configuration for the index client.
type Config struct {
	// URL is the index endpoint, e.g.
	// "https://my-index-a1b2c3d.svc.us-east1-gcp.pinecone.io".
	URL string

	// APIKey is sent in the Api-Key header on every request.
	APIKey string
}

// Client implements vectorstore.Store against a Pinecone-style REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ vectorstore.Store = (*Client)(nil)

// NewClient creates a new index client. The client holds no per-call state
// and is safe for concurrent use; construct it once and share it.
func NewClient(c Config) (*Client, error) {
	if c.URL == "" {
		return nil, fmt.Errorf("index URL is required")
	}
	if c.APIKey == "" {
		return nil, fmt.Errorf("index API key is required")
	}

	return &Client{
		baseURL: strings.TrimSuffix(c.URL, "/"),
		apiKey:  c.APIKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: slog.Default().With("component", "pinecone"),
	}, nil
}

// Upsert inserts or overwrites records under the given namespace.
// The caller is responsible for keeping the batch under the index's payload
// ceiling; the whole request is applied or rejected as a unit.
func (c *Client) Upsert(ctx context.Context, namespace string, records []vectorstore.Record) error {
	if namespace == "" {
		return vectorstore.ErrEmptyNamespace
	}
	if len(records) == 0 {
		return nil
	}

	var resp upsertResponse
	err := c.post(ctx, "/vectors/upsert", upsertRequest{
		Vectors:   records,
		Namespace: namespace,
	}, &resp)
	if err != nil {
		return err
	}

	c.logger.Debug("upserted vectors",
		"namespace", namespace,
		"count", len(records),
		"upserted", resp.UpsertedCount,
	)
	return nil
}

// Query returns the topK most similar records in the namespace, best first.
func (c *Client) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]vectorstore.Match, error) {
	if namespace == "" {
		return nil, vectorstore.ErrEmptyNamespace
	}
	if topK <= 0 {
		topK = 10
	}

	var resp queryResponse
	err := c.post(ctx, "/query", queryRequest{
		Vector:          vector,
		TopK:            topK,
		Namespace:       namespace,
		IncludeMetadata: true,
	}, &resp)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("queried index", "namespace", namespace, "matches", len(resp.Matches))
	return resp.Matches, nil
}

// Close implements vectorstore.Store. The HTTP client needs no cleanup.
func (c *Client) Close() error {
	return nil
}

func (c *Client) post(ctx context.Context, path string, reqBody, respBody any) error {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshaling %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("creating %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending %s request: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s failed: status %d: %s", path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
