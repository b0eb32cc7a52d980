package kg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// ErrUnavailable indicates the graph service could not be reached or
// returned an unusable response. Callers treat graph access as
// best-effort and degrade rather than fail the surrounding operation.
var ErrUnavailable = errors.New("knowledge graph service unavailable")

// System defines the graph operations the analysis pipeline relies on.
type System interface {
	InitNamespace(ctx context.Context, namespace string) error
	GraphSummary(ctx context.Context, namespace string) (*Metrics, error)
	IngestDocument(ctx context.Context, namespace, title, text string, metadata map[string]any) (*IngestResult, error)
	IngestJSON(ctx context.Context, namespace, title string, payload any, metadata map[string]any) (*IngestResult, error)
}

type client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a graph service client. The base URL must not end
// with a slash.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) System {
	return &client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With("system", "kg"),
	}
}

// InitNamespace ensures the namespace exists. An already-existing
// namespace (409) is not an error.
func (c *client) InitNamespace(ctx context.Context, namespace string) error {
	body, err := json.Marshal(map[string]any{"namespace": namespace})
	if err != nil {
		return fmt.Errorf("marshal namespace payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/kg/namespaces", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build namespace request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("namespace init request failed", "namespace", namespace, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent, http.StatusConflict:
		return nil
	}

	c.logger.Warn("namespace init returned unexpected status",
		"namespace", namespace,
		"status", resp.StatusCode,
	)
	return fmt.Errorf("%w: namespace init status %d", ErrUnavailable, resp.StatusCode)
}

// GraphSummary returns node/edge counts and top labels for a namespace.
func (c *client) GraphSummary(ctx context.Context, namespace string) (*Metrics, error) {
	endpoint := fmt.Sprintf("%s/graph/summary?project_id=%s", c.baseURL, url.QueryEscape(namespace))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build summary request: %w", err)
	}

	var metrics Metrics
	if err := c.do(req, &metrics); err != nil {
		return nil, err
	}
	return &metrics, nil
}

// IngestDocument submits raw text for extraction into the namespace graph.
func (c *client) IngestDocument(ctx context.Context, namespace, title, text string, metadata map[string]any) (*IngestResult, error) {
	if title == "" {
		title = "Mission Document"
	}
	if metadata == nil {
		metadata = map[string]any{}
	}

	body, err := json.Marshal(map[string]any{
		"namespace": namespace,
		"title":     title,
		"text":      text,
		"metadata":  metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal ingest payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/kg/%s/documents", c.baseURL, url.PathEscape(namespace))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build ingest request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var result IngestResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// IngestJSON serializes a structured payload before ingestion so
// analysis artifacts land in the graph alongside source documents.
func (c *client) IngestJSON(ctx context.Context, namespace, title string, payload any, metadata map[string]any) (*IngestResult, error) {
	text, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal graph payload: %w", err)
	}
	return c.IngestDocument(ctx, namespace, title, string(text), metadata)
}

func (c *client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("graph request failed", "url", req.URL.Path, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Warn("graph request returned error status",
			"url", req.URL.Path,
			"status", resp.StatusCode,
		)
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return nil
}
