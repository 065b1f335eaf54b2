package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/slok/tsplot/internal/chart"
	"github.com/slok/tsplot/internal/http/backend/storage"
	"github.com/slok/tsplot/internal/log"
)

// StatusError is returned when the document server answers with a non 2xx status code.
type StatusError struct {
	StatusCode int
}

func (e StatusError) Error() string { return fmt.Sprintf("HTTP %d", e.StatusCode) }

type RepositoryConfig struct {
	// URL is the document location (e.g: `https://example.com/data.json`).
	URL          string
	HTTPClient   *http.Client
	MaxBodyBytes int64
	Logger       log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.URL == "" {
		return fmt.Errorf("url is required")
	}

	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}

	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 32 << 20 // 32MiB.
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.http.repository"})

	return nil
}

// Repository gets the charts document from an HTTP server on every call, it never caches
// so the last version of the document is always used.
type Repository struct {
	url          string
	cli          *http.Client
	maxBodyBytes int64
	logger       log.Logger
}

var _ storage.ChartGetter = &Repository{}

func NewRepository(config RepositoryConfig) (*Repository, error) {
	if err := config.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		url:          config.URL,
		cli:          config.HTTPClient,
		maxBodyBytes: config.MaxBodyBytes,
		logger:       config.Logger,
	}, nil
}

func (r *Repository) ListChartEntries(ctx context.Context) ([]chart.Entry, error) {
	data, err := r.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not fetch charts document: %w", err)
	}

	entries, err := chart.DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("could not load charts document: %w", err)
	}

	r.logger.WithCtxValues(ctx).Debugf("%d chart entries loaded from %s", len(entries), r.url)

	return entries, nil
}

func (r *Repository) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "application/json")

	resp, err := r.cli.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, StatusError{StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("could not read body: %w", err)
	}

	return data, nil
}
