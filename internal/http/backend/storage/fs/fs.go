package fs

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/slok/tsplot/internal/chart"
	"github.com/slok/tsplot/internal/http/backend/storage"
	"github.com/slok/tsplot/internal/log"
)

type RepositoryConfig struct {
	FS     fs.FS
	Path   string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.FS == nil {
		return fmt.Errorf("file system is required")
	}

	if c.Path == "" {
		return fmt.Errorf("document path is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.fs.repository"})

	return nil
}

// Repository reads the charts document from a file system on every call, so
// changes on the file are picked without restarting.
type Repository struct {
	fs     fs.FS
	path   string
	logger log.Logger
}

var _ storage.ChartGetter = &Repository{}

func NewRepository(config RepositoryConfig) (*Repository, error) {
	if err := config.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		fs:     config.FS,
		path:   config.Path,
		logger: config.Logger,
	}, nil
}

func (r *Repository) ListChartEntries(ctx context.Context) ([]chart.Entry, error) {
	data, err := fs.ReadFile(r.fs, r.path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q charts document: %w", r.path, err)
	}

	entries, err := chart.DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("could not load %q charts document: %w", r.path, err)
	}

	r.logger.WithCtxValues(ctx).Debugf("%d chart entries loaded", len(entries))

	return entries, nil
}
