package prometheus

import (
	"context"
	"fmt"
	"io/fs"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	prometheusv1 "github.com/prometheus/client_golang/api/prometheus/v1"
	prommodel "github.com/prometheus/common/model"

	"github.com/slok/tsplot/internal/chart"
	"github.com/slok/tsplot/internal/http/backend/metrics"
	"github.com/slok/tsplot/internal/http/backend/storage"
	"github.com/slok/tsplot/internal/log"
)

type RepositoryConfig struct {
	PrometheusClient PrometheusAPIClient
	// CatalogFS and CatalogPath locate the YAML chart catalog.
	CatalogFS            fs.FS
	CatalogPath          string
	CacheRefreshInterval time.Duration
	TimeNowFunc          func() time.Time // Used for faking time in testing.
	MetricsRecorder      metrics.Recorder
	Logger               log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.PrometheusClient == nil {
		return fmt.Errorf("prometheus client is required")
	}

	if c.CatalogFS == nil {
		return fmt.Errorf("catalog file system is required")
	}

	if c.CatalogPath == "" {
		return fmt.Errorf("catalog path is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.prometheus.repository"})

	if c.CacheRefreshInterval < 10*time.Second {
		c.CacheRefreshInterval = 1 * time.Minute
	}

	if c.TimeNowFunc == nil {
		c.TimeNowFunc = time.Now
	}

	if c.MetricsRecorder == nil {
		c.MetricsRecorder = metrics.NoopRecorder
	}

	return nil
}

// Repository serves charts whose data comes from Prometheus range queries. The
// queries are run in the background and cached, so requests never wait for
// Prometheus.
type Repository struct {
	promcli              PrometheusAPIClient
	catalogFS            fs.FS
	catalogPath          string
	cacheRefreshInterval time.Duration
	logger               log.Logger
	timeNowFunc          func() time.Time
	metricsRecorder      metrics.Recorder

	catalog Catalog
	entries []chart.Entry
	mu      sync.RWMutex
}

var _ storage.ChartGetter = &Repository{}

func NewRepository(ctx context.Context, config RepositoryConfig) (*Repository, error) {
	if err := config.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	r := &Repository{
		promcli:              config.PrometheusClient,
		catalogFS:            config.CatalogFS,
		catalogPath:          config.CatalogPath,
		cacheRefreshInterval: config.CacheRefreshInterval,
		timeNowFunc:          config.TimeNowFunc,
		metricsRecorder:      config.MetricsRecorder,
		logger:               config.Logger,
	}

	// Load catalog and warm caches.
	err := r.Reload(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load charts: %w", err)
	}

	// Trigger background cache refresh.
	go func() {
		for {
			select {
			case <-ctx.Done():
				r.logger.Infof("Stopping cache refresh")
				return
			case <-time.After(r.cacheRefreshInterval):
				err := r.refreshCache(ctx)
				if err != nil {
					r.logger.Errorf("Could not refresh cache: %v", err)
				}
			}
		}
	}()

	return r, nil
}

// Reload reloads the catalog and refreshes the cached charts with it. On
// error, the previous catalog and charts are kept.
func (r *Repository) Reload(ctx context.Context) error {
	data, err := fs.ReadFile(r.catalogFS, r.catalogPath)
	if err != nil {
		return fmt.Errorf("could not read %q catalog: %w", r.catalogPath, err)
	}

	catalog, err := LoadCatalog(data)
	if err != nil {
		return fmt.Errorf("could not load %q catalog: %w", r.catalogPath, err)
	}

	entries, err := r.queryCharts(ctx, *catalog)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.catalog = *catalog
	r.entries = entries
	r.mu.Unlock()

	r.logger.WithValues(log.Kv{"charts": len(entries)}).Infof("Prometheus chart catalog loaded")

	return nil
}

func (r *Repository) ListChartEntries(ctx context.Context) ([]chart.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.entries), nil
}

func (r *Repository) refreshCache(ctx context.Context) (err error) {
	t0 := time.Now()
	defer func() {
		r.metricsRecorder.MeasurePrometheusStorageBackgroundCacheRefresh(ctx, time.Since(t0), err)
	}()

	r.mu.RLock()
	catalog := r.catalog
	r.mu.RUnlock()

	entries, err := r.queryCharts(ctx, catalog)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.entries = entries
	r.mu.Unlock()

	return nil
}

// queryCharts gets the data of every chart, any failure fails the whole catalog.
func (r *Repository) queryCharts(ctx context.Context, c Catalog) ([]chart.Entry, error) {
	now := r.timeNowFunc()
	entries := make([]chart.Entry, 0, len(c.Charts))
	for _, cq := range c.Charts {
		e, err := r.queryChart(ctx, cq, now)
		if err != nil {
			return nil, fmt.Errorf("could not get %q chart data: %w", cq.Title, err)
		}
		entries = append(entries, *e)
	}

	return entries, nil
}

func (r *Repository) queryChart(ctx context.Context, cq ChartQuery, now time.Time) (*chart.Entry, error) {
	step := cq.StepDuration()
	end := now.Truncate(step)
	start := end.Add(-time.Duration(cq.Range))
	promRange := prometheusv1.Range{Start: start, End: end, Step: step}

	// Every chart point is on the step grid, instants without samples are missing values.
	grid := []prommodel.Time{}
	for t := start; !t.After(end); t = t.Add(step) {
		grid = append(grid, prommodel.TimeFromUnixNano(t.UnixNano()))
	}

	channels := make([]map[prommodel.Time]float64, 0, len(cq.Queries))
	for _, q := range cq.Queries {
		samples, err := r.queryRange(ctx, q, promRange)
		if err != nil {
			return nil, err
		}
		channels = append(channels, samples)
	}

	e := chart.Entry{Title: cq.Title, Data: make([]chart.DataPoint, 0, len(grid))}
	for _, ts := range grid {
		if len(channels) == 1 {
			e.Data = append(e.Data, chart.SinglePoint{TS: float64(ts), Value: sampleAt(channels[0], ts)})
			continue
		}

		p := chart.MultiPoint{TS: float64(ts)}
		for i := range p.Channels {
			p.Channels[i] = sampleAt(channels[i], ts)
		}
		e.Data = append(e.Data, p)
	}

	return &e, nil
}

// queryRange returns the values of a range query indexed by timestamp. Queries
// should return a single series (e.g: aggregating with `sum`), on multiple series
// only the first one (by labels) is used.
func (r *Repository) queryRange(ctx context.Context, query string, promRange prometheusv1.Range) (map[prommodel.Time]float64, error) {
	result, warnings, err := r.promcli.QueryRange(ctx, query, promRange)
	if err != nil {
		return nil, fmt.Errorf("could not query prometheus: %w", err)
	}
	for _, w := range warnings {
		r.logger.Warningf("Prometheus query %q warning: %s", query, w)
	}

	matrix, ok := result.(prommodel.Matrix)
	if !ok {
		return nil, fmt.Errorf("unexpected prometheus result type, should be matrix")
	}

	samples := map[prommodel.Time]float64{}
	if len(matrix) == 0 {
		return samples, nil
	}

	if len(matrix) > 1 {
		r.logger.Warningf("Prometheus query %q returned %d series, using only one", query, len(matrix))
		slices.SortFunc(matrix, func(a, b *prommodel.SampleStream) int {
			return strings.Compare(a.Metric.String(), b.Metric.String())
		})
	}

	for _, v := range matrix[0].Values {
		samples[v.Timestamp] = float64(v.Value)
	}

	return samples, nil
}

func sampleAt(samples map[prommodel.Time]float64, ts prommodel.Time) chart.Sample {
	v, ok := samples[ts]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return chart.Null()
	}

	return chart.Value(v)
}
