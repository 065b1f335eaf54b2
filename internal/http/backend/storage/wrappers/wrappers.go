// Package wrappers has chart getter decorators that add cross cutting
// concerns to any storage.
package wrappers

import (
	"context"
	"time"

	"github.com/slok/tsplot/internal/chart"
	"github.com/slok/tsplot/internal/http/backend/metrics"
	"github.com/slok/tsplot/internal/http/backend/storage"
	"github.com/slok/tsplot/internal/log"
)

const opListChartEntries = "ListChartEntries"

// NewMeasuredChartGetter wraps a chart getter measuring its operations.
func NewMeasuredChartGetter(next storage.ChartGetter, rec metrics.Recorder) storage.ChartGetter {
	if rec == nil {
		rec = metrics.NoopRecorder
	}

	return storage.ChartGetterFunc(func(ctx context.Context) (entries []chart.Entry, err error) {
		defer func(t0 time.Time) {
			rec.MeasureStorageOperationDuration(ctx, opListChartEntries, time.Since(t0), err)
		}(time.Now())

		return next.ListChartEntries(ctx)
	})
}

// NewLoggedChartGetter wraps a chart getter logging the failures and the
// number of entries it returns.
func NewLoggedChartGetter(next storage.ChartGetter, logger log.Logger) storage.ChartGetter {
	if logger == nil {
		logger = log.Noop
	}
	logger = logger.WithValues(log.Kv{"component": "storage", "op": opListChartEntries})

	return storage.ChartGetterFunc(func(ctx context.Context) ([]chart.Entry, error) {
		logger := logger.WithCtxValues(ctx)

		entries, err := next.ListChartEntries(ctx)
		if err != nil {
			logger.Errorf("Could not list chart entries: %s", err)
			return nil, err
		}

		if len(entries) == 0 {
			logger.Warningf("Charts document without entries")
		}
		logger.Debugf("Listed %d chart entries", len(entries))

		return entries, nil
	})
}
