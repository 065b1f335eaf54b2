package storage

import (
	"context"

	"github.com/slok/tsplot/internal/chart"
)

// ChartGetter knows how to get the chart entries of a charts document. Entries
// are returned in document order and are always valid, a document that fails
// validation is an error as a whole.
type ChartGetter interface {
	ListChartEntries(ctx context.Context) ([]chart.Entry, error)
}

//go:generate mockery --case underscore --output storagemock --outpkg storagemock --name ChartGetter

// ChartGetterFunc is a helper to implement ChartGetter with a function.
type ChartGetterFunc func(ctx context.Context) ([]chart.Entry, error)

func (f ChartGetterFunc) ListChartEntries(ctx context.Context) ([]chart.Entry, error) {
	return f(ctx)
}
