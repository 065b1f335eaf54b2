package prometheus

import (
	"context"
	"time"

	prometheusv1 "github.com/prometheus/client_golang/api/prometheus/v1"
	prommodel "github.com/prometheus/common/model"

	"github.com/slok/tsplot/internal/http/backend/metrics"
)

// PrometheusAPIClient is the subset of prometheusv1.API the repository uses to
// get the chart samples.
type PrometheusAPIClient interface {
	QueryRange(ctx context.Context, query string, r prometheusv1.Range, opts ...prometheusv1.Option) (prommodel.Value, prometheusv1.Warnings, error)
}

//go:generate mockery --case underscore --output prometheusmock --outpkg prometheusmock --name PrometheusAPIClient

const opQueryRange = "QueryRange"

// NewMeasuredPrometheusAPIClient measures the calls made to Prometheus.
func NewMeasuredPrometheusAPIClient(rec metrics.Recorder, next PrometheusAPIClient) PrometheusAPIClient {
	if rec == nil {
		rec = metrics.NoopRecorder
	}
	return measuredAPIClient{next: next, rec: rec}
}

type measuredAPIClient struct {
	next PrometheusAPIClient
	rec  metrics.Recorder
}

func (m measuredAPIClient) QueryRange(ctx context.Context, query string, r prometheusv1.Range, opts ...prometheusv1.Option) (_ prommodel.Value, _ prometheusv1.Warnings, err error) {
	defer func(t0 time.Time) {
		m.rec.MeasurePrometheusAPIClientOperation(ctx, opQueryRange, time.Since(t0), err)
	}(time.Now())

	return m.next.QueryRange(ctx, query, r, opts...)
}
