package prometheus

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/slok/tsplot/internal/http/backend/metrics"
)

const (
	Prefix = "tsplot"
)

// Recorder is a metrics.Recorder backed by Prometheus.
type Recorder struct {
	reg prometheus.Registerer

	storagePromCacheLatency *prometheus.HistogramVec
	storageOperationLatency *prometheus.HistogramVec
	promAPICliLatency       *prometheus.HistogramVec
	chartRenderLatency      *prometheus.HistogramVec
}

var _ metrics.Recorder = Recorder{}

func NewRecorder(reg prometheus.Registerer) Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	r := Recorder{
		reg: reg,

		storagePromCacheLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Prefix,
			Subsystem: "storage_prometheus",
			Name:      "cache_background_refresh_duration_seconds",
			Help:      "Duration histogram of the Prometheus chart source cache refreshes.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"success"}),

		storageOperationLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Prefix,
			Subsystem: "storage",
			Name:      "operation_duration_seconds",
			Help:      "Duration histogram of chart source operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "success"}),

		promAPICliLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Prefix,
			Subsystem: "prometheus_api_client",
			Name:      "operation_duration_seconds",
			Help:      "Duration histogram of Prometheus API client operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "success"}),

		chartRenderLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Prefix,
			Subsystem: "chart",
			Name:      "render_duration_seconds",
			Help:      "Duration histogram of server side chart renders.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}, []string{"interaction", "kind"}),
	}

	r.reg.MustRegister(
		r.storagePromCacheLatency,
		r.storageOperationLatency,
		r.promAPICliLatency,
		r.chartRenderLatency,
	)

	return r
}

func (r Recorder) MeasurePrometheusStorageBackgroundCacheRefresh(_ context.Context, t time.Duration, err error) {
	r.storagePromCacheLatency.WithLabelValues(strconv.FormatBool(err == nil)).Observe(t.Seconds())
}

func (r Recorder) MeasurePrometheusAPIClientOperation(_ context.Context, op string, t time.Duration, err error) {
	r.promAPICliLatency.WithLabelValues(op, strconv.FormatBool(err == nil)).Observe(t.Seconds())
}

func (r Recorder) MeasureStorageOperationDuration(_ context.Context, op string, t time.Duration, err error) {
	r.storageOperationLatency.WithLabelValues(op, strconv.FormatBool(err == nil)).Observe(t.Seconds())
}

func (r Recorder) MeasureChartRenderDuration(_ context.Context, interaction, kind string, t time.Duration) {
	r.chartRenderLatency.WithLabelValues(interaction, kind).Observe(t.Seconds())
}
