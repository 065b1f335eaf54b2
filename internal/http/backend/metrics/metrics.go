package metrics

import (
	"context"
	"time"
)

// Recorder knows how to measure the backend of the charts UI.
type Recorder interface {
	MeasureStorageOperationDuration(ctx context.Context, op string, t time.Duration, err error)
	MeasurePrometheusStorageBackgroundCacheRefresh(ctx context.Context, t time.Duration, err error)
	MeasurePrometheusAPIClientOperation(ctx context.Context, op string, t time.Duration, err error)
	MeasureChartRenderDuration(ctx context.Context, interaction, kind string, t time.Duration)
}

type noopRecorder bool

// NoopRecorder doesn't measure anything.
var NoopRecorder Recorder = noopRecorder(false)

func (noopRecorder) MeasureStorageOperationDuration(context.Context, string, time.Duration, error) {
}
func (noopRecorder) MeasurePrometheusStorageBackgroundCacheRefresh(context.Context, time.Duration, error) {
}
func (noopRecorder) MeasurePrometheusAPIClientOperation(context.Context, string, time.Duration, error) {
}
func (noopRecorder) MeasureChartRenderDuration(context.Context, string, string, time.Duration) {}
