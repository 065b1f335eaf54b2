package ui

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	gohttpmetrics "github.com/slok/go-http-metrics/metrics"
	gohttpmetricsmiddleware "github.com/slok/go-http-metrics/middleware"

	"github.com/slok/tsplot/internal/http/backend/app"
	"github.com/slok/tsplot/internal/log"
)

// ChartApp is the backend the UI renders the charts with.
type ChartApp interface {
	RenderCharts(ctx context.Context, req app.RenderChartsRequest) (*app.RenderChartsResponse, error)
	GetDocument(ctx context.Context, req app.GetDocumentRequest) (*app.GetDocumentResponse, error)
	RenderChart(ctx context.Context, req app.RenderChartRequest) (*app.RenderChartResponse, error)
}

//go:generate mockery --case underscore --output uimock --outpkg uimock --name ChartApp

// MetricsRecorder records the UI HTTP metrics.
type MetricsRecorder = gohttpmetrics.Recorder

// ServePrefix is the path where the UI handler expects to be served.
const ServePrefix = "/u"

type UIConfig struct {
	Logger          log.Logger
	MetricsRecorder MetricsRecorder
	ChartApp        ChartApp
}

func (c *UIConfig) defaults() error {
	if c.ChartApp == nil {
		return fmt.Errorf("chart app is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"component": "ui"})

	if c.MetricsRecorder == nil {
		c.MetricsRecorder = gohttpmetrics.Dummy
		c.Logger.Warningf("Metrics recorder disabled")
	}

	return nil
}

type ui struct {
	chartApp          ChartApp
	tplRenderer       *tplRenderer
	metricsMiddleware gohttpmetricsmiddleware.Middleware
	logger            log.Logger
}

// NewUI returns the charts UI HTTP handler. All the routes are relative to
// ServePrefix.
func NewUI(cfg UIConfig) (http.Handler, error) {
	err := cfg.defaults()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	tplRenderer, err := newTplRenderer(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("could not create template renderer: %w", err)
	}

	u := ui{
		chartApp:    cfg.ChartApp,
		tplRenderer: tplRenderer,
		metricsMiddleware: gohttpmetricsmiddleware.New(gohttpmetricsmiddleware.Config{
			Recorder: cfg.MetricsRecorder,
			Service:  "tsplot-ui",
		}),
		logger: cfg.Logger,
	}

	router := chi.NewRouter()
	router.Mount(ServePrefix+staticPath, u.staticRouter())
	router.Mount(ServePrefix, u.appRouter())

	return router, nil
}
