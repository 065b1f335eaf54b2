package app

import (
	"fmt"

	"github.com/slok/tsplot/internal/http/backend/metrics"
	"github.com/slok/tsplot/internal/http/backend/storage"
	"github.com/slok/tsplot/internal/log"
)

type AppConfig struct {
	ChartGetter     storage.ChartGetter
	MetricsRecorder metrics.Recorder
	Logger          log.Logger
	// RendererIDFunc returns the ID of every new chart renderer, by default a random one.
	RendererIDFunc func() string
}

func (c *AppConfig) defaults() error {
	if c.ChartGetter == nil {
		return fmt.Errorf("chart getter is required")
	}

	if c.MetricsRecorder == nil {
		c.MetricsRecorder = metrics.NoopRecorder
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app"})

	if c.RendererIDFunc == nil {
		c.RendererIDFunc = func() string { return "" }
	}

	return nil
}

type App struct {
	chartGetter     storage.ChartGetter
	metricsRecorder metrics.Recorder
	logger          log.Logger
	rendererIDFunc  func() string
}

func NewApp(config AppConfig) (*App, error) {
	if err := config.defaults(); err != nil {
		return nil, err
	}

	return &App{
		chartGetter:     config.ChartGetter,
		metricsRecorder: config.MetricsRecorder,
		logger:          config.Logger,
		rendererIDFunc:  config.RendererIDFunc,
	}, nil
}
