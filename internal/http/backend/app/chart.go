package app

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/tsplot/internal/chart"
	"github.com/slok/tsplot/internal/chart/svg"
	internalerrors "github.com/slok/tsplot/internal/errors"
)

// Chart is a chart entry of the document with its position on it.
type Chart struct {
	Index int
	Entry chart.Entry
}

type ListChartsRequest struct{}

type ListChartsResponse struct {
	Charts []Chart
}

// ListCharts returns all the charts of the document in document order. Loading
// is all or nothing, a single invalid entry fails the whole list.
func (a *App) ListCharts(ctx context.Context, req ListChartsRequest) (*ListChartsResponse, error) {
	entries, err := a.chartGetter.ListChartEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list chart entries: %w", err)
	}

	charts := make([]Chart, 0, len(entries))
	for i, e := range entries {
		charts = append(charts, Chart{Index: i, Entry: e})
	}

	return &ListChartsResponse{Charts: charts}, nil
}

type GetChartRequest struct {
	Index int
}

type GetChartResponse struct {
	Chart Chart
}

func (a *App) GetChart(ctx context.Context, req GetChartRequest) (*GetChartResponse, error) {
	entries, err := a.chartGetter.ListChartEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list chart entries: %w", err)
	}

	if req.Index < 0 || req.Index >= len(entries) {
		return nil, fmt.Errorf("chart %d: %w", req.Index, internalerrors.ErrNotFound)
	}

	return &GetChartResponse{Chart: Chart{Index: req.Index, Entry: entries[req.Index]}}, nil
}

type GetDocumentRequest struct{}

type GetDocumentResponse struct {
	// Data is the JSON charts document.
	Data []byte
}

// GetDocument returns the charts document in its wire format.
func (a *App) GetDocument(ctx context.Context, req GetDocumentRequest) (*GetDocumentResponse, error) {
	entries, err := a.chartGetter.ListChartEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list chart entries: %w", err)
	}

	data, err := chart.EncodeDocument(entries)
	if err != nil {
		return nil, fmt.Errorf("could not encode document: %w", err)
	}

	return &GetDocumentResponse{Data: data}, nil
}

// Interaction is the user gesture that triggered a chart render.
type Interaction string

const (
	InteractionRender Interaction = "render"
	InteractionZoom   Interaction = "zoom"
	InteractionReset  Interaction = "reset"
)

type RenderChartRequest struct {
	Index int
	// Width and Height are the chart outer size, defaults are used if not positive.
	Width  float64
	Height float64
	// XDomain is the X domain the chart had on the client (e.g: already zoomed), nil
	// means the original one.
	XDomain *[2]float64
	// Brush is the brush selection of a zoom, nil if not zooming.
	Brush *chart.Selection
	// Reset is set on double click, resets the X domain to the original.
	Reset bool
}

func (r RenderChartRequest) validate() error {
	if r.Brush != nil && r.Reset {
		return fmt.Errorf("zoom and reset can't be requested at the same time: %w", internalerrors.ErrNotValid)
	}

	return nil
}

type RenderChartResponse struct {
	Chart       Chart
	Interaction Interaction
	// SVG is the chart SVG document after the interaction.
	SVG string
	// Update is the animated part of the chart, nil if the interaction didn't animate.
	Update          *chart.Update
	TransitionMS    int64
	XDomain         [2]float64
	OriginalXDomain [2]float64
	YDomain         [2]float64
}

// RenderChart renders a chart on the server and applies the requested
// interaction on it. Every call uses its own renderer and surface.
func (a *App) RenderChart(ctx context.Context, req RenderChartRequest) (*RenderChartResponse, error) {
	err := req.validate()
	if err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	c, err := a.GetChart(ctx, GetChartRequest{Index: req.Index})
	if err != nil {
		return nil, err
	}

	return a.renderChart(ctx, c.Chart, req)
}

type RenderChartsRequest struct {
	Width  float64
	Height float64
}

type RenderChartsResponse struct {
	Charts []RenderChartResponse
}

// RenderCharts renders every chart of the document without interactions.
func (a *App) RenderCharts(ctx context.Context, req RenderChartsRequest) (*RenderChartsResponse, error) {
	charts, err := a.ListCharts(ctx, ListChartsRequest{})
	if err != nil {
		return nil, err
	}

	rendered := make([]RenderChartResponse, 0, len(charts.Charts))
	for _, c := range charts.Charts {
		r, err := a.renderChart(ctx, c, RenderChartRequest{Index: c.Index, Width: req.Width, Height: req.Height})
		if err != nil {
			return nil, fmt.Errorf("could not render chart %d: %w", c.Index, err)
		}
		rendered = append(rendered, *r)
	}

	return &RenderChartsResponse{Charts: rendered}, nil
}

func (a *App) renderChart(ctx context.Context, c Chart, req RenderChartRequest) (*RenderChartResponse, error) {
	t0 := time.Now()
	surface := svg.NewSurface()
	renderer, err := chart.NewRenderer(chart.RendererConfig{
		Surface: surface,
		ID:      a.rendererIDFunc(),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create renderer: %w", err)
	}

	renderer.Render(c.Entry, req.Width, req.Height)
	if req.XDomain != nil {
		renderer.RestoreXDomain(req.XDomain[0], req.XDomain[1])
	}

	interaction := InteractionRender
	switch {
	case req.Brush != nil:
		interaction = InteractionZoom
		renderer.BrushEnd(req.Brush)
	case req.Reset:
		interaction = InteractionReset
		renderer.DoubleClick()
	}

	svgDoc := surface.String()
	a.metricsRecorder.MeasureChartRenderDuration(ctx, string(interaction), c.Entry.Kind(), time.Since(t0))

	resp := &RenderChartResponse{
		Chart:           c,
		Interaction:     interaction,
		SVG:             svgDoc,
		XDomain:         renderer.XDomain(),
		OriginalXDomain: renderer.OriginalXDomain(),
		YDomain:         renderer.YDomain(),
	}
	if t := surface.InFlightTransition(); t != nil {
		u := t.Update
		resp.Update = &u
		resp.TransitionMS = t.Duration.Milliseconds()
	}

	return resp, nil
}
