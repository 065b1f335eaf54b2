package chart

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultWidth is the default outer width of a chart.
	DefaultWidth = 720
	// DefaultHeight is the default outer height of a chart.
	DefaultHeight = 300
	// TransitionDuration is the duration of the zoom and reset animations.
	TransitionDuration = 250 * time.Millisecond
)

// Margins are the space between the drawing surface border and the plot area.
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// DefaultMargins leave space for the axes.
var DefaultMargins = Margins{Top: 10, Right: 30, Bottom: 30, Left: 60}

// Selection is a brush selection in plot area pixels.
type Selection struct {
	X0 float64
	X1 float64
}

// Empty returns true when the selection doesn't cover any pixel.
func (s Selection) Empty() bool { return s.X0 == s.X1 }

// Frame is the full content of a drawing surface.
type Frame struct {
	ID          string
	Title       string
	Width       float64
	Height      float64
	Margins     Margins
	InnerWidth  float64
	InnerHeight float64
	ClipID      string
	XDomain     [2]float64
	YDomain     [2]float64
	// OriginalXDomain is the X domain of the last render, before any zoom.
	OriginalXDomain [2]float64
	Geometry        PlotGeometry
}

// Update is the part of a frame that changes on zoom and reset.
type Update struct {
	XDomain [2]float64   `json:"x_domain"`
	XTicks  []Tick       `json:"x_ticks"`
	Series  []SeriesPath `json:"series"`
}

// Surface is where a renderer draws. Renderers are the only writers of their
// surface.
type Surface interface {
	// Clear removes everything from the surface, including any in-flight transition.
	Clear()
	// Draw draws a full frame.
	Draw(f Frame)
	// Transition animates the X axis and the series paths into the update,
	// replacing any in-flight transition.
	Transition(u Update, d time.Duration)
	// ClearBrush removes the visual brush selection.
	ClearBrush()
}

// RendererConfig is the configuration of a Renderer.
type RendererConfig struct {
	Surface Surface
	// ID identifies the renderer instance, used to scope the clip region.
	ID      string
	Margins *Margins
}

func (c *RendererConfig) defaults() error {
	if c.Surface == nil {
		return fmt.Errorf("surface is required")
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	if c.Margins == nil {
		m := DefaultMargins
		c.Margins = &m
	}

	return nil
}

// Renderer draws one chart entry on a surface and handles the zoom and reset
// interactions. A renderer is not safe for concurrent use.
type Renderer struct {
	id      string
	surface Surface
	margins Margins

	entry         Entry
	width, height float64
	innerW        float64
	innerH        float64
	x             *LinearScale
	originalX     *LinearScale
	y             *LinearScale
	geometry      PlotGeometry
}

// NewRenderer returns a new Renderer.
func NewRenderer(cfg RendererConfig) (*Renderer, error) {
	err := cfg.defaults()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Renderer{
		id:      cfg.ID,
		surface: cfg.Surface,
		margins: *cfg.Margins,
	}, nil
}

// ID returns the renderer instance ID.
func (r *Renderer) ID() string { return r.id }

// ClipID returns the clip region identifier of the renderer.
func (r *Renderer) ClipID() string { return "clip-" + r.id }

// Render fully redraws the surface with the entry. Anything drawn before,
// including in-flight transitions, is removed first. Width and height fall back
// to the defaults when they are not positive.
func (r *Renderer) Render(e Entry, width, height float64) {
	r.surface.Clear()

	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	r.entry = e
	r.width, r.height = width, height
	r.innerW = width - r.margins.Left - r.margins.Right
	r.innerH = height - r.margins.Top - r.margins.Bottom

	r.x = NewXScale(e, r.innerW)
	r.originalX = r.x.Copy()
	r.y = NewYScale(e, r.innerH)
	r.geometry = ComputePlot(e, r.x, r.y)

	r.surface.Draw(r.frame())
}

func (r *Renderer) frame() Frame {
	return Frame{
		ID:          r.id,
		Title:       r.entry.Title,
		Width:       r.width,
		Height:      r.height,
		Margins:     r.margins,
		InnerWidth:  r.innerW,
		InnerHeight: r.innerH,
		ClipID:      r.ClipID(),
		XDomain:     domainOf(r.x),
		YDomain:     domainOf(r.y),
		Geometry:    r.geometry,

		OriginalXDomain: domainOf(r.originalX),
	}
}

// BrushEnd zooms the X axis into the selection. Nil or empty selections are ignored.
func (r *Renderer) BrushEnd(sel *Selection) {
	if sel == nil || sel.Empty() || r.x == nil {
		return
	}

	d0, d1 := r.x.Invert(sel.X0), r.x.Invert(sel.X1)
	x := r.x.Copy().SetDomain(d0, d1)

	r.surface.ClearBrush()
	r.redraw(x)
}

// DoubleClick resets the X axis to the original domain.
func (r *Renderer) DoubleClick() {
	if r.originalX == nil {
		return
	}

	r.redraw(r.originalX.Copy())
}

// RestoreXDomain redraws the surface with a X domain without animating, used to
// restore a zoom state known by the caller. The original domain is kept so
// DoubleClick still resets to it.
func (r *Renderer) RestoreXDomain(d0, d1 float64) {
	if r.x == nil {
		return
	}

	r.x = r.x.Copy().SetDomain(d0, d1)
	r.geometry = ComputePlot(r.entry, r.x, r.y)

	r.surface.Clear()
	r.surface.Draw(r.frame())
}

// redraw animates the X axis and every series into the X scale. The Y scale and
// data don't change.
func (r *Renderer) redraw(x *LinearScale) {
	r.x = x
	r.geometry = ComputePlot(r.entry, r.x, r.y)

	r.surface.Transition(Update{
		XDomain: domainOf(r.x),
		XTicks:  r.geometry.XTicks,
		Series:  r.geometry.Series,
	}, TransitionDuration)
}

// XDomain returns the current X domain.
func (r *Renderer) XDomain() [2]float64 { return domainOf(r.x) }

// OriginalXDomain returns the X domain computed on the last render.
func (r *Renderer) OriginalXDomain() [2]float64 { return domainOf(r.originalX) }

// YDomain returns the Y domain.
func (r *Renderer) YDomain() [2]float64 { return domainOf(r.y) }

// InnerSize returns the plot area size.
func (r *Renderer) InnerSize() (float64, float64) { return r.innerW, r.innerH }

// Geometry returns the current plot geometry.
func (r *Renderer) Geometry() PlotGeometry { return r.geometry }

func domainOf(s *LinearScale) [2]float64 {
	if s == nil {
		return [2]float64{}
	}
	d0, d1 := s.Domain()
	return [2]float64{d0, d1}
}
