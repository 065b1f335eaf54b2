package svg

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"strconv"
	"text/template"
	"time"

	"github.com/slok/tsplot/internal/chart"
)

var (
	//go:embed templates
	templatesFS embed.FS

	tpls = template.Must(template.New("base").Funcs(template.FuncMap{
		"num": formatNum,
	}).ParseFS(templatesFS, "templates/*.tmpl"))
)

// Transition is an in-flight animation of the surface.
type Transition struct {
	// Generation increases on every transition of the surface so clients can
	// discard stale animations.
	Generation int
	Update     chart.Update
	Duration   time.Duration
}

// Surface is a chart.Surface that writes SVG documents.
type Surface struct {
	frame       *chart.Frame
	transition  *Transition
	generation  int
	brushClears int
}

var _ chart.Surface = &Surface{}

// NewSurface returns an empty SVG surface.
func NewSurface() *Surface {
	return &Surface{}
}

func (s *Surface) Clear() {
	s.frame = nil
	s.transition = nil
}

func (s *Surface) Draw(f chart.Frame) {
	s.frame = &f
}

func (s *Surface) Transition(u chart.Update, d time.Duration) {
	// The last transition wins, the previous one is dropped.
	s.generation++
	s.transition = &Transition{
		Generation: s.generation,
		Update:     u,
		Duration:   d,
	}
}

func (s *Surface) ClearBrush() {
	s.brushClears++
}

// Frame returns the drawn frame, nil if nothing has been drawn.
func (s *Surface) Frame() *chart.Frame { return s.frame }

// InFlightTransition returns the current transition, nil if there isn't any.
func (s *Surface) InFlightTransition() *Transition { return s.transition }

// BrushClears returns the number of times the brush selection has been cleared.
func (s *Surface) BrushClears() int { return s.brushClears }

type tplData struct {
	Frame        chart.Frame
	XDomain      [2]float64
	XTicks       []chart.Tick
	Series       []chart.SeriesPath
	TransitionMS int64
}

// WriteTo writes the SVG document of the surface. In-flight transitions are
// written in their final state, the duration is set as a data attribute so the
// browser can animate it.
func (s *Surface) WriteTo(w io.Writer) (int64, error) {
	if s.frame == nil {
		return 0, fmt.Errorf("nothing has been drawn")
	}

	d := tplData{
		Frame:   *s.frame,
		XDomain: s.frame.XDomain,
		XTicks:  s.frame.Geometry.XTicks,
		Series:  s.frame.Geometry.Series,
	}
	if t := s.transition; t != nil {
		d.XDomain = t.Update.XDomain
		d.XTicks = t.Update.XTicks
		d.Series = t.Update.Series
		d.TransitionMS = t.Duration.Milliseconds()
	}

	var b bytes.Buffer
	err := tpls.ExecuteTemplate(&b, "chart", d)
	if err != nil {
		return 0, fmt.Errorf("could not render svg template: %w", err)
	}

	return b.WriteTo(w)
}

// String returns the SVG document, empty if nothing has been drawn.
func (s *Surface) String() string {
	var b bytes.Buffer
	_, err := s.WriteTo(&b)
	if err != nil {
		return ""
	}
	return b.String()
}

func formatNum(v float64) string {
	if v == 0 {
		v = 0 // Avoid "-0".
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
