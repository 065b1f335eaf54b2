package chart

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	// XAxisTicks is the approximated number of ticks on the X axis.
	XAxisTicks = 6
	// YAxisTicks is the approximated number of ticks on the Y axis.
	YAxisTicks = 10
	// niceTicks is the tick count used when nicing domains.
	niceTicks = 10
)

// Palette are the series colors in channel order (blue, green, red).
var Palette = [ChannelCount]string{"#1f77b4", "#2ca02c", "#d62728"}

// Tick is an axis tick.
type Tick struct {
	Value    float64 `json:"value"`
	Position float64 `json:"position"`
	Label    string  `json:"label"`
}

// SeriesPath is the drawable line of one series.
type SeriesPath struct {
	Channel int    `json:"channel"`
	Color   string `json:"color"`
	D       string `json:"d"`
}

// PlotGeometry is everything required to draw a chart plot area.
type PlotGeometry struct {
	XTicks []Tick       `json:"x_ticks"`
	YTicks []Tick       `json:"y_ticks"`
	Series []SeriesPath `json:"series"`
}

// ComputePlot computes the plot geometry of an entry for the scales. It doesn't
// have side effects so it can be called as many times as required.
func ComputePlot(e Entry, x, y *LinearScale) PlotGeometry {
	series := e.Series()
	g := PlotGeometry{
		XTicks: AxisTicks(x, XAxisTicks),
		YTicks: AxisTicks(y, YAxisTicks),
		Series: make([]SeriesPath, 0, len(series)),
	}

	for i, s := range series {
		g.Series = append(g.Series, SeriesPath{
			Channel: i,
			Color:   Palette[i%len(Palette)],
			D:       LinePath(s, x, y),
		})
	}

	return g
}

// TimestampExtent returns the min and max timestamp of the entry.
func TimestampExtent(e Entry) (min, max float64, ok bool) {
	for _, dp := range e.Data {
		ts := dp.Timestamp()
		if !ok {
			min, max, ok = ts, ts, true
			continue
		}
		min = math.Min(min, ts)
		max = math.Max(max, ts)
	}

	return min, max, ok
}

// ValueExtent returns the min and max of every present value on every channel.
func ValueExtent(e Entry) (min, max float64, ok bool) {
	for _, s := range e.Series() {
		for _, p := range s {
			if p.Value.Missing {
				continue
			}
			v := p.Value.Value
			if !ok {
				min, max, ok = v, v, true
				continue
			}
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
	}

	return min, max, ok
}

// NewXScale returns the niced time scale of the entry for a plot width.
// Entries without data use a [0,1] domain.
func NewXScale(e Entry, width float64) *LinearScale {
	s := NewLinearScale().SetRange(0, width)
	if min, max, ok := TimestampExtent(e); ok {
		s.SetDomain(min, max)
	}

	return s.Nice(niceTicks)
}

// NewYScale returns the niced value scale of the entry for a plot height. Larger
// values are placed higher. Entries without values use a [0,1] domain.
func NewYScale(e Entry, height float64) *LinearScale {
	s := NewLinearScale().SetRange(height, 0)
	if min, max, ok := ValueExtent(e); ok {
		s.SetDomain(min, max)
	}

	return s.Nice(niceTicks)
}

// LinePath returns the SVG path of a series. Missing values split the line in
// multiple sub paths, isolated points are closed paths so they remain visible.
func LinePath(s []SeriesPoint, x, y *LinearScale) string {
	var b strings.Builder
	runLen := 0
	for _, p := range s {
		if p.Value.Missing {
			if runLen == 1 {
				b.WriteString("Z")
			}
			runLen = 0
			continue
		}

		cmd := "L"
		if runLen == 0 {
			cmd = "M"
		}
		b.WriteString(cmd)
		b.WriteString(formatCoord(x.Scale(p.TS)))
		b.WriteString(",")
		b.WriteString(formatCoord(y.Scale(p.Value.Value)))
		runLen++
	}
	if runLen == 1 {
		b.WriteString("Z")
	}

	return b.String()
}

// AxisTicks returns the ticks of a scale with their position and label.
func AxisTicks(s *LinearScale, count int) []Tick {
	values := s.Ticks(count)
	prec := precisionFixed(s.TickStep(count))

	ticks := make([]Tick, 0, len(values))
	for _, v := range values {
		ticks = append(ticks, Tick{
			Value:    v,
			Position: roundCoord(s.Scale(v)),
			Label:    formatTickLabel(v, prec),
		})
	}

	return ticks
}

var tickPrinter = message.NewPrinter(language.English)

func formatTickLabel(v float64, prec int) string {
	if v == 0 {
		v = 0 // Avoid "-0".
	}
	return tickPrinter.Sprint(number.Decimal(v, number.Scale(prec)))
}

// precisionFixed returns the decimals required to show the step difference.
func precisionFixed(step float64) int {
	step = math.Abs(step)
	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return 0
	}

	s := strconv.FormatFloat(step, 'e', -1, 64)
	idx := strings.IndexByte(s, 'e')
	exp, err := strconv.Atoi(s[idx+1:])
	if err != nil || exp >= 0 {
		return 0
	}

	return -exp
}

func roundCoord(v float64) float64 {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		return 0
	}
	return r
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(roundCoord(v), 'f', -1, 64)
}
