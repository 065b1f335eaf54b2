package chart

import (
	"math"
)

var (
	tickE10 = math.Sqrt(50)
	tickE5  = math.Sqrt(10)
	tickE2  = math.Sqrt(2)
)

// LinearScale maps a continuous domain into a continuous range.
//
// The behaviour follows d3-scale linear scales so the axes and zoom bounds are
// the ones a browser chart would show: https://d3js.org/d3-scale/linear.
type LinearScale struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinearScale returns a scale with [0,1] domain and range.
func NewLinearScale() *LinearScale {
	return &LinearScale{d0: 0, d1: 1, r0: 0, r1: 1}
}

// SetDomain sets the domain of the scale.
func (s *LinearScale) SetDomain(d0, d1 float64) *LinearScale {
	s.d0, s.d1 = d0, d1
	return s
}

// SetRange sets the range of the scale.
func (s *LinearScale) SetRange(r0, r1 float64) *LinearScale {
	s.r0, s.r1 = r0, r1
	return s
}

// Domain returns the domain of the scale.
func (s *LinearScale) Domain() (float64, float64) { return s.d0, s.d1 }

// Range returns the range of the scale.
func (s *LinearScale) Range() (float64, float64) { return s.r0, s.r1 }

// Copy returns an independent copy of the scale.
func (s *LinearScale) Copy() *LinearScale {
	c := *s
	return &c
}

// Scale maps a domain value into the range. A degenerate domain maps every
// value into the middle of the range.
func (s *LinearScale) Scale(v float64) float64 {
	return interpolate(s.r0, s.r1, normalize(s.d0, s.d1, v))
}

// Invert maps a range value into the domain.
func (s *LinearScale) Invert(px float64) float64 {
	return interpolate(s.d0, s.d1, normalize(s.r0, s.r1, px))
}

// Nice extends the domain so it starts and ends on round values. Degenerate
// domains are left untouched.
func (s *LinearScale) Nice(count int) *LinearScale {
	start, stop := s.d0, s.d1
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}

	prestep := math.NaN()
	for i := 0; i < 10; i++ {
		step := tickIncrement(start, stop, float64(count))
		if step == prestep {
			break
		}

		switch {
		case step > 0:
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		case step < 0:
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		default:
			return s
		}
		prestep = step
	}

	if math.IsNaN(start) || math.IsNaN(stop) || math.IsInf(start, 0) || math.IsInf(stop, 0) {
		return s
	}

	if reversed {
		start, stop = stop, start
	}
	s.d0, s.d1 = start, stop

	return s
}

// Ticks returns approximately count round values inside the domain.
func (s *LinearScale) Ticks(count int) []float64 {
	return ticks(s.d0, s.d1, float64(count))
}

// TickStep returns the distance between ticks for the count.
func (s *LinearScale) TickStep(count int) float64 {
	start, stop := s.d0, s.d1
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}

	inc := tickIncrement(start, stop, float64(count))
	step := inc
	if inc < 0 {
		step = -1 / inc
	}
	if reversed {
		step = -step
	}

	return step
}

func normalize(a, b, v float64) float64 {
	d := b - a
	if d == 0 {
		return 0.5
	}
	return (v - a) / d
}

func interpolate(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// tickSpec returns the first and last tick indexes and the increment. A negative
// increment means the ticks are i/-inc instead of i*inc (better precision for
// decimal steps).
func tickSpec(start, stop, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)
	factor := tickFactor(e)

	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = math.Round(start / inc)
		i2 = math.Round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}

	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}

	return i1, i2, inc
}

func tickFactor(e float64) float64 {
	switch {
	case e >= tickE10:
		return 10
	case e >= tickE5:
		return 5
	case e >= tickE2:
		return 2
	}
	return 1
}

func tickIncrement(start, stop, count float64) float64 {
	_, _, inc := tickSpec(start, stop, count)
	return inc
}

func ticks(start, stop, count float64) []float64 {
	if !(count > 0) || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}

	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	i1, i2, inc := tickSpec(start, stop, count)
	if !(i2 >= i1) || math.IsInf(i1, 0) || math.IsInf(i2, 0) {
		return nil
	}

	n := int(i2 - i1 + 1)
	res := make([]float64, n)
	for i := 0; i < n; i++ {
		v := (i1 + float64(i)) * inc
		if inc < 0 {
			v = (i1 + float64(i)) / -inc
		}
		if reverse {
			res[n-1-i] = v
		} else {
			res[i] = v
		}
	}

	return res
}
