package chart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/tsplot/internal/chart"
)

func TestLinearScaleNice(t *testing.T) {
	tests := map[string]struct {
		domain    [2]float64
		expDomain [2]float64
	}{
		"Already round domains should not change.": {
			domain:    [2]float64{0, 2},
			expDomain: [2]float64{0, 2},
		},

		"Decimal domains should be extended to round values.": {
			domain:    [2]float64{0.5, 9.7},
			expDomain: [2]float64{0, 10},
		},

		"Integer domains should be extended to round values.": {
			domain:    [2]float64{3, 97},
			expDomain: [2]float64{0, 100},
		},

		"Reversed domains should keep the order.": {
			domain:    [2]float64{97, 3},
			expDomain: [2]float64{100, 0},
		},

		"Degenerate domains should not change.": {
			domain:    [2]float64{5, 5},
			expDomain: [2]float64{5, 5},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			s := chart.NewLinearScale().SetDomain(test.domain[0], test.domain[1]).Nice(10)
			d0, d1 := s.Domain()

			assert.InDelta(test.expDomain[0], d0, 1e-9)
			assert.InDelta(test.expDomain[1], d1, 1e-9)
		})
	}
}

func TestLinearScaleTicks(t *testing.T) {
	tests := map[string]struct {
		domain   [2]float64
		count    int
		expTicks []float64
	}{
		"Integer steps.": {
			domain:   [2]float64{0, 10},
			count:    6,
			expTicks: []float64{0, 2, 4, 6, 8, 10},
		},

		"Decimal steps.": {
			domain:   [2]float64{0, 1},
			count:    5,
			expTicks: []float64{0, 0.2, 0.4, 0.6, 0.8, 1},
		},

		"Degenerate domains should have a single tick.": {
			domain:   [2]float64{3, 3},
			count:    6,
			expTicks: []float64{3},
		},

		"Zero count should not have ticks.": {
			domain:   [2]float64{0, 10},
			count:    0,
			expTicks: nil,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			s := chart.NewLinearScale().SetDomain(test.domain[0], test.domain[1])
			assert.Equal(test.expTicks, s.Ticks(test.count))
		})
	}
}

func TestLinearScaleScaleAndInvert(t *testing.T) {
	assert := assert.New(t)

	s := chart.NewLinearScale().SetDomain(0, 10).SetRange(0, 100)
	assert.InDelta(25.0, s.Scale(2.5), 1e-9)
	assert.InDelta(2.5, s.Invert(25), 1e-9)

	// Inverted ranges (Y axis).
	y := chart.NewLinearScale().SetDomain(0, 4).SetRange(400, 0)
	assert.InDelta(300.0, y.Scale(1), 1e-9)
	assert.InDelta(1.0, y.Invert(300), 1e-9)

	// Degenerate domains map to the middle of the range.
	d := chart.NewLinearScale().SetDomain(5, 5).SetRange(0, 100)
	assert.InDelta(50.0, d.Scale(5), 1e-9)

	// Copies are independent.
	c := s.Copy().SetDomain(0, 1)
	d0, d1 := s.Domain()
	assert.Equal([2]float64{0, 10}, [2]float64{d0, d1})
	d0, d1 = c.Domain()
	assert.Equal([2]float64{0, 1}, [2]float64{d0, d1})
}
