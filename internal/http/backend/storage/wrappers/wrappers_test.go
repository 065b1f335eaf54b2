package wrappers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/slok/tsplot/internal/chart"
	"github.com/slok/tsplot/internal/http/backend/metrics"
	"github.com/slok/tsplot/internal/http/backend/storage/storagemock"
	"github.com/slok/tsplot/internal/http/backend/storage/wrappers"
	"github.com/slok/tsplot/internal/log"
)

type storageOpMeasure struct {
	op  string
	err error
}

type fakeRecorder struct {
	metrics.Recorder
	measures []storageOpMeasure
}

func (f *fakeRecorder) MeasureStorageOperationDuration(_ context.Context, op string, _ time.Duration, err error) {
	f.measures = append(f.measures, storageOpMeasure{op: op, err: err})
}

func TestMeasuredChartGetter(t *testing.T) {
	errTest := errors.New("whatever")
	entries := []chart.Entry{{Title: "Requests"}}

	tests := map[string]struct {
		mock        func(m *storagemock.ChartGetter)
		expEntries  []chart.Entry
		expMeasures []storageOpMeasure
		expErr      bool
	}{
		"A successful list should be measured.": {
			mock: func(m *storagemock.ChartGetter) {
				m.On("ListChartEntries", mock.Anything).Once().Return(entries, nil)
			},
			expEntries:  entries,
			expMeasures: []storageOpMeasure{{op: "ListChartEntries"}},
		},

		"A failed list should be measured with its error.": {
			mock: func(m *storagemock.ChartGetter) {
				m.On("ListChartEntries", mock.Anything).Once().Return(nil, errTest)
			},
			expMeasures: []storageOpMeasure{{op: "ListChartEntries", err: errTest}},
			expErr:      true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			mcg := storagemock.NewChartGetter(t)
			test.mock(mcg)
			rec := &fakeRecorder{}

			cg := wrappers.NewMeasuredChartGetter(mcg, rec)
			gotEntries, err := cg.ListChartEntries(context.TODO())

			if test.expErr {
				assert.Error(err)
			} else if assert.NoError(err) {
				assert.Equal(test.expEntries, gotEntries)
			}
			assert.Equal(test.expMeasures, rec.measures)
		})
	}
}

func TestLoggedChartGetter(t *testing.T) {
	errTest := errors.New("whatever")

	tests := map[string]struct {
		mock       func(m *storagemock.ChartGetter)
		expEntries []chart.Entry
		expErr     error
	}{
		"Entries should be returned untouched.": {
			mock: func(m *storagemock.ChartGetter) {
				m.On("ListChartEntries", mock.Anything).Once().Return([]chart.Entry{{Title: "Latency"}}, nil)
			},
			expEntries: []chart.Entry{{Title: "Latency"}},
		},

		"Errors should be returned untouched.": {
			mock: func(m *storagemock.ChartGetter) {
				m.On("ListChartEntries", mock.Anything).Once().Return(nil, errTest)
			},
			expErr: errTest,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			mcg := storagemock.NewChartGetter(t)
			test.mock(mcg)

			cg := wrappers.NewLoggedChartGetter(mcg, log.Noop)
			gotEntries, err := cg.ListChartEntries(context.TODO())

			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
			} else if assert.NoError(err) {
				assert.Equal(test.expEntries, gotEntries)
			}
		})
	}
}
