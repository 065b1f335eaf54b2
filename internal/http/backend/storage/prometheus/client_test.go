package prometheus_test

import (
	"context"
	"errors"
	"testing"
	"time"

	prometheusv1 "github.com/prometheus/client_golang/api/prometheus/v1"
	prommodel "github.com/prometheus/common/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/slok/tsplot/internal/http/backend/metrics"
	"github.com/slok/tsplot/internal/http/backend/storage/prometheus"
	"github.com/slok/tsplot/internal/http/backend/storage/prometheus/prometheusmock"
)

type apiClientMeasure struct {
	op  string
	err error
}

type fakeRecorder struct {
	metrics.Recorder
	measures []apiClientMeasure
}

func (f *fakeRecorder) MeasurePrometheusAPIClientOperation(_ context.Context, op string, _ time.Duration, err error) {
	f.measures = append(f.measures, apiClientMeasure{op: op, err: err})
}

func TestMeasuredPrometheusAPIClient(t *testing.T) {
	errTest := errors.New("whatever")
	queryRange := prometheusv1.Range{Start: time.Unix(0, 0), End: time.Unix(60, 0), Step: 30 * time.Second}

	tests := map[string]struct {
		mock        func(m *prometheusmock.PrometheusAPIClient)
		expValue    prommodel.Value
		expMeasures []apiClientMeasure
		expErr      bool
	}{
		"Successful queries should be measured.": {
			mock: func(m *prometheusmock.PrometheusAPIClient) {
				m.On("QueryRange", mock.Anything, "up", queryRange).Once().Return(prommodel.Matrix{}, nil, nil)
			},
			expValue:    prommodel.Matrix{},
			expMeasures: []apiClientMeasure{{op: "QueryRange"}},
		},

		"Failed queries should be measured with the error.": {
			mock: func(m *prometheusmock.PrometheusAPIClient) {
				m.On("QueryRange", mock.Anything, "up", queryRange).Once().Return(nil, nil, errTest)
			},
			expMeasures: []apiClientMeasure{{op: "QueryRange", err: errTest}},
			expErr:      true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			mpc := prometheusmock.NewPrometheusAPIClient(t)
			test.mock(mpc)
			rec := &fakeRecorder{}

			cli := prometheus.NewMeasuredPrometheusAPIClient(rec, mpc)
			gotValue, _, err := cli.QueryRange(context.TODO(), "up", queryRange)

			if test.expErr {
				assert.Error(err)
			} else if assert.NoError(err) {
				assert.Equal(test.expValue, gotValue)
			}
			assert.Equal(test.expMeasures, rec.measures)
		})
	}
}
