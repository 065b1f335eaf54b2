package ui_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/slok/tsplot/internal/chart"
	internalerrors "github.com/slok/tsplot/internal/errors"
	"github.com/slok/tsplot/internal/http/backend/app"
)

func TestHandlerChartPlot(t *testing.T) {
	tests := map[string]struct {
		request    func() *http.Request
		mock       func(m mocks)
		expBody    string
		expHeaders http.Header
		expCode    int
	}{
		"Zooming a chart should return the plot update.": {
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/u/app/charts/0/plot?from=0&to=2&brush-x0=63&brush-x1=315", nil)
			},
			mock: func(m mocks) {
				expReq := app.RenderChartRequest{
					Index:   0,
					XDomain: &[2]float64{0, 2},
					Brush:   &chart.Selection{X0: 63, X1: 315},
				}
				m.ChartApp.On("RenderChart", mock.Anything, expReq).Once().Return(&app.RenderChartResponse{
					Chart:           app.Chart{Index: 0, Entry: chart.Entry{Title: "Requests"}},
					Interaction:     app.InteractionZoom,
					XDomain:         [2]float64{0.2, 1},
					OriginalXDomain: [2]float64{0, 2},
					YDomain:         [2]float64{1, 3},
					TransitionMS:    250,
					Update: &chart.Update{
						XDomain: [2]float64{0.2, 1},
						XTicks:  []chart.Tick{{Value: 0.2, Position: 0, Label: "0.2"}, {Value: 1, Position: 630, Label: "1.0"}},
						Series:  []chart.SeriesPath{{Channel: 0, Color: "#1f77b4", D: "M-157.5,260ZM630,0Z"}},
					},
				}, nil)
			},
			expHeaders: jsonHeaders,
			expCode:    200,
			expBody: `{
				"index": 0,
				"interaction": "zoom",
				"x_domain": [0.2, 1],
				"original_x_domain": [0, 2],
				"y_domain": [1, 3],
				"transition_ms": 250,
				"update": {
					"x_domain": [0.2, 1],
					"x_ticks": [{"value": 0.2, "position": 0, "label": "0.2"}, {"value": 1, "position": 630, "label": "1.0"}],
					"series": [{"channel": 0, "color": "#1f77b4", "d": "M-157.5,260ZM630,0Z"}]
				}
			}`,
		},

		"Rendering a chart without interactions should not return an update.": {
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/u/app/charts/0/plot", nil)
			},
			mock: func(m mocks) {
				m.ChartApp.On("RenderChart", mock.Anything, app.RenderChartRequest{Index: 0}).Once().Return(&app.RenderChartResponse{
					Chart:           app.Chart{Index: 0, Entry: chart.Entry{Title: "Requests"}},
					Interaction:     app.InteractionRender,
					XDomain:         [2]float64{0, 2},
					OriginalXDomain: [2]float64{0, 2},
					YDomain:         [2]float64{1, 3},
				}, nil)
			},
			expHeaders: jsonHeaders,
			expCode:    200,
			expBody: `{
				"index": 0,
				"interaction": "render",
				"x_domain": [0, 2],
				"original_x_domain": [0, 2],
				"y_domain": [1, 3],
				"transition_ms": 0
			}`,
		},

		"Invalid domains should fail.": {
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/u/app/charts/0/plot?from=0&to=Inf", nil)
			},
			mock:       func(m mocks) {},
			expHeaders: textHeaders,
			expCode:    400,
		},

		"Missing charts should return not found.": {
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/u/app/charts/3/plot?reset=true", nil)
			},
			mock: func(m mocks) {
				err := fmt.Errorf("chart 3: %w", internalerrors.ErrNotFound)
				m.ChartApp.On("RenderChart", mock.Anything, app.RenderChartRequest{Index: 3, Reset: true}).Once().Return(nil, err)
			},
			expHeaders: textHeaders,
			expCode:    404,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			m := newMocks(t)
			test.mock(m)

			h := newTestUIHandler(t, m)

			w := httptest.NewRecorder()
			h.ServeHTTP(w, test.request())

			assert.Equal(test.expCode, w.Code)
			assert.Equal(test.expHeaders, w.Header())
			if test.expBody != "" {
				assert.JSONEq(test.expBody, w.Body.String())
			}
		})
	}
}
