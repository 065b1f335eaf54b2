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

var testAppRenderChartResponse = &app.RenderChartResponse{
	Chart:       app.Chart{Index: 1, Entry: chart.Entry{Title: "Latency"}},
	Interaction: app.InteractionZoom,
	SVG:         `<svg id="chart-b" data-transition-ms="250"></svg>`,
}

func TestHandlerChart(t *testing.T) {
	tests := map[string]struct {
		request    func() *http.Request
		mock       func(m mocks)
		expBody    []string
		expHeaders http.Header
		expCode    int
	}{
		"Zooming a chart with HTMX should render the chart snippet.": {
			request: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/u/app/charts/1?component=chart&from=0&to=2&brush-x0=63&brush-x1=315", nil)
				r.Header.Add("HX-Request", "true")
				return r
			},
			mock: func(m mocks) {
				expReq := app.RenderChartRequest{
					Index:   1,
					XDomain: &[2]float64{0, 2},
					Brush:   &chart.Selection{X0: 63, X1: 315},
				}
				m.ChartApp.On("RenderChart", mock.Anything, expReq).Once().Return(testAppRenderChartResponse, nil)
			},
			expHeaders: htmlHeaders,
			expCode:    200,
			expBody: []string{
				`<div class="chart" id="chart-1" data-chart-url="/u/app/charts/1" data-plot-url="/u/app/charts/1/plot">`,
				`<h3>Latency</h3>`,
				`<svg id="chart-b" data-transition-ms="250"></svg>`,
			},
		},

		"Resetting a chart with HTMX should render the chart snippet.": {
			request: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/u/app/charts/1?component=chart&from=0.5&to=1.5&reset=true", nil)
				r.Header.Add("HX-Request", "true")
				return r
			},
			mock: func(m mocks) {
				expReq := app.RenderChartRequest{
					Index:   1,
					XDomain: &[2]float64{0.5, 1.5},
					Reset:   true,
				}
				m.ChartApp.On("RenderChart", mock.Anything, expReq).Once().Return(testAppRenderChartResponse, nil)
			},
			expHeaders: htmlHeaders,
			expCode:    200,
			expBody: []string{
				`<h3>Latency</h3>`,
			},
		},

		"Loading a chart without HTMX should render the full page.": {
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/u/app/charts/1", nil)
			},
			mock: func(m mocks) {
				m.ChartApp.On("RenderChart", mock.Anything, app.RenderChartRequest{Index: 1}).Once().Return(testAppRenderChartResponse, nil)
			},
			expHeaders: htmlHeaders,
			expCode:    200,
			expBody: []string{
				`<!DOCTYPE html>`, // We rendered a full page.
				`<p class="hint">Brush the chart to zoom. Double click to re-initialize.</p>`,
				`<a href="/u/app/charts">All charts</a>`,
				`<h3>Latency</h3>`,
			},
		},

		"Non numeric domains should fail.": {
			request: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/u/app/charts/1?component=chart&from=a&to=2", nil)
				r.Header.Add("HX-Request", "true")
				return r
			},
			mock:       func(m mocks) {},
			expHeaders: textHeaders,
			expCode:    400,
		},

		"Incomplete brush selections should fail.": {
			request: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/u/app/charts/1?component=chart&brush-x0=4", nil)
				r.Header.Add("HX-Request", "true")
				return r
			},
			mock:       func(m mocks) {},
			expHeaders: textHeaders,
			expCode:    400,
		},

		"Invalid resets should fail.": {
			request: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/u/app/charts/1?component=chart&reset=nope", nil)
				r.Header.Add("HX-Request", "true")
				return r
			},
			mock:       func(m mocks) {},
			expHeaders: textHeaders,
			expCode:    400,
		},

		"Unknown components with HTMX should fail.": {
			request: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/u/app/charts/1?component=something", nil)
				r.Header.Add("HX-Request", "true")
				return r
			},
			mock:       func(m mocks) {},
			expHeaders: textHeaders,
			expCode:    400,
			expBody:    []string{"Unknown component"},
		},

		"Invalid interactions on the app should fail.": {
			request: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/u/app/charts/1?component=chart&brush-x0=0&brush-x1=10&reset=true", nil)
				r.Header.Add("HX-Request", "true")
				return r
			},
			mock: func(m mocks) {
				expReq := app.RenderChartRequest{
					Index: 1,
					Brush: &chart.Selection{X0: 0, X1: 10},
					Reset: true,
				}
				err := fmt.Errorf("invalid request: %w", internalerrors.ErrNotValid)
				m.ChartApp.On("RenderChart", mock.Anything, expReq).Once().Return(nil, err)
			},
			expHeaders: textHeaders,
			expCode:    400,
		},

		"Missing charts should return not found.": {
			request: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/u/app/charts/9?component=chart", nil)
				r.Header.Add("HX-Request", "true")
				return r
			},
			mock: func(m mocks) {
				err := fmt.Errorf("chart 9: %w", internalerrors.ErrNotFound)
				m.ChartApp.On("RenderChart", mock.Anything, app.RenderChartRequest{Index: 9}).Once().Return(nil, err)
			},
			expHeaders: textHeaders,
			expCode:    404,
		},

		"Failing loading the chart should fail.": {
			request: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/u/app/charts/0?component=chart", nil)
				r.Header.Add("HX-Request", "true")
				return r
			},
			mock: func(m mocks) {
				m.ChartApp.On("RenderChart", mock.Anything, app.RenderChartRequest{Index: 0}).Once().Return(nil, fmt.Errorf("something"))
			},
			expHeaders: textHeaders,
			expCode:    500,
		},

		"Non numeric chart indexes should not be found.": {
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/u/app/charts/abc", nil)
			},
			mock:       func(m mocks) {},
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
			assertContainsHTTPResponseBody(t, test.expBody, w)
		})
	}
}
