package ui_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/slok/tsplot/internal/chart"
	"github.com/slok/tsplot/internal/http/backend/app"
	storagehttp "github.com/slok/tsplot/internal/http/backend/storage/http"
)

var testAppRenderChartsResponse = &app.RenderChartsResponse{
	Charts: []app.RenderChartResponse{
		{
			Chart:       app.Chart{Index: 0, Entry: chart.Entry{Title: "Requests"}},
			Interaction: app.InteractionRender,
			SVG:         `<svg id="chart-a"></svg>`,
		},
		{
			Chart:       app.Chart{Index: 1, Entry: chart.Entry{Title: "<b>Latency</b>"}},
			Interaction: app.InteractionRender,
			SVG:         `<svg id="chart-b"></svg>`,
		},
	},
}

func TestHandlerCharts(t *testing.T) {
	tests := map[string]struct {
		request    func() *http.Request
		mock       func(m mocks)
		expBody    []string
		expHeaders http.Header
		expCode    int
	}{
		"Loading the charts page should render the full page with the charts loading.": {
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/u/app/charts", nil)
			},
			mock:       func(m mocks) {},
			expHeaders: htmlHeaders,
			expCode:    200,
			expBody: []string{
				`<!DOCTYPE html>`, // We rendered a full page.
				`<p class="hint">Brush the chart to zoom. Double click to re-initialize.</p>`,
				`<div id="chart-list" hx-get="/u/app/charts?component=chart-list" hx-trigger="load" hx-swap="outerHTML">`,
				`<p class="loading">Loading…</p>`,
				`<script src="/u/static/js/chart.js" defer></script>`,
			},
		},

		"Loading the chart list with HTMX should render the charts snippet.": {
			request: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/u/app/charts?component=chart-list", nil)
				r.Header.Add("HX-Request", "true")
				return r
			},
			mock: func(m mocks) {
				m.ChartApp.On("RenderCharts", mock.Anything, app.RenderChartsRequest{}).Once().Return(testAppRenderChartsResponse, nil)
			},
			expHeaders: htmlHeaders,
			expCode:    200,
			expBody: []string{
				`<div class="chart" id="chart-0" data-chart-url="/u/app/charts/0" data-plot-url="/u/app/charts/0/plot">`,
				`<h3>Requests</h3>`,
				`<svg id="chart-a"></svg>`,
				`<div class="chart" id="chart-1" data-chart-url="/u/app/charts/1" data-plot-url="/u/app/charts/1/plot">`,
				`<h3>&lt;b&gt;Latency&lt;/b&gt;</h3>`, // Titles are escaped.
				`<svg id="chart-b"></svg>`,
			},
		},

		"Failing loading the charts because of an HTTP error should render the error.": {
			request: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/u/app/charts?component=chart-list", nil)
				r.Header.Add("HX-Request", "true")
				return r
			},
			mock: func(m mocks) {
				err := fmt.Errorf("could not list chart entries: %w", fmt.Errorf("could not fetch charts document: %w", storagehttp.StatusError{StatusCode: 500}))
				m.ChartApp.On("RenderCharts", mock.Anything, app.RenderChartsRequest{}).Once().Return(nil, err)
			},
			expHeaders: htmlHeaders,
			expCode:    200,
			expBody: []string{
				`<p class="error">Failed to load charts: HTTP 500</p>`,
			},
		},

		"Failing loading the charts because of an invalid document should render the error.": {
			request: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/u/app/charts?component=chart-list", nil)
				r.Header.Add("HX-Request", "true")
				return r
			},
			mock: func(m mocks) {
				err := fmt.Errorf("could not list chart entries: %w", fmt.Errorf("could not load charts document: %w", chart.ErrInvalidRowFormat))
				m.ChartApp.On("RenderCharts", mock.Anything, app.RenderChartsRequest{}).Once().Return(nil, err)
			},
			expHeaders: htmlHeaders,
			expCode:    200,
			expBody: []string{
				`<p class="error">Failed to load charts: Invalid row format</p>`,
			},
		},

		"Loading an unknown component with HTMX should fail.": {
			request: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/u/app/charts?component=something", nil)
				r.Header.Add("HX-Request", "true")
				return r
			},
			mock:       func(m mocks) {},
			expHeaders: textHeaders,
			expCode:    400,
			expBody:    []string{"Unknown component"},
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
