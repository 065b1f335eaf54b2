package ui

import (
	"net/http"

	"github.com/slok/tsplot/internal/http/ui/htmx"
)

func (u ui) handlerChart() http.HandlerFunc {
	// Available components
	const (
		componentChart = "chart"
	)

	type tplData struct {
		Chart tplDataChart
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		isHTMXCall := htmx.NewRequest(r.Header).IsHTMXRequest()
		component := componentFromRequest(r)

		if isHTMXCall && component != componentChart {
			http.Error(w, "Unknown component", http.StatusBadRequest)
			return
		}

		req, err := renderChartRequestFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		chartResp, err := u.chartApp.RenderChart(ctx, req)
		if err != nil {
			status := httpStatusFromError(err)
			if status == http.StatusInternalServerError {
				u.logger.WithCtxValues(ctx).Errorf("could not render chart: %s", err)
			}
			http.Error(w, "could not render chart", status)
			return
		}

		data := tplData{Chart: mapRenderedChartToTPL(*chartResp)}

		switch {
		// Snippet chart.
		case isHTMXCall:
			u.tplRenderer.RenderResponse(ctx, w, "app_charts_comp_chart", data)

		// Full page load.
		default:
			u.tplRenderer.RenderResponse(ctx, w, "app_chart", data)
		}
	})
}
