package ui

import (
	"net/http"

	"github.com/slok/tsplot/internal/http/backend/app"
	"github.com/slok/tsplot/internal/http/ui/htmx"
)

type tplDataChart struct {
	Index   int
	Title   string
	SVG     string
	URL     string
	PlotURL string
}

func mapRenderedChartToTPL(c app.RenderChartResponse) tplDataChart {
	return tplDataChart{
		Index:   c.Chart.Index,
		Title:   c.Chart.Entry.Title,
		SVG:     c.SVG,
		URL:     chartURL(c.Chart.Index),
		PlotURL: chartPlotURL(c.Chart.Index),
	}
}

func (u ui) handlerCharts() http.HandlerFunc {
	// Available components
	const (
		componentChartList = "chart-list"
	)

	type tplData struct {
		ChartListURL string
		Charts       []tplDataChart
		LoadError    string
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		isHTMXCall := htmx.NewRequest(r.Header).IsHTMXRequest()
		component := componentFromRequest(r)

		data := tplData{
			ChartListURL: urlWithComponent(chartsURL(), componentChartList),
		}

		switch {
		// Snippet chart list.
		case isHTMXCall && component == componentChartList:
			chartsResp, err := u.chartApp.RenderCharts(ctx, app.RenderChartsRequest{})
			if err != nil {
				u.logger.WithCtxValues(ctx).Errorf("could not load charts: %s", err)
				data.LoadError = rootErrorMessage(err)
				u.tplRenderer.RenderResponse(ctx, w, "app_charts_comp_chart_list", data)
				return
			}

			for _, c := range chartsResp.Charts {
				data.Charts = append(data.Charts, mapRenderedChartToTPL(c))
			}

			u.tplRenderer.RenderResponse(ctx, w, "app_charts_comp_chart_list", data)

		// Unknown snippet.
		case isHTMXCall:
			http.Error(w, "Unknown component", http.StatusBadRequest)

		// Full page load, charts are loaded afterwards.
		default:
			u.tplRenderer.RenderResponse(ctx, w, "app_charts", data)
		}
	})
}
