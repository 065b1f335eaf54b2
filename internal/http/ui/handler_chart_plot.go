package ui

import (
	"encoding/json"
	"net/http"

	"github.com/slok/tsplot/internal/chart"
)

type plotResponse struct {
	Index           int           `json:"index"`
	Interaction     string        `json:"interaction"`
	XDomain         [2]float64    `json:"x_domain"`
	OriginalXDomain [2]float64    `json:"original_x_domain"`
	YDomain         [2]float64    `json:"y_domain"`
	TransitionMS    int64         `json:"transition_ms"`
	Update          *chart.Update `json:"update,omitempty"`
}

// handlerChartPlot returns the plot changes of a chart interaction so the browser
// can animate them on the already drawn chart.
func (u ui) handlerChartPlot() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

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

		resp := plotResponse{
			Index:           chartResp.Chart.Index,
			Interaction:     string(chartResp.Interaction),
			XDomain:         chartResp.XDomain,
			OriginalXDomain: chartResp.OriginalXDomain,
			YDomain:         chartResp.YDomain,
			TransitionMS:    chartResp.TransitionMS,
			Update:          chartResp.Update,
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		err = json.NewEncoder(w).Encode(resp)
		if err != nil {
			u.logger.WithCtxValues(ctx).Errorf("could not write plot response: %s", err)
		}
	})
}
