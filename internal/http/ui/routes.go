package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/slok/go-http-metrics/middleware/std"
)

const (
	// URLParamChartIndex is the route param with the chart position on the document.
	URLParamChartIndex = "chartIndex"

	staticPath = "/static"
	appPath    = "/app"
	chartPath  = appPath + "/charts/{" + URLParamChartIndex + ":[0-9]+}"
)

type route struct {
	pattern string
	handler http.HandlerFunc
}

func (u ui) routes() []route {
	return []route{
		{pattern: "/", handler: u.handlerIndex()},
		{pattern: "/data.json", handler: u.handlerDataJSON()},
		{pattern: appPath + "/charts", handler: u.handlerCharts()},
		{pattern: chartPath, handler: u.handlerChart()},
		{pattern: chartPath + "/plot", handler: u.handlerChartPlot()},
	}
}

func (u ui) appRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		u.logMiddleware,
	)

	for _, rt := range u.routes() {
		// Measure by pattern so chart indexes don't explode the metric cardinality.
		r.With(std.HandlerProvider(rt.pattern, u.metricsMiddleware)).Get(rt.pattern, rt.handler)
	}

	return r
}

func (u ui) staticRouter() chi.Router {
	r := chi.NewRouter()
	r.Handle("/*", http.StripPrefix(ServePrefix, http.FileServer(http.FS(staticFS))))
	return r
}

func (u ui) handlerIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		redirect(w, r, chartsURL())
	}
}
