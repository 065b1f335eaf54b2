package ui

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html"
	"net/http"
	"text/template"

	"github.com/slok/tsplot/internal/chart"
	"github.com/slok/tsplot/internal/log"
)

var (
	//go:embed all:static
	staticFS embed.FS
	//go:embed all:templates
	templatesFS embed.FS
)

var templatePatterns = []string{
	"templates/*/*.tmpl",
	"templates/*/*/*.tmpl",
}

// commonData is available on every template as `.Common`.
type commonData struct {
	CSSPath   string
	JSPath    string
	HomeURL   string
	DataURL   string
	ChartsURL string
}

type tplRenderer struct {
	logger log.Logger
	tpls   *template.Template
	common commonData
}

func newTplRenderer(logger log.Logger) (*tplRenderer, error) {
	tpls, err := template.New("base").Funcs(template.FuncMap{
		"escape":     html.EscapeString,
		"chartWidth": func() int { return chart.DefaultWidth },
	}).ParseFS(templatesFS, templatePatterns...)
	if err != nil {
		return nil, fmt.Errorf("could not parse templates: %w", err)
	}

	return &tplRenderer{
		logger: logger,
		tpls:   tpls,
		common: commonData{
			CSSPath:   staticURL("/css"),
			JSPath:    staticURL("/js"),
			HomeURL:   chartsURL(),
			DataURL:   dataURL(),
			ChartsURL: chartsURL(),
		},
	}, nil
}

// RenderResponse renders the template as the HTML response. If the template
// fails nothing is written and the client gets an internal error.
func (t *tplRenderer) RenderResponse(ctx context.Context, w http.ResponseWriter, tplName string, data any) {
	d := struct {
		Common commonData
		Data   any
	}{
		Common: t.common,
		Data:   data,
	}

	var b bytes.Buffer
	err := t.tpls.ExecuteTemplate(&b, tplName, d)
	if err != nil {
		t.logger.WithCtxValues(ctx).Errorf("Could not render template %q: %s", tplName, err)
		http.Error(w, "could not render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = b.WriteTo(w)
}
