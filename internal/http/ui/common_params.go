package ui

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/slok/tsplot/internal/chart"
	internalerrors "github.com/slok/tsplot/internal/errors"
	"github.com/slok/tsplot/internal/http/backend/app"
)

const (
	queryParamFrom    = "from"
	queryParamTo      = "to"
	queryParamBrushX0 = "brush-x0"
	queryParamBrushX1 = "brush-x1"
	queryParamReset   = "reset"
)

func chartIndexFromRequest(r *http.Request) (int, error) {
	index, err := strconv.Atoi(chi.URLParam(r, URLParamChartIndex))
	if err != nil {
		return 0, fmt.Errorf("invalid chart index: %w", internalerrors.ErrNotValid)
	}

	return index, nil
}

// renderChartRequestFromRequest maps the chart interaction query params into a
// render request. `from` and `to` are the X domain the client is showing,
// `brush-x0` and `brush-x1` the brush selection in plot area pixels and `reset`
// a double click.
func renderChartRequestFromRequest(r *http.Request) (app.RenderChartRequest, error) {
	index, err := chartIndexFromRequest(r)
	if err != nil {
		return app.RenderChartRequest{}, err
	}
	req := app.RenderChartRequest{Index: index}

	q := r.URL.Query()
	xDomain, err := floatPairFromQuery(q.Get(queryParamFrom), q.Get(queryParamTo))
	if err != nil {
		return req, fmt.Errorf("invalid %q and %q: %w", queryParamFrom, queryParamTo, err)
	}
	req.XDomain = xDomain

	brush, err := floatPairFromQuery(q.Get(queryParamBrushX0), q.Get(queryParamBrushX1))
	if err != nil {
		return req, fmt.Errorf("invalid %q and %q: %w", queryParamBrushX0, queryParamBrushX1, err)
	}
	if brush != nil {
		req.Brush = &chart.Selection{X0: brush[0], X1: brush[1]}
	}

	if reset := q.Get(queryParamReset); reset != "" {
		req.Reset, err = strconv.ParseBool(reset)
		if err != nil {
			return req, fmt.Errorf("invalid %q: %w", queryParamReset, internalerrors.ErrNotValid)
		}
	}

	return req, nil
}

// floatPairFromQuery parses two query values that need to be set together. Nil
// is returned when both are missing.
func floatPairFromQuery(v0, v1 string) (*[2]float64, error) {
	if v0 == "" && v1 == "" {
		return nil, nil
	}
	if v0 == "" || v1 == "" {
		return nil, internalerrors.ErrRequired
	}

	f0, err := strconv.ParseFloat(v0, 64)
	if err != nil || math.IsNaN(f0) || math.IsInf(f0, 0) {
		return nil, internalerrors.ErrNotValid
	}
	f1, err := strconv.ParseFloat(v1, 64)
	if err != nil || math.IsNaN(f1) || math.IsInf(f1, 0) {
		return nil, internalerrors.ErrNotValid
	}

	return &[2]float64{f0, f1}, nil
}

// httpStatusFromError maps app errors into HTTP status codes.
func httpStatusFromError(err error) int {
	switch {
	case errors.Is(err, internalerrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, internalerrors.ErrNotValid), errors.Is(err, internalerrors.ErrRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// rootErrorMessage returns the message of the innermost wrapped error, the one
// users understand (e.g: `HTTP 500`, `Invalid row format`).
func rootErrorMessage(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}
