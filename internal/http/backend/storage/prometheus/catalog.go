package prometheus

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	prommodel "github.com/prometheus/common/model"
	promqlparser "github.com/prometheus/prometheus/promql/parser"
	"gopkg.in/yaml.v2"

	"github.com/slok/tsplot/internal/chart"
)

// CatalogVersion is the supported catalog format version.
const CatalogVersion = "tsplot/v1"

const (
	// maxChartPoints is used to get the step of charts that don't set one.
	maxChartPoints = 240
	minStep        = time.Second
)

// Catalog is the list of charts backed by Prometheus queries.
//
// Example:
//
//	version: tsplot/v1
//	charts:
//	  - title: "Requests per second"
//	    queries: ["sum(rate(http_requests_total[5m]))"]
//	    range: 1h
//	  - title: "Latency p50/p90/p99"
//	    range: 3h
//	    step: 1m
//	    queries:
//	      - histogram_quantile(0.5, sum(rate(http_request_duration_seconds_bucket[5m])) by (le))
//	      - histogram_quantile(0.9, sum(rate(http_request_duration_seconds_bucket[5m])) by (le))
//	      - histogram_quantile(0.99, sum(rate(http_request_duration_seconds_bucket[5m])) by (le))
type Catalog struct {
	Version string       `yaml:"version" validate:"required,eq=tsplot/v1"`
	Charts  []ChartQuery `yaml:"charts" validate:"required,dive"`
}

// ChartQuery is a chart whose data is the result of range queries. One query
// makes a single series chart, three queries make a multi series chart (one
// query per channel).
type ChartQuery struct {
	Title   string             `yaml:"title" validate:"required"`
	Queries []string           `yaml:"queries" validate:"series_count,dive,required,prom_expr"`
	Range   prommodel.Duration `yaml:"range" validate:"required"`
	Step    prommodel.Duration `yaml:"step"`
}

// StepDuration returns the query resolution, when missing it's calculated from the range.
func (c ChartQuery) StepDuration() time.Duration {
	if c.Step > 0 {
		return time.Duration(c.Step)
	}

	step := (time.Duration(c.Range) / maxChartPoints).Truncate(minStep)
	if step < minStep {
		step = minStep
	}

	return step
}

// LoadCatalog loads and validates a YAML catalog.
func LoadCatalog(data []byte) (*Catalog, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	c := Catalog{}
	err := yaml.UnmarshalStrict(data, &c)
	if err != nil {
		return nil, fmt.Errorf("could not unmarshal YAML catalog: %w", err)
	}

	err = c.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	return &c, nil
}

// Validate validates the catalog.
func (c Catalog) Validate() error {
	return catalogValidate.Struct(c)
}

var catalogValidate = func() *validator.Validate {
	v := validator.New()
	mustRegisterValidation(v, "prom_expr", validatePromExpression)
	mustRegisterValidation(v, "series_count", validateSeriesCount)
	v.RegisterStructValidation(validateCatalog, Catalog{})
	v.RegisterStructValidation(validateChartQuery, ChartQuery{})
	return v
}()

// mustRegisterValidation is a helper so we panic on start if we can't register a validator.
func mustRegisterValidation(v *validator.Validate, tag string, fn validator.Func) {
	err := v.RegisterValidation(tag, fn)
	if err != nil {
		panic(err)
	}
}

// validatePromExpression implements validator.Func by validating a PromQL expression.
func validatePromExpression(fl validator.FieldLevel) bool {
	expr, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := promqlparser.ParseExpr(expr)
	return err == nil
}

// validateSeriesCount implements validator.Func by checking the number of queries
// is a supported chart type.
func validateSeriesCount(fl validator.FieldLevel) bool {
	queries, ok := fl.Field().Interface().([]string)
	if !ok {
		return false
	}

	return len(queries) == 1 || len(queries) == chart.ChannelCount
}

// validateChartQuery validates the step is not bigger than the range.
func validateChartQuery(sl validator.StructLevel) {
	c, ok := sl.Current().Interface().(ChartQuery)
	if !ok {
		sl.ReportError(c, "", "ChartQuery", "not_chart_query", "")
		return
	}

	if c.Step > c.Range {
		sl.ReportError(c.Step, "Step", "Step", "step_lte_range", "")
	}
}

// validateCatalog validates chart titles are not repeated.
func validateCatalog(sl validator.StructLevel) {
	c, ok := sl.Current().Interface().(Catalog)
	if !ok {
		sl.ReportError(c, "", "Catalog", "not_catalog", "")
		return
	}

	titles := map[string]struct{}{}
	for _, ch := range c.Charts {
		if _, ok := titles[ch.Title]; ok {
			sl.ReportError(ch.Title, ch.Title, "Title", "title_repeated", "")
		}
		titles[ch.Title] = struct{}{}
	}
}
