package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/kingpin/v2"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/slok/tsplot/internal/chart"
	"github.com/slok/tsplot/internal/log"
)

type validateCommand struct {
	input string
	http  httpClientConfig
}

// NewValidateCommand returns the validate command.
func NewValidateCommand(app *kingpin.Application) Command {
	c := &validateCommand{}
	cmd := app.Command("validate", "Validates a JSON charts document and shows a summary of its charts.")
	cmd.Flag("input", "The charts document path or URL.").Short('i').Required().StringVar(&c.input)
	cmd.Flag("timeout", "The timeout when getting the charts document from a URL.").Default("30s").DurationVar(&c.http.timeout)
	cmd.Flag("tls-insecure-skip-verify", "Skip TLS certificate verification when getting the charts document from a URL.").BoolVar(&c.http.tls.insecureSkipVerify)

	return c
}

func (v validateCommand) Name() string { return "validate" }
func (v validateCommand) Run(ctx context.Context, config RootConfig) error {
	logger := config.Logger.WithValues(log.Kv{"input": v.input})

	httpClient, err := newHTTPClient(v.http, logger)
	if err != nil {
		return fmt.Errorf("could not create http client: %w", err)
	}

	repo, err := newDocumentChartGetter(v.input, httpClient, logger)
	if err != nil {
		return err
	}

	entries, err := repo.ListChartEntries(ctx)
	if err != nil {
		return fmt.Errorf("invalid charts document: %w", err)
	}

	writeChartsSummary(config.Stdout, entries)
	logger.Infof("Validated %d charts", len(entries))

	return nil
}

// writeChartsSummary writes a table with one row per chart entry.
func writeChartsSummary(w io.Writer, entries []chart.Entry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Title", "Kind", "Points", "X extent", "Y extent"})

	points := 0
	for i, e := range entries {
		points += len(e.Data)
		t.AppendRow(table.Row{
			i,
			e.Title,
			e.Kind(),
			len(e.Data),
			formatExtent(chart.TimestampExtent(e)),
			formatExtent(chart.ValueExtent(e)),
		})
	}
	t.AppendFooter(table.Row{"", "Total", len(entries), points, "", ""})

	t.Render()
}

func formatExtent(min, max float64, ok bool) string {
	if !ok {
		return "-"
	}

	return "[" + strconv.FormatFloat(min, 'g', -1, 64) + ", " + strconv.FormatFloat(max, 'g', -1, 64) + "]"
}
