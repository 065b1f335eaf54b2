package ui_test

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tsplot/internal/http/ui"
	"github.com/slok/tsplot/internal/http/ui/uimock"
)

var trimSpaceMultilineRegexp = regexp.MustCompile(`(?m)(^\s+|\s+$)`)

func assertContainsHTTPResponseBody(t *testing.T, exp []string, resp *httptest.ResponseRecorder) {
	// Sanitize got HTML so we make easier to check content.
	got := resp.Body.String()
	got = trimSpaceMultilineRegexp.ReplaceAllString(got, "")
	got = strings.ReplaceAll(got, "\n", " ")

	// Check each expected snippet.
	for _, e := range exp {
		assert.Contains(t, got, e)
	}
}

type mocks struct {
	ChartApp *uimock.ChartApp
}

func newMocks(t *testing.T) mocks {
	return mocks{
		ChartApp: uimock.NewChartApp(t),
	}
}

func newTestUIHandler(t *testing.T, m mocks) http.Handler {
	h, err := ui.NewUI(ui.UIConfig{
		ChartApp: m.ChartApp,
	})
	require.NoError(t, err)

	return h
}

var (
	textHeaders = http.Header{
		"Content-Type":           {"text/plain; charset=utf-8"},
		"X-Content-Type-Options": {"nosniff"},
	}
	htmlHeaders = http.Header{
		"Content-Type": {"text/html; charset=utf-8"},
	}
	jsonHeaders = http.Header{
		"Content-Type":  {"application/json"},
		"Cache-Control": {"no-store"},
	}
)
