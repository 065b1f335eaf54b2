package ui

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/slok/tsplot/internal/http/ui/htmx"
)

const queryParamComponent = "component"

func staticURL(path string) string { return ServePrefix + staticPath + path }
func dataURL() string              { return ServePrefix + "/data.json" }
func chartsURL() string            { return ServePrefix + appPath + "/charts" }
func chartURL(index int) string    { return chartsURL() + "/" + strconv.Itoa(index) }
func chartPlotURL(index int) string {
	return chartURL(index) + "/plot"
}

// componentFromRequest returns the requested page component, empty for full pages.
func componentFromRequest(r *http.Request) string {
	return r.URL.Query().Get(queryParamComponent)
}

func urlWithComponent(u string, component string) string {
	return urlWithQuery(u, url.Values{queryParamComponent: {component}})
}

func urlWithQuery(u string, values url.Values) string {
	pu, err := url.Parse(u)
	if err != nil {
		return u
	}

	q := pu.Query()
	for k, vs := range values {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	pu.RawQuery = q.Encode()

	return pu.String()
}

// redirect redirects htmx requests with htmx headers so the browser changes
// the page instead of swapping the redirected content.
func redirect(w http.ResponseWriter, r *http.Request, url string) {
	if htmx.NewRequest(r.Header).IsHTMXRequest() {
		htmx.NewResponse().WithRedirect(url).SetHeaders(w)
		return
	}

	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}
