// Package htmx knows how to read and write the htmx HTTP headers.
//
// https://htmx.org/reference/#headers
package htmx

import (
	"net/http"
	"strconv"
)

const (
	headerRequest  = "HX-Request"
	headerTarget   = "HX-Target"
	headerRedirect = "HX-Redirect"
	headerPushURL  = "HX-Push-Url"
)

// Request gives access to the htmx request headers.
type Request struct {
	headers http.Header
}

func NewRequest(h http.Header) Request {
	return Request{headers: h}
}

// IsHTMXRequest returns true when the request has been made by htmx.
func (r Request) IsHTMXRequest() bool {
	is, _ := strconv.ParseBool(r.headers.Get(headerRequest))
	return is
}

// TargetID is the ID of the element that will receive the response.
func (r Request) TargetID() string {
	return r.headers.Get(headerTarget)
}

// Response sets htmx response headers.
type Response struct {
	headers http.Header
}

func NewResponse() *Response {
	return &Response{headers: http.Header{}}
}

// WithRedirect makes the client do a full page redirect.
func (r *Response) WithRedirect(url string) *Response {
	r.headers.Set(headerRedirect, url)
	return r
}

// WithPushURL pushes the URL on the browser history.
func (r *Response) WithPushURL(url string) *Response {
	r.headers.Set(headerPushURL, url)
	return r
}

func (r *Response) SetHeaders(w http.ResponseWriter) {
	for k, v := range r.headers {
		w.Header()[k] = v
	}
}
