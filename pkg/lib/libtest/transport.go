// Package libtest holds helpers for tests that stand in for upstream APIs.
package libtest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
)

// RewriteTransport sends every request to Target, keeping the original path and query.
// It records the requested paths so tests can assert which upstream calls happened.
type RewriteTransport struct {
	Target *url.URL
	Base   http.RoundTripper

	mu    sync.Mutex
	paths []string
}

func (t *RewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.Lock()
	t.paths = append(t.paths, req.URL.Path)
	t.mu.Unlock()

	out := req.Clone(req.Context())
	out.URL.Scheme = t.Target.Scheme
	out.URL.Host = t.Target.Host
	out.Host = t.Target.Host

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(out)
}

// Paths returns the request paths seen so far, in request order.
func (t *RewriteTransport) Paths() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.paths...)
}

// NewClient returns an http.Client that routes all traffic to srv, and its transport.
func NewClient(srv *httptest.Server) (*http.Client, *RewriteTransport) {
	target, err := url.Parse(srv.URL)
	if err != nil {
		panic(err)
	}
	transport := &RewriteTransport{Target: target, Base: srv.Client().Transport}
	return &http.Client{Transport: transport}, transport
}
