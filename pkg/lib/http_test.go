package lib

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWithUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	base := srv.Client()
	client := WithUserAgent(base)

	if client == base {
		t.Fatal("expected a copy of the client")
	}

	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = resp.Body.Close()

	if gotUA != FuseUserAgentString {
		t.Errorf("User-Agent = %q, want %q", gotUA, FuseUserAgentString)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	req.Header.Set("User-Agent", "custom")
	resp, err = client.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = resp.Body.Close()

	if gotUA != "custom" {
		t.Errorf("User-Agent = %q, want caller's value kept", gotUA)
	}
}

func TestWithUserAgent_NilClient(t *testing.T) {
	client := WithUserAgent(nil)
	if client.Timeout != DefaultHTTPClient.Timeout {
		t.Errorf("Timeout = %v, want %v", client.Timeout, DefaultHTTPClient.Timeout)
	}
	if _, ok := client.Transport.(*userAgentTransport); !ok {
		t.Errorf("Transport = %T, want *userAgentTransport", client.Transport)
	}
}
