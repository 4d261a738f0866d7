package lib

import (
	"net/http"
	"time"
)

const defaultClientTimeout = 10 * time.Second

var DefaultHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConnsPerHost: 10,
	},
	Timeout: defaultClientTimeout,
}

var BuildVersion = "dev"

var FuseUserAgentString = "Fuse/" + BuildVersion + " +https://github.com/fuseagg/fuse"

// userAgentTransport stamps every outgoing request with the Fuse user agent,
// unless the caller already set one.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", FuseUserAgentString)
	}
	return t.base.RoundTrip(req)
}

// WithUserAgent returns a shallow copy of client whose transport sets the Fuse user agent.
// A nil client is replaced with DefaultHTTPClient.
func WithUserAgent(client *http.Client) *http.Client {
	if client == nil {
		client = DefaultHTTPClient
	}

	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	out := *client
	out.Transport = &userAgentTransport{base: base}
	return &out
}
