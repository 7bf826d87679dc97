package http

import (
	"net"
	"net/http"
	"time"
)

// DefaultUserAgent is sent to market-data providers, some of which reject Go's default agent.
const DefaultUserAgent = "Mozilla/5.0 (compatible; price-updater/1.0)"

// NewHTTPClient creates an HTTP client for market-data provider calls.
//
// Settings:
//   - Proxy: honours HTTP_PROXY and friends
//   - Dialer.Timeout: shorter TCP connect timeout than the default
//   - TLSHandshakeTimeout: maximum HTTPS handshake duration
//   - Client.Timeout: whole-request timeout supplied by the caller
//   - User-Agent: set on every request that does not carry one
//
// http.DefaultClient has no timeout, so provider adapters must not use it.
func NewHTTPClient(timeout time.Duration, userAgent string) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &userAgentTransport{next: t, userAgent: userAgent},
	}
}

type userAgentTransport struct {
	next      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return t.next.RoundTrip(r)
}
