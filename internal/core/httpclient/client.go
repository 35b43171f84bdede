// Package httpclient configures the HTTP client used to call the geocoding service.
package httpclient

import (
	"net"
	"net/http"
	"time"
)

// NewOutbound builds the shared outbound client. The pool is sized for a
// single upstream host. No client-level timeout: each geocode call carries
// its own context deadline.
func NewOutbound() *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          32,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{Transport: transport}
}
