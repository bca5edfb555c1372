// Package httpclient builds the HTTP client used for meta-server requests.
package httpclient

import (
	"crypto/tls"
	nethttp "net/http"
	"os"
	"time"

	"golang.org/x/net/http2"
)

// New creates the HTTP client used for meta-server document fetches. Proxy
// settings come from the environment (HTTP_PROXY, HTTPS_PROXY, NO_PROXY).
//
// HTTP/2 is attempted by default; set DISABLE_HTTP2=true to force HTTP/1.1
// for debugging or compatibility issues.
func New() *nethttp.Client {
	tr := &nethttp.Transport{
		Proxy:                 nethttp.ProxyFromEnvironment,
		MaxIdleConns:          32,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	_ = http2.ConfigureTransport(tr)

	if os.Getenv("DISABLE_HTTP2") == "true" {
		tr.ForceAttemptHTTP2 = false
		tr.TLSNextProto = make(map[string]func(string, *tls.Conn) nethttp.RoundTripper)
	}

	return &nethttp.Client{
		Transport: tr,
		Timeout:   30 * time.Second,
	}
}
