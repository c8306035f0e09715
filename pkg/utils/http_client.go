package utils

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// DefaultUserAgent identifies this service to RDAP servers.
const DefaultUserAgent = "whois-api/1.0 (+https://github.com/vit0-9/whois_api)"

// NewHTTPClient creates an HTTP client with good defaults for talking to
// registry RDAP servers. timeout bounds each request end to end.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12, // Enforce modern TLS
		},
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second, // Connection timeout
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
