package http_client

import (
	"net"
	"net/http"
	"time"
)

// CreateHTTPClient builds the shared client for upstream calls. The overall
// timeout bounds every attempt: a hung upstream must surface as a transport
// failure so the caller can degrade instead of blocking the request.
func CreateHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 2500 * time.Millisecond
	}
	tr := &http.Transport{
		MaxIdleConns:          20,
		MaxConnsPerHost:       20,
		IdleConnTimeout:       30 * time.Second,
		ForceAttemptHTTP2:     true,
		ExpectContinueTimeout: 1 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: tr,
	}
}
