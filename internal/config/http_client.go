package config

import (
	"crypto/tls"
	"net/http"
	"time"
)

// NewHTTPClient creates the transport shared by every request the facade makes.
func NewHTTPClient(c ClientConfig) *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	if !c.GetTLSVerify() {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &http.Client{
		Timeout:   c.GetTimeout(),
		Transport: transport,
	}
}
