package hmacsig

import (
	"net/http"
	"time"
)

// Transport is an http.RoundTripper that signs every outgoing request with
// a fixed set of credentials.
//
// Use NewTransport to create a Transport with a configured *http.Transport
// for proxy, TLS, and timeout settings.
type Transport struct {
	base   http.RoundTripper
	creds  Credentials
	config SignConfig
}

// NewTransport creates a signing Transport that delegates to base after
// signing each request. When base is nil, a clone of http.DefaultTransport
// is used, giving an independent connection pool with default proxy, TLS,
// and timeout settings.
func NewTransport(base *http.Transport, creds Credentials, cfg SignConfig) *Transport {
	var rt http.RoundTripper
	if base != nil {
		rt = base
	} else {
		rt = http.DefaultTransport.(*http.Transport).Clone()
	}

	return &Transport{
		base:   rt,
		creds:  creds,
		config: cfg,
	}
}

// RoundTrip signs the request and then delegates to the base transport.
// The original request is cloned before signing to avoid mutation. A Date
// header is set on the clone when absent so the signature always covers a
// timestamp.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	if clone.Header.Get("Date") == "" {
		clone.Header.Set("Date", time.Now().UTC().Format(http.TimeFormat))
	}

	if err := SignRequest(clone, t.creds, t.config); err != nil {
		return nil, err
	}

	return t.base.RoundTrip(clone)
}
