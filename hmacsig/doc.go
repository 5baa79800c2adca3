// Package hmacsig implements AWS-style HMAC request authentication using
// a shared-secret Authorization header of the form
//
//	Authorization: <ServiceLabel> <AccessKeyID>:<base64 signature>
//
// A client signs an outgoing request with its access key secret; a server
// recomputes the signature from the incoming request and the credentials
// resolved by access key id, and compares the two in constant time. The
// secret itself never travels over the wire.
//
// # Canonical string
//
// The signature covers a canonical string built from the request: the HTTP
// method, the Content-MD5, Content-Type and Date header values (empty when
// absent), followed by every header whose name contains
// Config.HeaderPrefix, each rendered as "lowercased-name:value" and sorted.
// The request path is deliberately not covered, matching the classic form
// of this scheme; use SignConfig.CanonicalStringFunc and
// VerifyConfig.CanonicalStringFunc to cover it when two endpoints must not
// share signatures.
//
// # Signing Requests
//
// Use SignRequest to set the Authorization header on a request:
//
//	creds := hmacsig.Credentials{AccessKeyID: "AKID", AccessKeySecret: secret}
//
//	err := hmacsig.SignRequest(req, creds, hmacsig.SignConfig{
//	    Config: hmacsig.Config{HeaderPrefix: "X-App-"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Verifying Requests
//
// Use VerifyRequest with a CredentialResolver that maps an access key id to
// its credentials:
//
//	resolver := func(accessKeyID string) (hmacsig.Credentials, bool) {
//	    creds, ok := keys[accessKeyID]
//	    return creds, ok
//	}
//
//	res, err := hmacsig.VerifyRequest(req, hmacsig.VerifyConfig{
//	    Resolver: resolver,
//	})
//
// The error is non-nil only for configuration problems (nil resolver,
// unknown hash name). A malformed header, an unknown access key id and a
// wrong signature all yield the same res.Authenticated == false, so a
// caller cannot be turned into an oracle for why verification failed.
//
// # Asynchronous credential resolution
//
// When credentials live behind a callback-style lookup (a cache fill, a
// remote store), VerifyRequestAsync accepts an AsyncCredentialResolver and
// delivers the outcome to a result callback that fires exactly once per
// call, on every path:
//
//	err := hmacsig.VerifyRequestAsync(req, hmacsig.AsyncVerifyConfig{
//	    Resolver: func(accessKeyID string, resolve func(hmacsig.Credentials, bool)) {
//	        go func() { resolve(store.Lookup(accessKeyID)) }()
//	    },
//	}, func(res hmacsig.Result) {
//	    // runs exactly once
//	})
//
// # Client Transport
//
// NewTransport creates an http.RoundTripper that signs every outgoing
// request. Pass an *http.Transport to configure proxy, TLS and timeout
// settings, or nil for defaults:
//
//	client := &http.Client{
//	    Transport: hmacsig.NewTransport(nil, creds, hmacsig.SignConfig{}),
//	}
//
// # Server Middleware
//
// Middleware wraps an http.Handler and denies requests that do not carry a
// valid signature. The deny action defaults to a bare 401 Unauthorized with
// a correlation request id, and is overridable via MiddlewareConfig.OnDeny:
//
//	mw, err := hmacsig.Middleware(hmacsig.MiddlewareConfig{
//	    Verify: hmacsig.VerifyConfig{Resolver: resolver},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	handler := mw(protected)
package hmacsig
