package hmacsig

import (
	"crypto/hmac"
	"net/http"
	"sync"
)

// AsyncCredentialResolver looks up credentials by access key id and
// delivers them through resolve, which it must call exactly once. An
// unknown key id is delivered as (Credentials{}, false). The resolver may
// call resolve from any goroutine; calls after the first are ignored.
type AsyncCredentialResolver func(accessKeyID string, resolve func(Credentials, bool))

// AsyncVerifyConfig configures asynchronous request verification.
type AsyncVerifyConfig struct {
	// Config holds the shared verification settings.
	Config Config

	// Resolver looks up credentials via callback. Required.
	Resolver AsyncCredentialResolver

	// CanonicalStringFunc mirrors SignConfig.CanonicalStringFunc.
	CanonicalStringFunc func(r *http.Request) string
}

// VerifyRequestAsync verifies r like VerifyRequest, but resolves
// credentials through a callback-style resolver. onResult is invoked
// exactly once per call on every path — malformed header, unresolved key
// id, signature mismatch or success — even when the resolver misbehaves
// and completes more than once. There is no internal timeout; a resolver
// that never calls back leaves the result undelivered, so callers needing
// a deadline must wrap the resolver themselves.
//
// The canonical string is captured from the request before the resolver is
// handed control, so a resolver that completes late (or on another
// goroutine) still verifies against the request state at call time.
//
// The returned error is non-nil only for configuration problems, in which
// case onResult is not invoked.
func VerifyRequestAsync(r *http.Request, cfg AsyncVerifyConfig, onResult func(Result)) error {
	if cfg.Resolver == nil {
		return ErrNoResolver
	}

	if onResult == nil {
		return ErrNoResultFunc
	}

	conf := cfg.Config.withDefaults()

	if _, err := newHash(conf.Hash); err != nil {
		return err
	}

	var once sync.Once
	deliver := func(res Result) {
		once.Do(func() { onResult(res) })
	}

	keyID, supplied, ok := parseAuthorization(r.Header.Get("Authorization"), conf.ServiceLabel)
	if !ok {
		conf.debugf("authorization header missing or malformed")
		deliver(Result{})

		return nil
	}

	canonical := canonicalFor(r, cfg.CanonicalStringFunc, conf.HeaderPrefix)

	cfg.Resolver(keyID, func(creds Credentials, found bool) {
		res := Result{AccessKeyID: keyID}

		if !found {
			conf.debugf("no credentials for key id %s", keyID)
			deliver(res)

			return
		}

		expected, err := Sign(creds, canonical, conf.Hash)
		if err != nil {
			conf.debugf("resolved credentials for key id %s are unusable", keyID)
			deliver(res)

			return
		}

		res.Authenticated = hmac.Equal([]byte(supplied), []byte(expected))
		deliver(res)
	})

	return nil
}
