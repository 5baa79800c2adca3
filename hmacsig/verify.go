package hmacsig

import (
	"crypto/hmac"
	"net/http"
	"strings"
)

// CredentialResolver maps an access key id to its credentials. The second
// return value reports whether the key id is known; an unknown id must be
// (Credentials{}, false), never an ambiguous partial value.
type CredentialResolver func(accessKeyID string) (Credentials, bool)

// Result is the outcome of a verification.
type Result struct {
	// Authenticated reports whether the request carried a valid signature.
	Authenticated bool

	// AccessKeyID is the key id parsed from the Authorization header, when
	// the header parsed at all. It identifies the caller for logging and
	// is set regardless of whether authentication succeeded.
	AccessKeyID string
}

// VerifyConfig configures synchronous request verification.
type VerifyConfig struct {
	// Config holds the shared verification settings. ServiceLabel must
	// match the label the signer used; Hash and HeaderPrefix must match
	// the signing side.
	Config Config

	// Resolver looks up credentials by access key id. Required.
	Resolver CredentialResolver

	// CanonicalStringFunc mirrors SignConfig.CanonicalStringFunc.
	CanonicalStringFunc func(r *http.Request) string
}

// VerifyRequest checks the Authorization header of r against the signature
// recomputed from the request's current state and the credentials resolved
// for the header's access key id. The request is only read, never mutated.
//
// The error is non-nil only for configuration problems: a nil resolver or
// an unknown hash name. Every authentication failure — missing or
// malformed header, wrong service label, unknown access key id, signature
// mismatch — yields the same Result{Authenticated: false} so the caller
// cannot leak which stage failed.
//
// The signature comparison is constant-time: signatures of unequal length
// are an unconditional mismatch, and equal-length comparison does not
// short-circuit on the first differing byte.
func VerifyRequest(r *http.Request, cfg VerifyConfig) (Result, error) {
	if cfg.Resolver == nil {
		return Result{}, ErrNoResolver
	}

	conf := cfg.Config.withDefaults()

	if _, err := newHash(conf.Hash); err != nil {
		return Result{}, err
	}

	keyID, supplied, ok := parseAuthorization(r.Header.Get("Authorization"), conf.ServiceLabel)
	if !ok {
		conf.debugf("authorization header missing or malformed")

		return Result{}, nil
	}

	res := Result{AccessKeyID: keyID}

	creds, found := cfg.Resolver(keyID)
	if !found {
		conf.debugf("no credentials for key id %s", keyID)

		return res, nil
	}

	canonical := canonicalFor(r, cfg.CanonicalStringFunc, conf.HeaderPrefix)

	expected, err := Sign(creds, canonical, conf.Hash)
	if err != nil {
		// Resolved credentials without a secret are treated like an
		// unknown key id, not surfaced as an error.
		conf.debugf("resolved credentials for key id %s are unusable", keyID)

		return res, nil
	}

	conf.debugf("verifying key id %s over canonical string %q", keyID, canonical)

	res.Authenticated = hmac.Equal([]byte(supplied), []byte(expected))

	return res, nil
}

// parseAuthorization splits an Authorization value of the form
// "<label> <accessKeyID>:<signature>". Exactly one space and exactly one
// colon are required; any other shape, or a label other than the
// configured one, reports ok == false.
func parseAuthorization(value, label string) (keyID, signature string, ok bool) {
	parts := strings.Split(value, " ")
	if len(parts) != 2 || parts[0] != label {
		return "", "", false
	}

	credParts := strings.Split(parts[1], ":")
	if len(credParts) != 2 {
		return "", "", false
	}

	return credParts[0], credParts[1], true
}
