package hmacsig

import (
	"crypto/hmac"
	"encoding/base64"
	"net/http"
)

// Credentials pairs a public access key id with its shared secret. The
// core never stores credentials; they are supplied per call by the caller
// or by a credential resolver.
type Credentials struct {
	AccessKeyID     string
	AccessKeySecret string
}

// validate reports the first missing field. Missing credential fields are
// a configuration error, not a retryable condition.
func (c Credentials) validate() error {
	if c.AccessKeyID == "" {
		return ErrMissingAccessKeyID
	}

	if c.AccessKeySecret == "" {
		return ErrMissingAccessKeySecret
	}

	return nil
}

// SignConfig configures request signing.
type SignConfig struct {
	// Config holds the shared signing settings.
	Config Config

	// CanonicalStringFunc overrides canonical string construction, letting
	// a caller extend the signed material (for example to cover the
	// request path). When nil, CanonicalString is used with
	// Config.HeaderPrefix. The verifying side must use the same override.
	CanonicalStringFunc func(r *http.Request) string
}

// Sign computes the base64-encoded HMAC digest of canonical using the
// credentials' secret as key and the named hash algorithm. It is
// deterministic for identical inputs.
func Sign(creds Credentials, canonical, hashName string) (string, error) {
	if creds.AccessKeySecret == "" {
		return "", ErrMissingAccessKeySecret
	}

	fn, err := newHash(hashName)
	if err != nil {
		return "", err
	}

	mac := hmac.New(fn, []byte(creds.AccessKeySecret))
	mac.Write([]byte(canonical))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// SignRequest signs an HTTP request in place, setting (or overwriting) its
// Authorization header to "<ServiceLabel> <AccessKeyID>:<signature>".
//
// It returns ErrMissingAccessKeyID or ErrMissingAccessKeySecret before any
// signing work when a credential field is empty, and ErrUnknownHash when
// Config.Hash is not a supported algorithm name.
func SignRequest(r *http.Request, creds Credentials, cfg SignConfig) error {
	if err := creds.validate(); err != nil {
		return err
	}

	conf := cfg.Config.withDefaults()

	canonical := canonicalFor(r, cfg.CanonicalStringFunc, conf.HeaderPrefix)

	sig, err := Sign(creds, canonical, conf.Hash)
	if err != nil {
		return err
	}

	conf.debugf("signing for key id %s over canonical string %q", creds.AccessKeyID, canonical)

	r.Header.Set("Authorization", conf.ServiceLabel+" "+creds.AccessKeyID+":"+sig)

	return nil
}
