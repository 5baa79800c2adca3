package hmacsig

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticResolver resolves a single fixed credential pair.
func staticResolver(creds Credentials) CredentialResolver {
	return func(accessKeyID string) (Credentials, bool) {
		if accessKeyID == creds.AccessKeyID {
			return creds, true
		}

		return Credentials{}, false
	}
}

func signedRequest(t *testing.T, cfg SignConfig) *http.Request {
	t.Helper()

	req := httptest.NewRequest("GET", "https://example.com/api", nil)
	req.Header.Set("Date", "Tue, 01 Jan 2013 00:00:00 GMT")
	req.Header.Set("X-App-Env", "prod")

	require.NoError(t, SignRequest(req, testCreds, cfg))

	return req
}

func TestVerifyRequest(t *testing.T) {
	resolver := staticResolver(testCreds)

	t.Run("nil resolver is a configuration error", func(t *testing.T) {
		req := httptest.NewRequest("GET", "https://example.com/", nil)

		_, err := VerifyRequest(req, VerifyConfig{})
		assert.ErrorIs(t, err, ErrNoResolver)
	})

	t.Run("unknown hash is a configuration error", func(t *testing.T) {
		req := httptest.NewRequest("GET", "https://example.com/", nil)

		_, err := VerifyRequest(req, VerifyConfig{
			Config:   Config{Hash: "crc32"},
			Resolver: resolver,
		})
		assert.ErrorIs(t, err, ErrUnknownHash)
	})

	t.Run("sign and verify round trip", func(t *testing.T) {
		cfg := Config{HeaderPrefix: "X-App-"}
		req := signedRequest(t, SignConfig{Config: cfg})

		res, err := VerifyRequest(req, VerifyConfig{Config: cfg, Resolver: resolver})
		require.NoError(t, err)

		assert.True(t, res.Authenticated)
		assert.Equal(t, "AKID", res.AccessKeyID)
	})

	t.Run("round trip with sha256", func(t *testing.T) {
		cfg := Config{Hash: "sha256"}
		req := signedRequest(t, SignConfig{Config: cfg})

		res, err := VerifyRequest(req, VerifyConfig{Config: cfg, Resolver: resolver})
		require.NoError(t, err)
		assert.True(t, res.Authenticated)
	})

	t.Run("tampered covered material fails", func(t *testing.T) {
		cfg := Config{HeaderPrefix: "X-App-"}

		tamper := map[string]func(r *http.Request){
			"method":                  func(r *http.Request) { r.Method = "DELETE" },
			"date":                    func(r *http.Request) { r.Header.Set("Date", "Wed, 02 Jan 2013 00:00:00 GMT") },
			"content-type":            func(r *http.Request) { r.Header.Set("Content-Type", "text/html") },
			"content-md5":             func(r *http.Request) { r.Header.Set("Content-MD5", "bogus") },
			"prefixed header value":   func(r *http.Request) { r.Header.Set("X-App-Env", "dev") },
			"added prefixed header":   func(r *http.Request) { r.Header.Set("X-App-Extra", "new") },
			"removed prefixed header": func(r *http.Request) { r.Header.Del("X-App-Env") },
		}

		for name, mutate := range tamper {
			t.Run(name, func(t *testing.T) {
				req := signedRequest(t, SignConfig{Config: cfg})
				mutate(req)

				res, err := VerifyRequest(req, VerifyConfig{Config: cfg, Resolver: resolver})
				require.NoError(t, err)
				assert.False(t, res.Authenticated)
			})
		}
	})

	t.Run("uncovered headers may change freely", func(t *testing.T) {
		cfg := Config{HeaderPrefix: "X-App-"}
		req := signedRequest(t, SignConfig{Config: cfg})

		req.Header.Set("User-Agent", "changed")
		req.Header.Set("X-Other", "added")
		req.Header.Del("Accept")

		res, err := VerifyRequest(req, VerifyConfig{Config: cfg, Resolver: resolver})
		require.NoError(t, err)
		assert.True(t, res.Authenticated)
	})

	t.Run("malformed authorization values deny cleanly", func(t *testing.T) {
		malformed := []string{
			"",
			"AuthHmac",
			"AuthHmac AKID:sig extra",
			"AuthHmac AKID",
			"AuthHmac AKID:sig:tail",
			"AuthHmac  AKID:sig",
			"Bearer AKID:sig",
		}

		for _, value := range malformed {
			req := httptest.NewRequest("GET", "https://example.com/", nil)
			if value != "" {
				req.Header.Set("Authorization", value)
			}

			res, err := VerifyRequest(req, VerifyConfig{Resolver: resolver})
			require.NoError(t, err, "value %q", value)
			assert.False(t, res.Authenticated, "value %q", value)
		}
	})

	t.Run("unknown access key id denies", func(t *testing.T) {
		req := signedRequest(t, SignConfig{})

		res, err := VerifyRequest(req, VerifyConfig{
			Resolver: func(string) (Credentials, bool) { return Credentials{}, false },
		})
		require.NoError(t, err)

		assert.False(t, res.Authenticated)
		assert.Equal(t, "AKID", res.AccessKeyID)
	})

	t.Run("resolved credentials without a secret deny", func(t *testing.T) {
		req := signedRequest(t, SignConfig{})

		res, err := VerifyRequest(req, VerifyConfig{
			Resolver: func(id string) (Credentials, bool) {
				return Credentials{AccessKeyID: id}, true
			},
		})
		require.NoError(t, err)
		assert.False(t, res.Authenticated)
	})

	t.Run("wrong secret denies", func(t *testing.T) {
		req := signedRequest(t, SignConfig{})

		res, err := VerifyRequest(req, VerifyConfig{
			Resolver: staticResolver(Credentials{AccessKeyID: "AKID", AccessKeySecret: "other"}),
		})
		require.NoError(t, err)
		assert.False(t, res.Authenticated)
	})

	t.Run("equal-length wrong signature denies", func(t *testing.T) {
		req := signedRequest(t, SignConfig{})

		value := req.Header.Get("Authorization")
		require.NotEmpty(t, value)

		// Flip the first signature character, keeping the length intact.
		keyEnd := strings.Index(value, ":") + 1
		first := value[keyEnd]

		replacement := byte('A')
		if first == 'A' {
			replacement = 'B'
		}

		req.Header.Set("Authorization", value[:keyEnd]+string(replacement)+value[keyEnd+1:])

		res, err := VerifyRequest(req, VerifyConfig{Resolver: resolver})
		require.NoError(t, err)
		assert.False(t, res.Authenticated)
	})

	t.Run("wrong-length signature denies", func(t *testing.T) {
		req := httptest.NewRequest("GET", "https://example.com/", nil)
		req.Header.Set("Date", "d")
		req.Header.Set("Authorization", "AuthHmac AKID:short")

		res, err := VerifyRequest(req, VerifyConfig{Resolver: resolver})
		require.NoError(t, err)
		assert.False(t, res.Authenticated)
	})

	t.Run("verification does not mutate the request", func(t *testing.T) {
		req := signedRequest(t, SignConfig{})
		before := req.Header.Get("Authorization")

		_, err := VerifyRequest(req, VerifyConfig{Resolver: resolver})
		require.NoError(t, err)

		assert.Equal(t, before, req.Header.Get("Authorization"))
	})
}

func TestParseAuthorization(t *testing.T) {
	keyID, sig, ok := parseAuthorization("AuthHmac AKID:c2ln", "AuthHmac")
	require.True(t, ok)
	assert.Equal(t, "AKID", keyID)
	assert.Equal(t, "c2ln", sig)

	_, _, ok = parseAuthorization("AuthHmac AKID:c2ln", "Other")
	assert.False(t, ok)
}
