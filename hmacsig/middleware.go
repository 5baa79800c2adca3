package hmacsig

import (
	"net/http"

	"github.com/google/uuid"
)

// requestIDHeader carries a correlation id on denied responses so
// operators can match a 401 to server logs without the response revealing
// why authentication failed.
const requestIDHeader = "X-Request-ID"

// MiddlewareConfig configures the server-side verification middleware.
type MiddlewareConfig struct {
	// Verify configures how signatures are checked. Verify.Resolver is
	// required unless AsyncResolver is set.
	Verify VerifyConfig

	// AsyncResolver, when set, is used instead of Verify.Resolver and the
	// handler blocks until the resolver completes.
	AsyncResolver AsyncCredentialResolver

	// OnDeny handles rejected requests. When nil, the response gets a
	// WWW-Authenticate header naming the service label, an X-Request-ID
	// correlation id, and a 401 Unauthorized status with no body.
	OnDeny func(w http.ResponseWriter, r *http.Request, res Result)
}

// Middleware returns an http.Handler wrapper that verifies the HMAC
// signature on every incoming request, passing valid requests through
// unchanged and handing everything else to OnDeny.
//
// Setup fails fast: it returns ErrNoResolver when no resolver is
// configured and ErrUnknownHash when Verify.Config.Hash is unsupported,
// rather than deferring the failure to the first request.
func Middleware(cfg MiddlewareConfig) (func(http.Handler) http.Handler, error) {
	if cfg.Verify.Resolver == nil && cfg.AsyncResolver == nil {
		return nil, ErrNoResolver
	}

	conf := cfg.Verify.Config.withDefaults()

	if _, err := newHash(conf.Hash); err != nil {
		return nil, err
	}

	onDeny := cfg.OnDeny
	if onDeny == nil {
		onDeny = defaultOnDeny(conf.ServiceLabel)
	}

	verify := func(r *http.Request) Result {
		if cfg.AsyncResolver != nil {
			results := make(chan Result, 1)

			err := VerifyRequestAsync(r, AsyncVerifyConfig{
				Config:              cfg.Verify.Config,
				Resolver:            cfg.AsyncResolver,
				CanonicalStringFunc: cfg.Verify.CanonicalStringFunc,
			}, func(res Result) {
				results <- res
			})
			if err != nil {
				return Result{}
			}

			return <-results
		}

		res, err := VerifyRequest(r, cfg.Verify)
		if err != nil {
			return Result{}
		}

		return res
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := verify(r)
			if !res.Authenticated {
				onDeny(w, r, res)
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

// defaultOnDeny writes a 401 Unauthorized response with a correlation
// request id and no body.
func defaultOnDeny(serviceLabel string) func(w http.ResponseWriter, r *http.Request, res Result) {
	return func(w http.ResponseWriter, _ *http.Request, _ Result) {
		if w.Header().Get(requestIDHeader) == "" {
			w.Header().Set(requestIDHeader, uuid.NewString())
		}

		w.Header().Set("WWW-Authenticate", serviceLabel)
		w.WriteHeader(http.StatusUnauthorized)
	}
}
