package hmacsig

import "errors"

// Signing errors.
var (
	// ErrMissingAccessKeyID is returned when Credentials has no access
	// key id at sign time.
	ErrMissingAccessKeyID = errors.New("hmacsig: credentials access key id must not be empty")

	// ErrMissingAccessKeySecret is returned when Credentials has no access
	// key secret at sign time.
	ErrMissingAccessKeySecret = errors.New("hmacsig: credentials access key secret must not be empty")
)

// Configuration errors.
var (
	// ErrUnknownHash is returned when Config.Hash names an algorithm the
	// package does not support.
	ErrUnknownHash = errors.New("hmacsig: unknown hash algorithm")

	// ErrNoResolver is returned when verification or middleware setup is
	// attempted without a credential resolver.
	ErrNoResolver = errors.New("hmacsig: credential resolver must not be nil")

	// ErrNoResultFunc is returned when VerifyRequestAsync is called with a
	// nil result callback.
	ErrNoResultFunc = errors.New("hmacsig: result callback must not be nil")
)
