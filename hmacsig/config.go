package hmacsig

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"io"
	"os"
)

// Defaults applied by Config when fields are left at their zero value.
const (
	// DefaultServiceLabel prefixes the Authorization header value.
	DefaultServiceLabel = "AuthHmac"

	// DefaultHash is the keyed-hash algorithm used when Config.Hash is
	// empty.
	DefaultHash = "sha1"
)

// Config holds the shared signing and verification settings. The zero
// value is usable; empty fields fall back to the documented defaults.
// Configs are passed by value and never mutated by this package, so a
// single Config is safe to share across any number of concurrent calls.
type Config struct {
	// HeaderPrefix selects extra headers to cover in the signature: every
	// header whose name contains HeaderPrefix as a case-sensitive
	// substring is included in the canonical string. An empty prefix
	// selects no extra headers.
	HeaderPrefix string

	// ServiceLabel is the scheme token prefixed to the Authorization
	// value. Defaults to "AuthHmac".
	ServiceLabel string

	// Hash names the digest algorithm for the HMAC: one of "md5", "sha1",
	// "sha256", "sha384" or "sha512". Defaults to "sha1".
	Hash string

	// Debug enables diagnostic output on DebugOutput. The access key id
	// and canonical string are written; the secret never is.
	Debug bool

	// DebugOutput receives diagnostic output when Debug is set.
	// Defaults to os.Stderr.
	DebugOutput io.Writer
}

// withDefaults returns a copy of c with empty fields replaced by their
// defaults.
func (c Config) withDefaults() Config {
	if c.ServiceLabel == "" {
		c.ServiceLabel = DefaultServiceLabel
	}

	if c.Hash == "" {
		c.Hash = DefaultHash
	}

	if c.DebugOutput == nil {
		c.DebugOutput = os.Stderr
	}

	return c
}

// debugf writes a diagnostic line when Debug is enabled.
func (c Config) debugf(format string, args ...any) {
	if !c.Debug {
		return
	}

	fmt.Fprintf(c.DebugOutput, "hmacsig: "+format+"\n", args...)
}

// hashFuncs maps supported Config.Hash names to their constructors.
var hashFuncs = map[string]func() hash.Hash{
	"md5":    md5.New,
	"sha1":   sha1.New,
	"sha256": sha256.New,
	"sha384": sha512.New384,
	"sha512": sha512.New,
}

// newHash returns the hash constructor for the given algorithm name.
func newHash(name string) (func() hash.Hash, error) {
	fn, ok := hashFuncs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownHash, name)
	}

	return fn, nil
}
