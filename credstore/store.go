// Package credstore provides a file-backed credential store for HMAC
// request verification. Credentials are declared in a YAML document:
//
//	credentials:
//	  - access_key_id: AKID
//	    access_key_secret: secret
//
// A loaded Store is immutable and safe for concurrent use. Its Resolve and
// ResolveAsync methods satisfy hmacsig.CredentialResolver and
// hmacsig.AsyncCredentialResolver.
package credstore

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vitalvas/authkit/hmacsig"
)

// Store errors.
var (
	// ErrNoCredentials is returned when the document declares no
	// credential entries.
	ErrNoCredentials = errors.New("credstore: no credentials declared")

	// ErrIncompleteEntry is returned when an entry is missing its access
	// key id or secret.
	ErrIncompleteEntry = errors.New("credstore: credential entry missing a field")

	// ErrDuplicateKeyID is returned when two entries share an access key id.
	ErrDuplicateKeyID = errors.New("credstore: duplicate access key id")
)

// document is the on-disk YAML shape.
type document struct {
	Credentials []entry `yaml:"credentials"`
}

type entry struct {
	AccessKeyID     string `yaml:"access_key_id"`
	AccessKeySecret string `yaml:"access_key_secret"`
}

// Store resolves credentials by access key id.
type Store struct {
	creds map[string]hmacsig.Credentials
}

// Load reads and parses a credential file.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("credstore: open %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a YAML credential document from r.
func Parse(r io.Reader) (*Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("credstore: read: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("credstore: parse: %w", err)
	}

	if len(doc.Credentials) == 0 {
		return nil, ErrNoCredentials
	}

	creds := make(map[string]hmacsig.Credentials, len(doc.Credentials))

	for _, e := range doc.Credentials {
		if e.AccessKeyID == "" || e.AccessKeySecret == "" {
			return nil, fmt.Errorf("%w: %q", ErrIncompleteEntry, e.AccessKeyID)
		}

		if _, exists := creds[e.AccessKeyID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKeyID, e.AccessKeyID)
		}

		creds[e.AccessKeyID] = hmacsig.Credentials{
			AccessKeyID:     e.AccessKeyID,
			AccessKeySecret: e.AccessKeySecret,
		}
	}

	return &Store{creds: creds}, nil
}

// Len returns the number of stored credential pairs.
func (s *Store) Len() int {
	return len(s.creds)
}

// Resolve looks up credentials by access key id. It satisfies
// hmacsig.CredentialResolver.
func (s *Store) Resolve(accessKeyID string) (hmacsig.Credentials, bool) {
	creds, ok := s.creds[accessKeyID]

	return creds, ok
}

// ResolveAsync looks up credentials and delivers them through resolve,
// calling it exactly once. It satisfies hmacsig.AsyncCredentialResolver.
func (s *Store) ResolveAsync(accessKeyID string, resolve func(hmacsig.Credentials, bool)) {
	resolve(s.Resolve(accessKeyID))
}
