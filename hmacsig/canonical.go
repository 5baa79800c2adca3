package hmacsig

import (
	"net/http"
	"sort"
	"strings"
)

// CanonicalString builds the deterministic string covered by the request
// signature. It joins, with "\n" and no trailing newline:
//
//	<method>
//	<content-md5 value or empty>
//	<content-type value or empty>
//	<date value or empty>
//	<prefixed headers, each "lowercased-name:value", sorted>
//
// Headers whose name contains headerPrefix (case-sensitive substring) form
// the extension lines; their rendered strings are sorted bytewise, so two
// requests that differ only in header insertion order canonicalize
// identically. The request path is not covered; see the package
// documentation for the trade-off and the CanonicalStringFunc escape hatch.
//
// CanonicalString is a pure function of the request's current method and
// headers and never mutates the request.
func CanonicalString(r *http.Request, headerPrefix string) string {
	lower := lowercaseHeaders(r.Header)

	lines := []string{
		r.Method,
		lower["content-md5"],
		lower["content-type"],
		lower["date"],
	}

	var extra []string

	for _, name := range headersByPrefix(r.Header, headerPrefix) {
		values := r.Header[name]
		if len(values) == 0 {
			continue
		}

		extra = append(extra, strings.ToLower(name)+":"+values[0])
	}

	sort.Strings(extra)

	return strings.Join(append(lines, extra...), "\n")
}

// canonicalFor applies the optional override used by SignConfig and
// VerifyConfig. Both sides must agree on the override for signatures to
// verify.
func canonicalFor(r *http.Request, override func(*http.Request) string, headerPrefix string) string {
	if override != nil {
		return override(r)
	}

	return CanonicalString(r, headerPrefix)
}
