package hmacsig

import (
	"net/http"
	"sort"
	"strings"
)

// lowercaseHeaders returns a fresh mapping of lowercased header name to the
// first value stored under that name. When the source map carries two keys
// that differ only by case (possible when a header map is populated by
// direct assignment rather than Set), the winner follows Go's map iteration
// order and is therefore unspecified.
func lowercaseHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))

	for name, values := range h {
		if len(values) == 0 {
			continue
		}

		out[strings.ToLower(name)] = values[0]
	}

	return out
}

// headersByPrefix returns the original-case names of all headers containing
// prefix as a case-sensitive substring, sorted for deterministic iteration.
// An empty prefix selects no headers: without this rule an unset prefix
// would silently cover every header in the signature.
func headersByPrefix(h http.Header, prefix string) []string {
	if prefix == "" {
		return nil
	}

	var names []string

	for name := range h {
		if strings.Contains(name, prefix) {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}
