package cache

import (
	"fmt"
	"strings"
)

// Key builds a cache key from a resource name and its ordered parameters,
// e.g. Key("decisions", 0, 10) -> "decisions/0/10". The "/" separator is
// what makes prefix invalidation line up with resource hierarchies.
func Key(resource string, params ...any) string {
	if len(params) == 0 {
		return resource
	}
	parts := make([]string, 1, 1+len(params))
	parts[0] = resource
	for _, p := range params {
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, "/")
}

// matchesAny reports whether key is one of the prefixes or sits below one of
// them in the key hierarchy. "decisions" matches "decisions" and
// "decisions/0/10" but not "decisions-archive".
func matchesAny(key string, prefixes []string) bool {
	for _, p := range prefixes {
		if key == p || strings.HasPrefix(key, p+"/") {
			return true
		}
	}
	return false
}
