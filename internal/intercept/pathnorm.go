package intercept

import (
	"net/url"
	"path/filepath"
)

// normalizePath resolves a filesystem-hook argument into an absolute
// path, matching spec.md §4.3's path normalizer: it accepts a string, a
// byte slice (decoded as UTF-8), or a *url.URL with a Path component, and
// rejects anything else (numeric descriptors, unknown types) as
// unresolvable.
func normalizePath(v any) (string, bool) {
	var raw string
	switch t := v.(type) {
	case string:
		raw = t
	case []byte:
		raw = string(t)
	case *url.URL:
		raw = t.Path
	default:
		return "", false
	}
	if raw == "" {
		return "", false
	}
	abs, err := filepath.Abs(raw)
	if err != nil {
		return "", false
	}
	return filepath.Clean(abs), true
}
