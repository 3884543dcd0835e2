package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// refusedPathSegments guards against loading a config file reached by
// path traversal into a dependency tree, spec.md §6's "files under
// node_modules are refused" translated to this module's vendoring
// schemes.
var refusedPathSegments = []string{"node_modules", "vendor"}

// Discover searches dir (non-recursively) for the first file name in
// spec.md §6's fixed priority order. Returns ok=false if none exist.
func Discover(dir string) (string, bool) {
	for _, name := range discoveryFileNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

func isRefusedPath(path string) bool {
	slashPath := filepath.ToSlash(path)
	for _, segment := range refusedPathSegments {
		if strings.Contains(slashPath, "/"+segment+"/") || strings.HasPrefix(slashPath, segment+"/") {
			return true
		}
	}
	return false
}

// LoadFile reads and parses the config file at path, decoding it over
// Default() so that keys the file omits keep their default values.
// `.js`-suffixed
// files are handled best-effort: no script is executed (this module
// never runs host-supplied code), instead a bounded regular expression
// extracts the first `module.exports = { ... }` or `{ ... }` object
// literal and parses it as JSON-ish text. Anything that isn't valid JSON
// after extraction is reported as a parse error rather than guessed at.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if isRefusedPath(path) {
		return cfg, fmt.Errorf("config: refusing to load file under a dependency tree: %s", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if strings.HasSuffix(path, ".js") {
		extracted, ok := extractJSObjectLiteral(raw)
		if !ok {
			return cfg, fmt.Errorf("config: could not extract a JSON-like object literal from %s", path)
		}
		raw = extracted
	}
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// moduleExportsPattern matches a single `module.exports = { ... }`
// assignment that ends the file, capturing greedily from the first
// opening brace after `=` to the last closing brace before the optional
// trailing semicolon. It does not balance braces: whatever lies between
// those two braces is handed to the JSON parser, and text that is not
// valid JSON is reported as a parse failure, never partially guessed at.
var moduleExportsPattern = regexp.MustCompile(`(?s)module\.exports\s*=\s*(\{.*\})\s*;?\s*$`)

// extractJSObjectLiteral applies the bounded, non-executing `.js` config
// extraction spec.md §6 calls for: find the object literal text and hand
// it to the JSON parser as-is. Bare JS object syntax (unquoted keys,
// trailing commas, single quotes) will fail JSON parsing and surface as
// a normal config-load error rather than being interpreted further.
func extractJSObjectLiteral(src []byte) ([]byte, bool) {
	if m := moduleExportsPattern.FindSubmatch(src); m != nil {
		return m[1], true
	}
	trimmed := strings.TrimSpace(string(src))
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return []byte(trimmed), true
	}
	return nil, false
}

// Load runs full discovery in dir, validates whatever it finds, and
// falls back to Default() on any validation failure (spec.md §7's
// "Structured" error category: the caller gets both the usable config
// and the error list). Absence of any discoverable file is not an error;
// it yields the default configuration silently.
func Load(dir string) (Config, []error) {
	path, ok := Discover(dir)
	if !ok {
		return Default(), nil
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return Default(), []error{err}
	}
	return validateOrDefault(cfg)
}

// LoadFromObject validates a caller-supplied configuration object,
// mirroring spec.md's `loadConfigFromObject`. v must be a Config value, a
// *Config, or nil (meaning "use defaults"); any other type is a direct
// API-misuse error and panics rather than returning an error, matching
// spec.md §7's Fatal category — nothing a monitored dependency does can
// reach this path, only the host program calling the public API
// incorrectly.
func LoadFromObject(v any) (Config, []error) {
	switch t := v.(type) {
	case nil:
		return Default(), nil
	case Config:
		return validateOrDefault(t)
	case *Config:
		if t == nil {
			return Default(), nil
		}
		return validateOrDefault(*t)
	default:
		panic(fmt.Sprintf("config: LoadFromObject: unsupported configuration value of type %T", v))
	}
}

func validateOrDefault(cfg Config) (Config, []error) {
	if errs := Validate(cfg); len(errs) > 0 {
		return Default(), errs
	}
	return cfg, nil
}
