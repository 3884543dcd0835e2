package attribution

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// resolveModCache implements the module-cache half of the attribution
// algorithm (spec.md §4.2, translated per SPEC_FULL.md §0): a downloaded
// Go module lives at
//
//	.../pkg/mod/<module-path>@<version>/...
//
// which is the direct Go-ecosystem analog of npm's
// node_modules/<pkg>/<version found in package.json>: the directory
// segment itself already encodes identity, version included, so unlike
// npm we don't need a manifest read to learn the version — but we still
// read the dependency's own go.mod to confirm the module name, exercising
// the same "resolve manifest, cache by package directory, missing/
// malformed manifest means unresolvable" contract spec.md §4.2 specifies.
//
// Returns the resolved manifest, the package directory (cache key), and
// whether file resolved: false when no module-cache marker or
// module@version segment is found, and also when the marker is found but
// the go.mod manifest is missing or has no module directive.
func resolveModCache(file string, cache *manifestCache) (manifest, string, bool) {
	segs := strings.Split(filepath.ToSlash(file), "/")

	markerIdx := -1
	for i := len(segs) - 1; i >= 1; i-- {
		if segs[i] == "mod" && segs[i-1] == "pkg" {
			markerIdx = i
			break
		}
	}
	if markerIdx == -1 || markerIdx+1 >= len(segs) {
		return manifest{}, "", false
	}

	// Walk forward from the segment after "mod", joining path elements
	// until one contains "@" (module@version).
	atVersionIdx := -1
	for i := markerIdx + 1; i < len(segs); i++ {
		if strings.Contains(segs[i], "@") {
			atVersionIdx = i
			break
		}
	}
	if atVersionIdx == -1 {
		return manifest{}, "", false
	}

	nameVersion := strings.SplitN(segs[atVersionIdx], "@", 2)
	if len(nameVersion) != 2 || nameVersion[0] == "" || nameVersion[1] == "" {
		return manifest{}, "", false
	}
	version := nameVersion[1]

	packageDir := strings.Join(segs[:atVersionIdx+1], "/")

	if m, ok := cache.get(packageDir); ok {
		return m, packageDir, true
	}

	name, ok := readGoModModuleName(filepath.Join(packageDir, "go.mod"))
	if !ok {
		return manifest{}, packageDir, false
	}
	m := manifest{name: name, version: version}
	cache.put(packageDir, m)
	return m, packageDir, true
}

// readGoModModuleName reads the `module <path>` directive from a go.mod
// file. A missing file or a file with no module directive is treated as
// an unresolvable manifest per spec.md §4.2's failure policy.
func readGoModModuleName(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "module ") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(line, "module "))
		name = strings.Trim(name, "\"")
		if name == "" {
			return "", false
		}
		return name, true
	}
	return "", false
}
