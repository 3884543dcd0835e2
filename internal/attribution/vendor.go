package attribution

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// vendorModules is the parsed form of a vendor/modules.txt file: package
// import path -> owning module manifest. spec.md §4.2's vendor scheme is
// the Go-native analog of an npm project that ships a frozen
// node_modules/ snapshot instead of resolving from the module cache.
type vendorModules map[string]manifest

// vendorParseCache memoizes the parse of each distinct vendor/modules.txt
// a process encounters. Scoped by vendor root directory; in practice a
// process has at most a handful of these (usually exactly one), so an
// unbounded map guarded by a mutex is simpler than an LRU and can't grow
// unreasonably.
type vendorParseCache struct {
	mu    sync.Mutex
	byDir map[string]vendorModules
}

func newVendorParseCache() *vendorParseCache {
	return &vendorParseCache{byDir: make(map[string]vendorModules)}
}

func (c *vendorParseCache) get(vendorRoot string) (vendorModules, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.byDir[vendorRoot]
	return m, ok
}

func (c *vendorParseCache) put(vendorRoot string, m vendorModules) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byDir[vendorRoot] = m
}

// resolveVendor implements the vendor/modules.txt half of the attribution
// algorithm. A vendored dependency lives at
//
//	<module root>/vendor/<import-path>/...
//
// with vendor/modules.txt recording, for each module, a "# <module>
// <version>" header followed by the list of package import paths it
// vendors. Identity requires a longest-prefix match of the call site's
// import path against that package list, since a vendored module's
// packages are not directory segments containing "@" the way module-cache
// entries are.
func resolveVendor(file string, parseCache *vendorParseCache, manifestCache *manifestCache) (manifest, string, bool) {
	slashFile := filepath.ToSlash(file)
	segs := strings.Split(slashFile, "/")

	vendorIdx := -1
	for i := len(segs) - 1; i >= 0; i-- {
		if segs[i] == "vendor" {
			vendorIdx = i
			break
		}
	}
	if vendorIdx == -1 || vendorIdx+1 >= len(segs)-1 {
		// No vendor marker, or nothing between vendor/ and the file itself.
		return manifest{}, "", false
	}

	vendorRoot := strings.Join(segs[:vendorIdx+1], "/")
	importDirSegs := segs[vendorIdx+1 : len(segs)-1]
	importDir := strings.Join(importDirSegs, "/")
	if importDir == "" {
		return manifest{}, "", false
	}
	packageDir := strings.Join(segs[:len(segs)-1], "/")

	if m, ok := manifestCache.get(packageDir); ok {
		return m, packageDir, true
	}

	mods, ok := parseCache.get(vendorRoot)
	if !ok {
		parsed, err := parseModulesTxt(filepath.Join(vendorRoot, "modules.txt"))
		if err != nil {
			return manifest{}, packageDir, false
		}
		mods = parsed
		parseCache.put(vendorRoot, mods)
	}

	m, ok := longestPrefixMatch(mods, importDir)
	if !ok {
		return manifest{}, packageDir, false
	}
	manifestCache.put(packageDir, m)
	return m, packageDir, true
}

// longestPrefixMatch finds the manifest for the package whose recorded
// import path is the longest prefix of importDir. A direct hit (the call
// site's own package is listed) is the common case; prefix matching
// covers stack frames that land in an unlisted internal path nested under
// a listed package.
func longestPrefixMatch(mods vendorModules, importDir string) (manifest, bool) {
	if m, ok := mods[importDir]; ok {
		return m, true
	}
	best := ""
	var bestManifest manifest
	found := false
	for pkgPath, m := range mods {
		if pkgPath == importDir || strings.HasPrefix(importDir, pkgPath+"/") {
			if len(pkgPath) > len(best) {
				best = pkgPath
				bestManifest = m
				found = true
			}
		}
	}
	return bestManifest, found
}

func parseModulesTxt(path string) (vendorModules, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mods := make(vendorModules)
	var current manifest
	haveCurrent := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "# "):
			fields := strings.Fields(strings.TrimPrefix(line, "# "))
			if len(fields) >= 2 {
				current = manifest{name: fields[0], version: fields[1]}
				haveCurrent = true
			} else {
				haveCurrent = false
			}
		case strings.HasPrefix(line, "##"):
			// Annotation line (## explicit; go 1.x); not a package path.
		case strings.HasPrefix(line, "#"):
			// Other directive lines (e.g. replacements); ignored.
		default:
			pkg := strings.TrimSpace(line)
			if pkg != "" && haveCurrent {
				mods[pkg] = current
			}
		}
	}
	return mods, scanner.Err()
}
