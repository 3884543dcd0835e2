// Package attribution resolves the third-party dependency responsible for
// a captured call stack, the Go-native equivalent of walking a Node.js
// stack to find the first frame inside node_modules/ (spec.md §4.2).
package attribution

import (
	"strings"

	"github.com/bb1nfosec/bheeshma/pkg/signal"
)

// ownModulePrefixes are function-name prefixes belonging to this module's
// own interception and attribution machinery. Frames matching these are
// skipped so a hook never attributes a signal to itself.
var ownModulePrefixes = []string{
	"github.com/bb1nfosec/bheeshma/internal/intercept.",
	"github.com/bb1nfosec/bheeshma/internal/attribution.",
	"github.com/bb1nfosec/bheeshma/pkg/signal.",
}

// Engine resolves stack frames to dependency identities, caching results
// across calls for the lifetime of the process.
type Engine struct {
	manifests  *manifestCache
	vendorText *vendorParseCache
}

// NewEngine returns a ready-to-use attribution Engine.
func NewEngine() *Engine {
	return &Engine{
		manifests:  newManifestCache(),
		vendorText: newVendorParseCache(),
	}
}

// ResolveFromStack walks st in order (innermost frame first, the same
// order signal.CaptureStack records) and returns the identity of the
// first frame attributable to a third-party dependency via either the
// module-cache scheme or the vendor/modules.txt scheme. Frames belonging
// to this module's own hooks are skipped. Returns ok=false if no frame in
// the stack resolves, in which case the caller (the interception layer)
// must drop the signal rather than materialize it without attribution
// (spec.md §3/§4.2).
func (e *Engine) ResolveFromStack(st signal.Stack) (signal.Identity, bool) {
	for _, frame := range st {
		if isOwnFrame(frame.Function) {
			continue
		}
		if m, _, ok := resolveModCache(frame.File, e.manifests); ok {
			return signal.Identity{Name: m.name, Version: m.version}, true
		}
		if m, _, ok := resolveVendor(frame.File, e.vendorText, e.manifests); ok {
			return signal.Identity{Name: m.name, Version: m.version}, true
		}
	}
	return signal.Identity{}, false
}

func isOwnFrame(function string) bool {
	for _, prefix := range ownModulePrefixes {
		if strings.HasPrefix(function, prefix) {
			return true
		}
	}
	return false
}
