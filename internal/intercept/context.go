// Package intercept wraps standard-library entry points (env, filesystem,
// network, HTTP, process): each call is forwarded to the original
// implementation first, and an attributed signal.Signal is appended to a
// shared buffer after that call returns, not before it.
// Go has no runtime monkey-patching, so each facade method dispatches
// through a package-level function variable holding the real
// implementation (the Go-native equivalent of replacing a Node.js module
// export, per SPEC_FULL.md §0); those variables are never reassigned by
// Install/Uninstall, which instead flip a single shared "active" flag.
// That keeps the wrapped bindings trivially stable across an
// install/uninstall cycle, which is what satisfies the round-trip
// invariant in spec.md §8.
package intercept

import (
	"path"

	"github.com/bb1nfosec/bheeshma/internal/attribution"
	"github.com/bb1nfosec/bheeshma/pkg/signal"
)

// Config controls which hooks are active. A disabled hook's wrapper is
// still installed but becomes a transparent passthrough that emits no
// signals, matching spec.md §6's per-hook enable flags. Whitelist and
// Blacklist are the package glob patterns from spec.md §6's
// configuration schema: a resolved package name matching Blacklist is
// dropped outright; if Whitelist is non-empty, only names matching it
// are kept.
type Config struct {
	Env  bool
	Fs   bool
	Net  bool
	HTTP bool
	Exec bool

	Whitelist []string
	Blacklist []string
}

// AllEnabled returns a Config with every hook active.
func AllEnabled() Config {
	return Config{Env: true, Fs: true, Net: true, HTTP: true, Exec: true}
}

// monitorContext is the installed state shared by every hook file in this
// package: where to attribute frames, where to append resulting signals,
// and which hooks are currently active. A single global context mirrors
// the single-process, single-install nature of the system (spec.md §5:
// no internal worker threads, one logical monitoring session at a time).
type monitorContext struct {
	buffer *signal.Buffer
	engine *attribution.Engine
	cfg    Config
	active bool
}

var current *monitorContext

// resolve captures the caller's stack (skipping this frame and the
// caller's own wrapper frame) and attributes it. Returns ok=false if
// interception is not installed or no frame resolves to a dependency,
// in which case the hook must not emit a signal (spec.md §4.3
// "Attribution filtering").
func resolve(skip int) (signal.Identity, signal.Stack, bool) {
	ctx := current
	if ctx == nil || !ctx.active {
		return signal.Identity{}, nil, false
	}
	st := signal.CaptureStack(skip+1, 32)
	id, ok := ctx.engine.ResolveFromStack(st)
	if !ok {
		return signal.Identity{}, nil, false
	}
	if !allowedByLists(ctx.cfg, id.Name) {
		return signal.Identity{}, nil, false
	}
	return id, st, true
}

// allowedByLists applies cfg's whitelist/blacklist glob patterns to a
// resolved package name. Blacklist wins over whitelist: a name matching
// both is dropped.
func allowedByLists(cfg Config, name string) bool {
	if matchesAny(cfg.Blacklist, name) {
		return false
	}
	if len(cfg.Whitelist) > 0 && !matchesAny(cfg.Whitelist, name) {
		return false
	}
	return true
}

// matchesAny reports whether name matches any of patterns, using
// path.Match's shell-style globbing. A malformed pattern simply never
// matches rather than aborting attribution for every other pattern.
func matchesAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, err := path.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

// emit appends a signal built from typ/metadata to the active buffer,
// attributing via the currently captured stack. hookOn is the caller's
// per-hook config flag (e.g. cfg.Env); emit is a no-op unless
// interception is installed and that specific hook is enabled. Any panic
// from signal.New (malformed metadata — an implementation bug in the
// calling hook) is recovered and swallowed: per spec.md §4.3 invariant 2,
// a failure in signal emission must never affect the wrapped operation.
func emit(typ signal.Type, metadata signal.Metadata, skip int, hookOn bool) {
	if !hookOn || current == nil || !current.active {
		return
	}
	id, st, ok := resolve(skip + 1)
	if !ok {
		return
	}
	defer func() { recover() }()
	current.buffer.Append(signal.New(typ, id, metadata, st))
}

// cfgEnv, cfgFs, cfgNet, cfgHTTP, cfgExec read the active config's
// per-hook flag, false if nothing is installed.
func cfgEnv() bool  { return current != nil && current.cfg.Env }
func cfgFs() bool   { return current != nil && current.cfg.Fs }
func cfgNet() bool  { return current != nil && current.cfg.Net }
func cfgHTTP() bool { return current != nil && current.cfg.HTTP }
func cfgExec() bool { return current != nil && current.cfg.Exec }
