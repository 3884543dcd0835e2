package intercept

import (
	"github.com/bb1nfosec/bheeshma/internal/attribution"
	"github.com/bb1nfosec/bheeshma/pkg/signal"
)

// InstallResult reports which hooks were activated by Install.
type InstallResult struct {
	Installed bool
	Hooks     Config
}

// UninstallResult reports whether Uninstall actually tore anything down.
type UninstallResult struct {
	Uninstalled bool
}

// Install activates interception against buffer using cfg, replacing any
// previously installed context. Idempotent: calling Install while already
// installed simply replaces the active context (there is no layered
// install, matching the single-session model of spec.md §5).
func Install(buffer *signal.Buffer, cfg Config) InstallResult {
	current = &monitorContext{
		buffer: buffer,
		engine: attribution.NewEngine(),
		cfg:    cfg,
		active: true,
	}
	return InstallResult{Installed: true, Hooks: cfg}
}

// Uninstall deactivates interception. Every hook's function variables
// were never reassigned by Install in the first place (they dispatch
// through monitorContext.active instead), so uninstall is simply clearing
// the context — by the time this returns, every wrapper is back to being
// a transparent passthrough, satisfying the install/uninstall round-trip
// invariant (spec.md §8) without needing to snapshot and restore function
// pointers.
func Uninstall() UninstallResult {
	wasActive := current != nil && current.active
	current = nil
	return UninstallResult{Uninstalled: wasActive}
}

// Installed reports whether interception is currently active.
func Installed() bool {
	return current != nil && current.active
}
