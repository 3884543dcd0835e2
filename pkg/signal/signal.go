package signal

import "time"

// Signal is an immutable observation of a runtime behavior performed by
// third-party code. Once constructed it must never be mutated; callers
// that need a sanitized copy for reporting use Projected.
type Signal struct {
	timestamp time.Time
	typ       Type
	pkg       Identity
	metadata  Metadata
	stack     Stack
}

// New constructs a Signal, validating metadata against the required-field
// table for typ (spec.md §3). An unknown type or missing required field is
// an implementation bug in the caller (always the interception layer, never
// monitored code) and panics rather than returning an error, matching the
// "Fatal: malformed direct API misuse" category in spec.md §7.
func New(typ Type, pkg Identity, metadata Metadata, stack Stack) Signal {
	if err := metadata.validate(typ); err != nil {
		panic(err)
	}
	return Signal{
		timestamp: time.Now().UTC(),
		typ:       typ,
		pkg:       pkg,
		metadata:  metadata,
		stack:     stack,
	}
}

// Timestamp returns the UTC instant the signal was captured.
func (s Signal) Timestamp() time.Time { return s.timestamp }

// Type returns the signal's type.
func (s Signal) Type() Type { return s.typ }

// Package returns the attributed module identity. Callers must not reach
// this for a Signal built without attribution; the interception layer
// never constructs one (spec.md §3: "signals without attribution are never
// materialized into the buffer").
func (s Signal) Package() Identity { return s.pkg }

// Metadata returns the signal's type-specific metadata.
func (s Signal) Metadata() Metadata { return s.metadata }

// Stack returns the captured call stack.
func (s Signal) Stack() Stack { return s.stack }

// Projected returns a copy of the signal's metadata with the stack dropped
// and long string fields truncated, for use in report views (spec.md
// §4.1/§4.7). It does not mutate s.
func (s Signal) Projected() Metadata {
	return s.metadata.projected()
}
