package signal

import "sync"

// Buffer is the central append-only signal store. Lifecycle matches
// spec.md §3/§5: created empty at install, appended to synchronously
// during interception, snapshotted for reports, cleared at uninstall.
//
// The concurrency model (spec.md §5) assumes a single logical thread
// driving interception, but the buffer is still guarded by a mutex so a
// host that happens to call intercepted APIs from multiple goroutines
// gets a consistent append order and a consistent snapshot rather than a
// data race.
type Buffer struct {
	mu      sync.Mutex
	signals []Signal
}

// NewBuffer returns an empty signal buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append adds a signal to the buffer. Signals without attribution must
// never reach here; callers (the interception layer) are responsible for
// dropping unattributed events before calling Append.
func (b *Buffer) Append(s Signal) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.signals = append(b.signals, s)
}

// Snapshot returns a copy of the buffer's contents in append order.
func (b *Buffer) Snapshot() []Signal {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Signal, len(b.signals))
	copy(out, b.signals)
	return out
}

// Len returns the number of signals currently buffered.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.signals)
}

// Clear empties the buffer. Called at Uninstall.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.signals = nil
}
