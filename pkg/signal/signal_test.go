package signal

import (
	"strings"
	"testing"
)

func TestNewValidatesRequiredMetadata(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic for missing required field")
		}
	}()
	New(EnvAccess, Identity{Name: "github.com/acme/lib", Version: "v1.0.0"}, Metadata{}, nil)
}

func TestNewAcceptsValidMetadata(t *testing.T) {
	s := New(EnvAccess, Identity{Name: "github.com/acme/lib", Version: "v1.0.0"}, Metadata{Variable: "FOO"}, nil)
	if s.Type() != EnvAccess {
		t.Fatalf("unexpected type: %v", s.Type())
	}
	if s.Metadata().Variable != "FOO" {
		t.Fatalf("unexpected variable: %q", s.Metadata().Variable)
	}
}

func TestProjectedTruncatesLongStrings(t *testing.T) {
	long := strings.Repeat("a", 600)
	s := New(FsRead, Identity{Name: "github.com/acme/lib", Version: "v1.0.0"}, Metadata{Path: long, Operation: "readFile"}, Stack{{Function: "x"}})
	p := s.Projected()
	if !strings.HasSuffix(p.Path, truncationSuffix) {
		t.Fatalf("expected truncated path, got len=%d", len(p.Path))
	}
	if len(p.Path) != maxMetadataStringLen+len(truncationSuffix) {
		t.Fatalf("unexpected truncated length: %d", len(p.Path))
	}
}

func TestBufferAppendSnapshotClear(t *testing.T) {
	b := NewBuffer()
	b.Append(New(EnvAccess, Identity{Name: "a", Version: "v1"}, Metadata{Variable: "X"}, nil))
	b.Append(New(EnvAccess, Identity{Name: "a", Version: "v1"}, Metadata{Variable: "Y"}, nil))

	snap := b.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 signals, got %d", len(snap))
	}
	if snap[0].Metadata().Variable != "X" || snap[1].Metadata().Variable != "Y" {
		t.Fatalf("unexpected order: %+v", snap)
	}

	b.Clear()
	if b.Len() != 0 {
		t.Fatalf("expected empty buffer after clear, got %d", b.Len())
	}
}

func TestIdentityKeyDistinguishesVersions(t *testing.T) {
	a := Identity{Name: "github.com/acme/lib", Version: "v1.0.0"}
	b := Identity{Name: "github.com/acme/lib", Version: "v2.0.0"}
	if a.Key() == b.Key() {
		t.Fatalf("expected distinct keys for distinct versions")
	}
}
