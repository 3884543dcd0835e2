// Package signal defines the immutable observation record the rest of the
// monitor is built around: a Signal describes one behavior performed
// through an installed interception facade, attributed to the third-party
// module responsible for it.
package signal

import "fmt"

// Type is the closed enumeration of observable behaviors.
type Type string

const (
	EnvAccess    Type = "EnvAccess"
	FsRead       Type = "FsRead"
	FsWrite      Type = "FsWrite"
	NetConnect   Type = "NetConnect"
	HttpRequest  Type = "HttpRequest"
	HttpsRequest Type = "HttpsRequest"
	ShellExec    Type = "ShellExec"
)

// Valid reports whether t is one of the closed set of signal types.
func (t Type) Valid() bool {
	switch t {
	case EnvAccess, FsRead, FsWrite, NetConnect, HttpRequest, HttpsRequest, ShellExec:
		return true
	default:
		return false
	}
}

// Identity names the third-party module responsible for a signal. Name is
// a Go module import path (e.g. "github.com/org/repo"), which subsumes
// npm-style scoped names without special-casing: Go import paths already
// carry arbitrary depth.
type Identity struct {
	Name    string
	Version string
}

// Key returns a stable map key for an identity, distinguishing versions of
// the same module.
func (id Identity) Key() string {
	return id.Name + "@" + id.Version
}

func (id Identity) String() string {
	return fmt.Sprintf("%s@%s", id.Name, id.Version)
}
