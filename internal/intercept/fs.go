package intercept

import (
	"os"

	"github.com/bb1nfosec/bheeshma/pkg/signal"
)

var (
	osReadFile  = os.ReadFile
	osWriteFile = os.WriteFile
	osOpen      = os.Open
	osOpenFile  = os.OpenFile
	osCreate    = os.Create
	osReadDir   = os.ReadDir
	osReadlink  = os.Readlink
	osMkdir     = os.Mkdir
	osMkdirAll  = os.MkdirAll
	osRemove    = os.Remove
	osRemoveAll = os.RemoveAll
	osRename    = os.Rename
)

// FsView is the monitored facade over filesystem access. Read operations
// emit FsRead, write/mutate operations emit FsWrite, per spec.md §4.3.
// Every method forwards to the real call first, then resolves its path
// argument through normalizePath; a path that does not resolve (an empty
// string) still gets the real call's result, it just emits no signal.
type FsView struct{}

// Fs returns the monitored filesystem facade.
func Fs() FsView { return FsView{} }

func (FsView) ReadFile(name string) ([]byte, error) {
	b, err := osReadFile(name)
	emitFs(signal.FsRead, name, "readFile")
	return b, err
}

func (FsView) Open(name string) (*os.File, error) {
	f, err := osOpen(name)
	emitFs(signal.FsRead, name, "open")
	return f, err
}

func (FsView) ReadDir(name string) ([]os.DirEntry, error) {
	entries, err := osReadDir(name)
	emitFs(signal.FsRead, name, "readDir")
	return entries, err
}

func (FsView) Readlink(name string) (string, error) {
	target, err := osReadlink(name)
	emitFs(signal.FsRead, name, "readlink")
	return target, err
}

func (FsView) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := osWriteFile(name, data, perm)
	emitFs(signal.FsWrite, name, "writeFile")
	return err
}

func (FsView) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	f, err := osOpenFile(name, flag, perm)
	op := "open"
	typ := signal.FsRead
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE|os.O_APPEND|os.O_TRUNC) != 0 {
		typ, op = signal.FsWrite, "openFile"
	}
	emitFs(typ, name, op)
	return f, err
}

func (FsView) Create(name string) (*os.File, error) {
	f, err := osCreate(name)
	emitFs(signal.FsWrite, name, "create")
	return f, err
}

func (FsView) Mkdir(name string, perm os.FileMode) error {
	err := osMkdir(name, perm)
	emitFs(signal.FsWrite, name, "mkdir")
	return err
}

func (FsView) MkdirAll(name string, perm os.FileMode) error {
	err := osMkdirAll(name, perm)
	emitFs(signal.FsWrite, name, "mkdirAll")
	return err
}

func (FsView) Remove(name string) error {
	err := osRemove(name)
	emitFs(signal.FsWrite, name, "remove")
	return err
}

func (FsView) RemoveAll(name string) error {
	err := osRemoveAll(name)
	emitFs(signal.FsWrite, name, "removeAll")
	return err
}

func (FsView) Rename(oldpath, newpath string) error {
	err := osRename(oldpath, newpath)
	emitFs(signal.FsWrite, oldpath, "rename")
	return err
}

func emitFs(typ signal.Type, path, operation string) {
	norm, ok := normalizePath(path)
	if !ok {
		return
	}
	emit(typ, signal.Metadata{Path: norm, Operation: operation}, 2, cfgFs())
}
