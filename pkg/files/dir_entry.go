package files

import (
	"io/fs"
	"os"
	"path/filepath"
)

// NewDirEntry builds an in-memory listing item. Only the type bits of mode are kept.
func NewDirEntry(name string, mode fs.FileMode, o ...FileInfoOption) DirEntry {
	if parent, _ := filepath.Split(name); parent != "" {
		// It's OK to have panic here.
		panic("dir entry name can not have path: " + name)
	}
	dirEntry := DirEntry{
		name: name,
		typ:  mode.Type(),
	}
	if len(o) > 0 {
		dirEntry.info = NewFileInfo(dirEntry, o...)
	}
	return dirEntry
}

func NewDir(name string) DirEntry {
	return NewDirEntry(name, fs.ModeDir)
}

func NewFile(name string, o ...FileInfoOption) DirEntry {
	return NewDirEntry(name, 0, o...)
}

var _ os.DirEntry = (*DirEntry)(nil)

type DirEntry struct {
	name string
	typ  fs.FileMode
	info *FileInfo
}

func (d DirEntry) Name() string      { return d.name }
func (d DirEntry) IsDir() bool       { return d.typ.IsDir() }
func (d DirEntry) IsSymlink() bool   { return d.typ&fs.ModeSymlink != 0 }
func (d DirEntry) Type() os.FileMode { return d.typ }
func (d DirEntry) String() string    { return fs.FormatDirEntry(d) }
func (d DirEntry) Info() (os.FileInfo, error) {
	if d.info == nil {
		return nil, nil
	}
	return d.info, nil
}
