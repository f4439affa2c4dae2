package files

import (
	"io/fs"
	"os"
	"time"
)

type FileInfoOption func(*FileInfo)

var _ os.FileInfo = (*FileInfo)(nil)

type FileInfo struct {
	DirEntry
	size    int64
	perm    fs.FileMode
	modTime time.Time
}

func NewFileInfo(dirEntry DirEntry, o ...FileInfoOption) (info *FileInfo) {
	info = &FileInfo{
		DirEntry: dirEntry,
		perm:     0o644,
	}
	for _, opt := range o {
		opt(info)
	}
	return
}

func Size(v int64) FileInfoOption {
	return func(info *FileInfo) {
		info.size = v
	}
}

func Perm(v fs.FileMode) FileInfoOption {
	return func(info *FileInfo) {
		info.perm = v.Perm()
	}
}

func ModTime(v time.Time) FileInfoOption {
	return func(info *FileInfo) {
		info.modTime = v
	}
}

func (f *FileInfo) Name() string {
	if f == nil {
		return ""
	}
	return f.name
}

func (f *FileInfo) Size() int64 {
	if f == nil {
		return 0
	}
	return f.size
}

func (f *FileInfo) Mode() os.FileMode {
	if f == nil {
		return 0
	}
	return f.typ | f.perm
}

func (f *FileInfo) ModTime() time.Time {
	if f == nil {
		return time.Time{}
	}
	return f.modTime
}

func (f *FileInfo) IsDir() bool {
	if f == nil {
		return false
	}
	return f.typ.IsDir()
}

func (f *FileInfo) Sys() any { return nil }
