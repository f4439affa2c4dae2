package osfile

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/filetug/millertug/pkg/files"
	"github.com/filetug/millertug/pkg/fsutils"
)

var osReadDir = os.ReadDir
var osHostname = os.Hostname
var osStat = os.Stat
var osLstat = os.Lstat
var readFileData = fsutils.ReadFileData
var osRemove = os.Remove
var osRemoveAll = os.RemoveAll

var _ files.Store = (*Store)(nil)

const defaultTitle = "localhost"

type Store struct {
	title string
}

// RootTitle is the host name without a trailing ".local".
func (s Store) RootTitle() string {
	return strings.TrimSuffix(s.title, ".local")
}

func (s Store) IsDir(path string) bool {
	info, err := osStat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func (s Store) Exists(path string) bool {
	_, err := osLstat(path)
	return err == nil
}

// Lstat describes path without following a trailing symlink.
func (s Store) Lstat(path string) (os.FileInfo, error) {
	return osLstat(path)
}

func (s Store) ReadDir(ctx context.Context, path string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return osReadDir(path)
}

func (s Store) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := osLstat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return osRemoveAll(path)
	}
	return osRemove(path)
}

func (s Store) ReadFile(ctx context.Context, path string, limit int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, nil
	}
	info, err := osStat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, &fs.PathError{Op: "read", Path: path, Err: fs.ErrInvalid}
	}
	data, err := readFileData(path, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// NewStore is a Store over the local filesystem titled by the host name.
func NewStore() *Store {
	title, err := osHostname()
	if err != nil || title == "" {
		title = defaultTitle
	}
	return &Store{title: title}
}
