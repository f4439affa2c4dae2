package ftnav

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/filetug/millertug/pkg/files"
	"github.com/filetug/millertug/pkg/files/osfile"
	"github.com/filetug/millertug/pkg/millertug/ftentry"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newMockStore(t *testing.T) *files.MockStore {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return files.NewMockStore(ctrl)
}

// makeTree creates a canonical temp dir populated from entries like "a/", "a/b.txt".
func makeTree(t *testing.T, paths ...string) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	for _, rel := range paths {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			require.NoError(t, os.MkdirAll(p, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(rel), 0o644))
	}
	return root
}

func newTestNavigator(t *testing.T, start string, required, margin int) *Navigator {
	t.Helper()
	nav := NewNavigator(osfile.NewStore(), start, Config{RequiredColumns: required, ColumnMargin: margin})
	t.Cleanup(func() {
		_ = nav.Close()
	})
	settle(t, nav)
	return nav
}

// settle applies completions until nothing is in flight.
func settle(t *testing.T, nav *Navigator) []error {
	t.Helper()
	var errs []error
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		applied, err := nav.PollIO(20 * time.Millisecond)
		if err != nil {
			errs = append(errs, err)
		}
		readDirs, deletes := nav.Pending()
		if !applied && readDirs == 0 && deletes == 0 {
			return errs
		}
	}
	t.Fatal("background tasks did not settle")
	return nil
}

func columnPaths(nav *Navigator) []string {
	var paths []string
	for _, c := range nav.VisibleColumns() {
		paths = append(paths, c.Entry.Path)
	}
	return paths
}

func mustEntry(t *testing.T, nav *Navigator, path string) *ftentry.Entry {
	t.Helper()
	e, ok := nav.Entries().Get(path)
	require.True(t, ok, "entry %s is not cached", path)
	return e
}

func mustOpened(t *testing.T, nav *Navigator, path string) *ftentry.Opened {
	t.Helper()
	opened, ok := mustEntry(t, nav, path).Opened()
	require.True(t, ok, "entry %s is not opened", path)
	return opened
}

func selectedPath(t *testing.T, nav *Navigator, path string) string {
	t.Helper()
	p, ok := mustOpened(t, nav, path).SelectedPath()
	require.True(t, ok)
	return p
}
