// Package ftnav moves the column cursor over the entry cache and keeps
// background listings and deletions flowing into it.
package ftnav

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/filetug/millertug/pkg/files"
	"github.com/filetug/millertug/pkg/metrics"
	"github.com/filetug/millertug/pkg/millertug/ftentry"
	"github.com/filetug/millertug/pkg/millertug/ftjoin"
	"go.uber.org/zap"
)

var ErrNoParent = errors.New("path has no parent directory")

var filepathAbs = filepath.Abs

type Config struct {
	RequiredColumns int
	ColumnMargin    int
}

type navigatorOptions struct {
	logger             *zap.Logger
	readDirConcurrency int
}

type NavigatorOption func(o *navigatorOptions)

func WithLogger(logger *zap.Logger) NavigatorOption {
	return func(o *navigatorOptions) {
		o.logger = logger
	}
}

func WithReadDirConcurrency(n int) NavigatorOption {
	return func(o *navigatorOptions) {
		o.readDirConcurrency = n
	}
}

type Navigator struct {
	fs       files.Store
	entries  *ftentry.Store
	readDirs *ftjoin.ReadDirJoiner
	deletes  *ftjoin.DeleteJoiner
	logger   *zap.Logger

	first    string
	selected int
	required int
	margin   int
}

// Column is one visible column handed to the renderer.
type Column struct {
	Entry   *ftentry.Entry
	Focused bool
}

// NewNavigator shows start as the first column and starts listing it.
// start must be absolute and canonical.
func NewNavigator(fs files.Store, start string, cfg Config, options ...NavigatorOption) *Navigator {
	o := navigatorOptions{logger: zap.NewNop()}
	for _, option := range options {
		option(&o)
	}
	nav := &Navigator{
		fs:       fs,
		entries:  ftentry.NewStore(fs),
		logger:   o.logger,
		first:    start,
		required: max(cfg.RequiredColumns, 1),
		margin:   max(cfg.ColumnMargin, 0),
	}
	nav.readDirs = ftjoin.NewReadDirJoiner(fs,
		ftjoin.WithLogger(o.logger),
		ftjoin.WithConcurrency(o.readDirConcurrency),
	)
	nav.deletes = ftjoin.NewDeleteJoiner(fs, ftjoin.WithLogger(o.logger))
	nav.entries.GetOrCreate(start, "")
	nav.TryOpenSelectedPath()
	return nav
}

func (n *Navigator) FirstVisibleColumn() string { return n.first }
func (n *Navigator) SelectedColumn() int        { return n.selected }
func (n *Navigator) RequiredColumns() int       { return n.required }
func (n *Navigator) ColumnMargin() int          { return n.margin }
func (n *Navigator) Entries() *ftentry.Store    { return n.entries }

// Pending reports outstanding listings and deletions.
func (n *Navigator) Pending() (readDirs, deletes int) {
	return n.readDirs.Len(), n.deletes.Len()
}

// chain follows selections from the first visible column, at most limit entries.
func (n *Navigator) chain(limit int) []*ftentry.Entry {
	chain := make([]*ftentry.Entry, 0, limit)
	path := n.first
	for len(chain) < limit {
		e, ok := n.entries.Get(path)
		if !ok {
			break
		}
		chain = append(chain, e)
		opened, ok := e.Opened()
		if !ok {
			break
		}
		if path, ok = opened.SelectedPath(); !ok {
			break
		}
	}
	return chain
}

// FocusedEntry returns the entry of the focused column.
func (n *Navigator) FocusedEntry() (*ftentry.Entry, bool) {
	e, depth := n.EntryAtDepth(n.selected)
	return e, e != nil && depth == n.selected
}

// EntryAtDepth follows selections depth times from the first visible column
// without doing any I/O. It returns the last entry reached and how deep it is.
func (n *Navigator) EntryAtDepth(depth int) (*ftentry.Entry, int) {
	chain := n.chain(depth + 1)
	if len(chain) == 0 {
		return nil, 0
	}
	return chain[len(chain)-1], len(chain) - 1
}

// VisibleColumns projects up to RequiredColumns entries for rendering.
func (n *Navigator) VisibleColumns() []Column {
	chain := n.chain(n.required)
	columns := make([]Column, len(chain))
	for i, e := range chain {
		columns[i] = Column{Entry: e, Focused: i == n.selected}
	}
	return columns
}

// TryOpenSelectedPath resolves the columns right of the cursor, creating
// entries and dispatching listings as needed. It reports whether every
// column up to one past the window is already known.
func (n *Navigator) TryOpenSelectedPath() bool {
	chain := n.chain(n.selected + 1)
	if len(chain) <= n.selected {
		return false
	}
	e := chain[n.selected]
	for depth := n.required - n.selected; depth > 0; depth-- {
		opened := e.TryOpen(n.readDirs)
		if opened == nil {
			return false
		}
		next, ok := opened.SelectedPath()
		if !ok {
			return false
		}
		e = n.entries.GetOrCreate(next, "")
	}
	metrics.SetCachedEntries(n.entries.Len())
	return true
}

// MoveRight slides the window or advances the cursor. It reports whether the view changed.
func (n *Navigator) MoveRight() bool {
	for {
		chain := n.chain(n.required + 1)
		if len(chain) > n.required {
			n.first = chain[1].Path
			n.TryOpenSelectedPath()
			return true
		}
		if chain[len(chain)-1].IsTerminal() {
			if n.selected+1 >= len(chain) || n.selected+1 >= n.required {
				return false
			}
			n.selected++
			return true
		}
		n.TryOpenSelectedPath()
		if len(n.chain(n.required+1)) <= len(chain) {
			// waiting for a listing
			return false
		}
	}
}

// MoveLeft moves the cursor left, or the window to the parent directory.
func (n *Navigator) MoveLeft() bool {
	if n.selected > 0 {
		n.selected--
		return true
	}
	parentPath, ok := files.Parent(n.first)
	if !ok {
		return false
	}
	child := n.first
	parent := n.entries.GetOrCreate(parentPath, child)
	parent.SetSelectOnOpen(child)
	n.first = parentPath
	if opened, ok := parent.Opened(); ok && !opened.SetSelectedEntry(child) {
		n.logger.Warn("unable to select child in parent column",
			zap.String("parent", parentPath), zap.String("child", child))
	}
	n.TryOpenSelectedPath()
	return true
}

// SelectUp moves the selection of the focused column up, wrapping around.
func (n *Navigator) SelectUp() bool {
	return n.moveSelection((*ftentry.Opened).SelectUp)
}

// SelectDown moves the selection of the focused column down, wrapping around.
func (n *Navigator) SelectDown() bool {
	return n.moveSelection((*ftentry.Opened).SelectDown)
}

func (n *Navigator) moveSelection(move func(*ftentry.Opened) bool) bool {
	e, ok := n.FocusedEntry()
	if !ok {
		return false
	}
	opened, ok := e.Opened()
	if !ok || !move(opened) {
		return false
	}
	n.TryOpenSelectedPath()
	return true
}

// DeleteTarget is what a bare delete request removes: the selection of the
// focused column, or the focused entry itself when it is not a directory listing.
func (n *Navigator) DeleteTarget() (string, bool) {
	e, ok := n.FocusedEntry()
	if !ok {
		return "", false
	}
	switch st := e.State.(type) {
	case *ftentry.Opened:
		return st.SelectedPath()
	case ftentry.File:
		return e.Path, true
	}
	return "", false
}

// DeletePath starts removing path from disk and drops it from the cache right away.
func (n *Navigator) DeletePath(path string) error {
	if !filepath.IsAbs(path) {
		abs, err := filepathAbs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		path = abs
	}
	path = filepath.Clean(path)
	parentPath, hasParent := files.Parent(path)
	if !hasParent {
		return fmt.Errorf("refusing to delete %s: %w", path, ErrNoParent)
	}

	var cursorOnPath bool
	if focused, ok := n.FocusedEntry(); ok {
		cursorOnPath = focused.Path == path
	}

	n.logger.Info("deleting", zap.String("path", path))
	n.deletes.Spawn(path)

	if e, ok := n.entries.Get(path); ok {
		e.State = ftentry.Deleting{}
	} else {
		n.entries.Set(&ftentry.Entry{Path: path, State: ftentry.Deleting{}})
	}
	if removed := n.entries.RemoveDescendants(path); len(removed) > 0 {
		n.logger.Debug("dropped cached descendants", zap.String("path", path), zap.Int("count", len(removed)))
	}

	var parentEmptied bool
	if parent, ok := n.entries.Get(parentPath); ok {
		if opened, ok := parent.Opened(); ok && opened.Remove(path) {
			parentEmptied = opened.Selected == nil
		}
	}

	if n.first == path || files.IsDescendant(n.first, path) {
		n.entries.GetOrCreate(parentPath, "")
		n.first = parentPath
		n.selected = 0
	}
	n.clampSelected()

	// A cursor on the deleted path already stepped left in the clamp.
	if parentEmptied && !cursorOnPath {
		if focused, ok := n.FocusedEntry(); ok && focused.Path == parentPath {
			n.MoveLeft()
		}
	}
	n.TryOpenSelectedPath()
	metrics.SetCachedEntries(n.entries.Len())
	return nil
}

// clampSelected keeps the cursor on an existing column.
func (n *Navigator) clampSelected() {
	if chain := n.chain(n.selected + 1); len(chain) <= n.selected {
		n.selected = max(len(chain)-1, 0)
	}
}

// PollIO waits up to timeout for one background completion and applies it.
// It reports whether anything was applied.
func (n *Navigator) PollIO(timeout time.Duration) (bool, error) {
	if timeout <= 0 {
		select {
		case r := <-n.readDirs.C():
			return true, n.ApplyReadDir(r)
		case r := <-n.deletes.C():
			return true, n.ApplyDelete(r)
		default:
			return false, nil
		}
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case r := <-n.readDirs.C():
		return true, n.ApplyReadDir(r)
	case r := <-n.deletes.C():
		return true, n.ApplyDelete(r)
	case <-timer.C:
		return false, nil
	}
}

// ApplyReadDir stores a finished listing if its entry is absent or still waiting.
func (n *Navigator) ApplyReadDir(r ftjoin.ReadDirResult) error {
	e, cached := n.entries.Get(r.Path)
	var selectOnOpen string
	if cached {
		waiting, ok := e.State.(ftentry.Waiting)
		if !ok {
			n.logger.Debug("ignoring listing for entry that is no longer waiting",
				zap.String("path", r.Path), zap.String("state", e.Kind()))
			return nil
		}
		selectOnOpen = waiting.SelectOnOpen
	} else {
		e = &ftentry.Entry{Path: r.Path}
	}

	var err error
	switch r.Kind {
	case ftjoin.ReadDirOK:
		children := slices.DeleteFunc(r.Children, n.isDeleting)
		e.State = ftentry.NewOpened(children, selectOnOpen)
	case ftjoin.ReadDirPermissionDenied:
		e.State = ftentry.PermissionDenied{}
	case ftjoin.ReadDirNotADirectory:
		e.State = ftentry.File{}
	default:
		err = fmt.Errorf("failed to read directory %s: %w", r.Path, r.Err)
		if !cached {
			return err
		}
		e.State = ftentry.Unopened{SelectOnOpen: selectOnOpen}
	}
	if !cached {
		n.entries.Set(e)
	}
	n.logger.Debug("listing applied", zap.String("path", r.Path), zap.Stringer("kind", r.Kind))
	if err == nil {
		n.TryOpenSelectedPath()
	}
	return err
}

// isDeleting reports whether path has a deletion in flight.
func (n *Navigator) isDeleting(path string) bool {
	e, ok := n.entries.Get(path)
	if !ok {
		return false
	}
	_, deleting := e.State.(ftentry.Deleting)
	return deleting
}

// ApplyDelete settles a finished deletion. A failed deletion of a path still
// on disk puts it back into its parent listing.
func (n *Navigator) ApplyDelete(r ftjoin.DeleteResult) error {
	if e, ok := n.entries.Get(r.Path); ok {
		if _, deleting := e.State.(ftentry.Deleting); deleting {
			n.entries.Remove(r.Path)
		}
	}
	metrics.SetCachedEntries(n.entries.Len())
	if r.Err == nil {
		n.logger.Info("deleted", zap.String("path", r.Path))
		return nil
	}
	if n.fs.Exists(r.Path) {
		if parentPath, ok := files.Parent(r.Path); ok {
			if parent, ok := n.entries.Get(parentPath); ok {
				if opened, ok := parent.Opened(); ok {
					opened.Insert(r.Path)
				}
			}
		}
		n.TryOpenSelectedPath()
	}
	return r.Err
}

// Close waits for outstanding deletions and abandons outstanding listings.
func (n *Navigator) Close() error {
	n.readDirs.Close()
	return n.deletes.Close()
}
