// Package ftentry holds the per-path cache of the column browser.
package ftentry

import (
	"github.com/filetug/millertug/pkg/files"
)

// State is one of File, Unopened, Waiting, *Opened, PermissionDenied or Deleting.
type State interface {
	isState()
}

type File struct{}

type Unopened struct {
	SelectOnOpen string
}

type Waiting struct {
	SelectOnOpen string
}

type PermissionDenied struct{}

type Deleting struct{}

func (File) isState()             {}
func (Unopened) isState()         {}
func (Waiting) isState()          {}
func (*Opened) isState()          {}
func (PermissionDenied) isState() {}
func (Deleting) isState()         {}

// Spawner starts a background listing of path.
type Spawner interface {
	Spawn(path string)
}

type Entry struct {
	Path  string
	State State
}

// New stats path once and starts it as Unopened for directories, File otherwise.
func New(store files.Store, path, selectOnOpen string) *Entry {
	if store.IsDir(path) {
		return &Entry{Path: path, State: Unopened{SelectOnOpen: selectOnOpen}}
	}
	return &Entry{Path: path, State: File{}}
}

// TryOpen dispatches a listing if the entry is Unopened.
// It returns the listing when the entry is already opened.
func (e *Entry) TryOpen(spawner Spawner) *Opened {
	switch st := e.State.(type) {
	case Unopened:
		spawner.Spawn(e.Path)
		e.State = Waiting(st)
	case *Opened:
		return st
	}
	return nil
}

func (e *Entry) Opened() (*Opened, bool) {
	o, ok := e.State.(*Opened)
	return o, ok
}

// SelectOnOpen returns the pending selection hint of an Unopened or Waiting entry.
func (e *Entry) SelectOnOpen() string {
	switch st := e.State.(type) {
	case Unopened:
		return st.SelectOnOpen
	case Waiting:
		return st.SelectOnOpen
	}
	return ""
}

// SetSelectOnOpen replaces the hint of an entry whose listing has not arrived yet.
func (e *Entry) SetSelectOnOpen(path string) {
	switch e.State.(type) {
	case Unopened:
		e.State = Unopened{SelectOnOpen: path}
	case Waiting:
		e.State = Waiting{SelectOnOpen: path}
	}
}

// IsTerminal reports whether no columns can follow this entry.
func (e *Entry) IsTerminal() bool {
	switch st := e.State.(type) {
	case File, PermissionDenied, Deleting:
		return true
	case *Opened:
		return st.Selected == nil
	}
	return false
}

func (e *Entry) Kind() string {
	return KindOf(e.State)
}

func KindOf(s State) string {
	switch s.(type) {
	case File:
		return "file"
	case Unopened:
		return "unopened"
	case Waiting:
		return "waiting"
	case *Opened:
		return "opened"
	case PermissionDenied:
		return "permission_denied"
	case Deleting:
		return "deleting"
	}
	return "unknown"
}
