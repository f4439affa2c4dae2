package ftentry

import (
	"github.com/filetug/millertug/pkg/files"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Store caches entries by canonical path in insertion order.
type Store struct {
	fs      files.Store
	entries *orderedmap.OrderedMap[string, *Entry]
}

func NewStore(fs files.Store) *Store {
	return &Store{
		fs:      fs,
		entries: orderedmap.New[string, *Entry](),
	}
}

func (s *Store) Get(path string) (*Entry, bool) {
	return s.entries.Get(path)
}

// GetOrCreate returns the cached entry or stats path and caches a new one.
func (s *Store) GetOrCreate(path, selectOnOpen string) *Entry {
	if e, ok := s.entries.Get(path); ok {
		return e
	}
	e := New(s.fs, path, selectOnOpen)
	s.entries.Set(path, e)
	return e
}

// Set stores e, replacing an entry with the same path in place.
func (s *Store) Set(e *Entry) {
	s.entries.Set(e.Path, e)
}

func (s *Store) Remove(path string) (*Entry, bool) {
	return s.entries.Delete(path)
}

// RemoveDescendants drops every cached entry below path and returns their paths.
func (s *Store) RemoveDescendants(path string) []string {
	var removed []string
	for pair := s.entries.Oldest(); pair != nil; pair = pair.Next() {
		if files.IsDescendant(pair.Key, path) {
			removed = append(removed, pair.Key)
		}
	}
	for _, p := range removed {
		s.entries.Delete(p)
	}
	return removed
}

func (s *Store) Len() int {
	return s.entries.Len()
}

func (s *Store) Paths() []string {
	paths := make([]string, 0, s.entries.Len())
	for pair := s.entries.Oldest(); pair != nil; pair = pair.Next() {
		paths = append(paths, pair.Key)
	}
	return paths
}
