package ftentry

import (
	"slices"
)

// Opened is a directory listing with an optional cursor.
// Selected is nil exactly when Entries is empty.
type Opened struct {
	Entries  []string
	Selected *Selected
}

type Selected struct {
	Index int
	// Offset is the first row shown in the column.
	Offset int
}

// NewOpened sorts children and selects selectOnOpen if present, else the first child.
func NewOpened(children []string, selectOnOpen string) *Opened {
	slices.Sort(children)
	o := &Opened{Entries: children}
	if len(children) == 0 {
		return o
	}
	var index int
	if selectOnOpen != "" {
		if i, found := slices.BinarySearch(children, selectOnOpen); found {
			index = i
		}
	}
	o.Selected = &Selected{Index: index}
	return o
}

func (o *Opened) SelectedPath() (string, bool) {
	if o.Selected == nil {
		return "", false
	}
	return o.Entries[o.Selected.Index], true
}

func (o *Opened) SelectUp() bool {
	if o.Selected == nil {
		return false
	}
	if o.Selected.Index == 0 {
		o.Selected.Index = len(o.Entries) - 1
	} else {
		o.Selected.Index--
	}
	return true
}

func (o *Opened) SelectDown() bool {
	if o.Selected == nil {
		return false
	}
	o.Selected.Index = (o.Selected.Index + 1) % len(o.Entries)
	return true
}

// SetSelectedEntry moves the cursor to path, keeping the scroll offset.
func (o *Opened) SetSelectedEntry(path string) bool {
	i := slices.Index(o.Entries, path)
	if i < 0 || o.Selected == nil {
		return false
	}
	o.Selected.Index = i
	return true
}

// GenerateListState recomputes the scroll offset for a column of height rows
// keeping margin rows visible around the selection, and returns it.
func (o *Opened) GenerateListState(height, margin int) int {
	if o.Selected == nil {
		return 0
	}
	height = max(height, 1)
	margin = max(min(margin, (height-1)/2), 0)
	sel := o.Selected
	if sel.Offset+margin > sel.Index {
		sel.Offset = max(sel.Index-margin, 0)
	} else if sel.Index+margin >= sel.Offset+height {
		sel.Offset = sel.Index + margin - height + 1
	}
	sel.Offset = min(sel.Offset, max(len(o.Entries)-height, 0))
	return sel.Offset
}

// Remove drops path from the listing. A removed selection moves to the entry
// now at the same index, wrapping to the first one.
func (o *Opened) Remove(path string) bool {
	i := slices.Index(o.Entries, path)
	if i < 0 {
		return false
	}
	o.Entries = slices.Delete(o.Entries, i, i+1)
	if len(o.Entries) == 0 {
		o.Selected = nil
		return true
	}
	if o.Selected == nil {
		o.Selected = &Selected{}
		return true
	}
	switch {
	case i < o.Selected.Index:
		o.Selected.Index--
	case o.Selected.Index >= len(o.Entries):
		o.Selected.Index = 0
	}
	o.Selected.Offset = min(o.Selected.Offset, len(o.Entries)-1)
	return true
}

// Insert adds path in sorted position keeping the current selection.
func (o *Opened) Insert(path string) bool {
	i, found := slices.BinarySearch(o.Entries, path)
	if found {
		return false
	}
	o.Entries = slices.Insert(o.Entries, i, path)
	if o.Selected == nil {
		o.Selected = &Selected{Index: i}
	} else if i <= o.Selected.Index {
		o.Selected.Index++
	}
	return true
}
