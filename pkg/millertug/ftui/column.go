package ftui

import (
	"path/filepath"

	"github.com/filetug/millertug/pkg/fsutils"
	"github.com/filetug/millertug/pkg/millertug/ftentry"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	loadingLabel          = "loading: "
	emptyDirLabel         = "empty dir: "
	permissionDeniedLabel = "🔒 permission denied: "
	deletingLabel         = "deleting: "
)

// Column draws one entry: a listing, a file preview or a placeholder.
type Column struct {
	*tview.Box
	r       *Renderer
	entry   *ftentry.Entry
	margin  int
	focused bool
}

func (r *Renderer) newColumn(entry *ftentry.Entry, focused bool, margin int) *Column {
	c := &Column{
		Box:     tview.NewBox(),
		r:       r,
		entry:   entry,
		margin:  margin,
		focused: focused,
	}
	c.SetBorder(true).
		SetTitle(r.columnTitle(entry)).
		SetTitleAlign(tview.AlignLeft)
	if focused {
		c.SetBorderColor(tcell.ColorYellow).
			SetTitleColor(tcell.ColorYellow).
			SetBorderAttributes(tcell.AttrBold)
	} else {
		c.SetBorderColor(tcell.ColorGray).
			SetTitleColor(tcell.ColorSilver)
	}
	return c
}

func (r *Renderer) columnTitle(entry *ftentry.Entry) string {
	name := tview.Escape(filepath.Base(entry.Path))
	if opened, ok := entry.Opened(); ok {
		return r.printer.Sprintf(" %s (%d) ", name, len(opened.Entries))
	}
	if _, ok := entry.State.(ftentry.File); ok {
		if st, ok := r.fs.(lstater); ok {
			if info, err := st.Lstat(entry.Path); err == nil && info.Mode().IsRegular() {
				return " " + name + " (" + fsutils.GetSizeShortText(info.Size()) + ") "
			}
		}
	}
	return " " + name + " "
}

func (c *Column) Draw(screen tcell.Screen) {
	c.DrawForSubclass(screen, c)
	x, y, width, height := c.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	switch st := c.entry.State.(type) {
	case ftentry.File:
		for row, line := range c.r.preview(c.entry.Path) {
			if row >= height {
				break
			}
			tview.Print(screen, line, x, y+row, width, tview.AlignLeft, tcell.ColorWhiteSmoke)
		}
	case ftentry.Unopened, ftentry.Waiting:
		c.placeholder(screen, loadingLabel, x, y, width)
	case ftentry.PermissionDenied:
		c.placeholder(screen, permissionDeniedLabel, x, y, width)
	case ftentry.Deleting:
		c.placeholder(screen, deletingLabel, x, y, width)
	case *ftentry.Opened:
		if len(st.Entries) == 0 {
			c.placeholder(screen, emptyDirLabel, x, y, width)
			return
		}
		c.drawListing(screen, st, x, y, width, height)
	}
}

func (c *Column) placeholder(screen tcell.Screen, label string, x, y, width int) {
	tview.Print(screen, tview.Escape(label+c.entry.Path), x, y, width, tview.AlignLeft, tcell.ColorGray)
}

func (c *Column) drawListing(screen tcell.Screen, opened *ftentry.Opened, x, y, width, height int) {
	offset := opened.GenerateListState(height, c.margin)
	for row := 0; row < height && offset+row < len(opened.Entries); row++ {
		i := offset + row
		child := opened.Entries[i]
		style := c.r.childStyle(child)
		selected := opened.Selected != nil && opened.Selected.Index == i
		if selected {
			rowStyle := style.rowStyle(c.focused)
			for col := x; col < x+width; col++ {
				screen.SetContent(col, y+row, ' ', nil, rowStyle)
			}
		}
		line := style.tag(selected, c.focused) + tview.Escape(filepath.Base(child))
		tview.Print(screen, line, x, y+row, width, tview.AlignLeft, style.color)
	}
}
