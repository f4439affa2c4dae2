// Package ftui draws the navigator state onto a tcell screen.
package ftui

import (
	"bytes"
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/filetug/millertug/pkg/chroma2tcell"
	"github.com/filetug/millertug/pkg/files"
	"github.com/filetug/millertug/pkg/millertug/ftcmd"
	"github.com/filetug/millertug/pkg/millertug/ftnav"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// lstater is implemented by stores that can tell symlinks apart.
type lstater interface {
	Lstat(path string) (fs.FileInfo, error)
}

// Frame is everything one redraw needs.
type Frame struct {
	Columns     []ftnav.Column
	Required    int
	Margin      int
	Palette     string
	PaletteMode ftcmd.Mode
	// Status is shown in the palette row while the palette is empty.
	Status string
}

type Renderer struct {
	fs           files.Store
	previewBytes int
	previews     map[string][]string
	printer      *message.Printer
	logger       *zap.Logger
}

type RendererOption func(r *Renderer)

func WithLogger(logger *zap.Logger) RendererOption {
	return func(r *Renderer) {
		r.logger = logger
	}
}

func WithLanguage(tag language.Tag) RendererOption {
	return func(r *Renderer) {
		r.printer = message.NewPrinter(tag)
	}
}

func NewRenderer(store files.Store, previewBytes int, options ...RendererOption) *Renderer {
	r := &Renderer{
		fs:           store,
		previewBytes: previewBytes,
		previews:     make(map[string][]string),
		printer:      message.NewPrinter(language.English),
		logger:       zap.NewNop(),
	}
	for _, o := range options {
		o(r)
	}
	return r
}

// Draw clears the screen, lays out the columns and the palette row, and shows the result.
func (r *Renderer) Draw(screen tcell.Screen, f Frame) {
	screen.Clear()
	screen.HideCursor()
	width, height := screen.Size()
	if width <= 0 || height <= 0 {
		return
	}

	visible := make(map[string]bool, len(f.Columns))
	flex := tview.NewFlex()
	for i := 0; i < max(f.Required, len(f.Columns)); i++ {
		if i >= len(f.Columns) {
			flex.AddItem(tview.NewBox(), 0, 1, false)
			continue
		}
		col := f.Columns[i]
		visible[col.Entry.Path] = true
		flex.AddItem(r.newColumn(col.Entry, col.Focused, f.Margin), 0, 1, false)
	}
	flex.SetRect(0, 0, width, height-1)
	flex.Draw(screen)

	r.drawPalette(screen, f, height-1, width)

	for path := range r.previews {
		if !visible[path] {
			delete(r.previews, path)
		}
	}
	screen.Show()
}

func (r *Renderer) drawPalette(screen tcell.Screen, f Frame, y, width int) {
	switch f.PaletteMode {
	case ftcmd.ModeError:
		tview.Print(screen, tview.Escape(f.Palette), 0, y, width, tview.AlignLeft, tcell.ColorRed)
	case ftcmd.ModeDelete:
		text := tview.Escape(f.Palette)
		tview.Print(screen, text, 0, y, width, tview.AlignLeft, tcell.ColorWhite)
		screen.ShowCursor(min(tview.TaggedStringWidth(text), width-1), y)
	default:
		tview.Print(screen, tview.Escape(f.Status), 0, y, width, tview.AlignLeft, tcell.ColorGray)
	}
}

func (r *Renderer) childStyle(path string) nameStyle {
	name := filepath.Base(path)
	if st, ok := r.fs.(lstater); ok {
		info, err := st.Lstat(path)
		if err != nil {
			return nameStyle{color: missingColor}
		}
		return styleForMode(name, info.Mode())
	}
	if r.fs.IsDir(path) {
		return styleForMode(name, fs.ModeDir)
	}
	return styleForMode(name, 0)
}

// preview returns the highlighted head of a file, cached while it stays visible.
func (r *Renderer) preview(path string) []string {
	if lines, ok := r.previews[path]; ok {
		return lines
	}
	lines := r.loadPreview(path)
	r.previews[path] = lines
	return lines
}

func (r *Renderer) loadPreview(path string) []string {
	data, err := r.fs.ReadFile(context.Background(), path, r.previewBytes)
	if err != nil {
		r.logger.Debug("failed to read preview", zap.String("path", path), zap.Error(err))
		return []string{"[gray]" + tview.Escape(err.Error())}
	}
	if len(data) == 0 {
		return nil
	}
	if len(data) == r.previewBytes {
		// drop a rune cut in half by the limit
		for i := 1; i < utf8.UTFMax && !utf8.Valid(data); i++ {
			data = data[:len(data)-1]
		}
	}
	if bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data) {
		return []string{"[gray]binary file"}
	}
	text := strings.ReplaceAll(string(data), "\t", "    ")
	lines, err := chroma2tcell.Preview(filepath.Base(path), text)
	if err != nil {
		r.logger.Debug("failed to highlight preview", zap.String("path", path), zap.Error(err))
		return strings.Split(tview.Escape(text), "\n")
	}
	return lines
}
