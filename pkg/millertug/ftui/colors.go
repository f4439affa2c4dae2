package ftui

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
)

var fileColors = map[string]tcell.Color{
	"exe":  tcell.ColorRed,
	"go":   tcell.ColorAqua,
	"rs":   tcell.ColorOrange,
	"c":    tcell.ColorDodgerBlue,
	"h":    tcell.ColorDodgerBlue,
	"cpp":  tcell.ColorDodgerBlue,
	"js":   tcell.ColorYellow,
	"ts":   tcell.ColorDeepSkyBlue,
	"py":   tcell.ColorLightGreen,
	"sh":   tcell.ColorGreen,
	"html": tcell.ColorOrangeRed,
	"css":  tcell.ColorViolet,
	"json": tcell.ColorGold,
	"yaml": tcell.ColorLightYellow,
	"yml":  tcell.ColorLightYellow,
	"toml": tcell.ColorLightYellow,
	"md":   tcell.ColorBisque,
	"txt":  tcell.ColorWhite,
	"log":  tcell.ColorRosyBrown,
	"png":  tcell.ColorMediumPurple,
	"jpg":  tcell.ColorMediumPurple,
	"gif":  tcell.ColorMediumPurple,
	"mp4":  tcell.ColorLightSalmon,
	"zip":  tcell.ColorIndianRed,
	"gz":   tcell.ColorIndianRed,
}

const (
	dirColor     = tcell.ColorBlue
	symlinkColor = tcell.ColorLightGreen
	missingColor = tcell.ColorGray
	unfocusedBg  = tcell.ColorDarkSlateGray
)

// ColorByFileExt is the listing color of a regular file.
func ColorByFileExt(name string) tcell.Color {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if color, ok := fileColors[ext]; ok {
		return color
	}
	return tcell.ColorWhiteSmoke
}

type nameStyle struct {
	color tcell.Color
	bold  bool
}

func styleForMode(name string, mode fs.FileMode) nameStyle {
	switch {
	case mode&fs.ModeSymlink != 0:
		return nameStyle{color: symlinkColor}
	case mode.IsDir():
		return nameStyle{color: dirColor, bold: true}
	default:
		return nameStyle{color: ColorByFileExt(name)}
	}
}

// tag renders the style as a tview color tag. A focused selection swaps
// foreground and background.
func (s nameStyle) tag(selected, focused bool) string {
	fg, bg := colorTag(s.color), "-"
	switch {
	case selected && focused:
		fg, bg = "black", colorTag(s.color)
	case selected:
		bg = colorTag(unfocusedBg)
	}
	attrs := "-"
	if s.bold {
		attrs = "b"
	}
	return fmt.Sprintf("[%s:%s:%s]", fg, bg, attrs)
}

func (s nameStyle) rowStyle(focused bool) tcell.Style {
	if focused {
		return tcell.StyleDefault.Background(s.color)
	}
	return tcell.StyleDefault.Background(unfocusedBg)
}

func colorTag(c tcell.Color) string {
	return fmt.Sprintf("#%06x", c.Hex())
}
