// Package chroma2tcell turns chroma tokens into tview color-tagged lines.
package chroma2tcell

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/rivo/tview"
)

const DefaultStyle = "dracula"

var getStyle = styles.Get

var getFallbackStyle = func() *chroma.Style {
	return styles.Fallback
}

var matchLexer = lexers.Match

// Colorize tokenises text and returns one tagged line per source line.
// Every line closes its own tags so lines can be printed independently.
func Colorize(text, styleName string, lexer chroma.Lexer) ([]string, error) {
	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return nil, err
	}

	style := getStyle(styleName)
	if style == nil {
		style = getFallbackStyle()
	}

	var lines []string
	var sb strings.Builder
	for _, token := range iterator.Tokens() {
		tag := tagFor(style.Get(token.Type))
		for i, segment := range strings.Split(token.Value, "\n") {
			if i > 0 {
				lines = append(lines, sb.String())
				sb.Reset()
			}
			if segment == "" {
				continue
			}
			if tag == "" {
				sb.WriteString(tview.Escape(segment))
				continue
			}
			sb.WriteString(tag)
			sb.WriteString(tview.Escape(segment))
			sb.WriteString("[-::-]")
		}
	}
	if sb.Len() > 0 {
		lines = append(lines, sb.String())
	}
	return lines, nil
}

func tagFor(entry chroma.StyleEntry) string {
	if entry.IsZero() {
		return ""
	}
	fg := "-"
	if entry.Colour.IsSet() {
		fg = entry.Colour.String()
	}
	var attrs string
	if entry.Bold == chroma.Yes {
		attrs += "b"
	}
	if entry.Italic == chroma.Yes {
		attrs += "i"
	}
	if entry.Underline == chroma.Yes {
		attrs += "u"
	}
	if attrs == "" {
		if fg == "-" {
			return ""
		}
		return "[" + fg + "]"
	}
	return "[" + fg + "::" + attrs + "]"
}

// Preview highlights text using the lexer registered for the file name,
// or returns it escaped line by line when none matches.
func Preview(fileName, text string) ([]string, error) {
	lexer := matchLexer(fileName)
	if lexer == nil {
		lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
		for i, line := range lines {
			lines[i] = tview.Escape(line)
		}
		return lines, nil
	}
	return Colorize(text, DefaultStyle, chroma.Coalesce(lexer))
}
