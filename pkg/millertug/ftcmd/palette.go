// Package ftcmd implements the command palette shown under the columns:
// the delete prompt with name completion, and the error banner.
package ftcmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/filetug/millertug/pkg/files"
	"github.com/filetug/millertug/pkg/millertug/ftentry"
	"github.com/gdamore/tcell/v2"
)

// DeletePrefix is printed in front of the delete target.
const DeletePrefix = ":delete "

var ErrNothingToDelete = errors.New("nothing selected to delete")

var canonicalizeParent = files.CanonicalizeParent

// Target is the part of the navigator the palette drives.
type Target interface {
	FocusedEntry() (*ftentry.Entry, bool)
	DeleteTarget() (string, bool)
	DeletePath(path string) error
}

type Mode int

const (
	ModeEmpty Mode = iota
	ModeError
	ModeDelete
)

func (m Mode) String() string {
	switch m {
	case ModeError:
		return "error"
	case ModeDelete:
		return "delete"
	default:
		return "empty"
	}
}

type Palette struct {
	mode      Mode
	err       error
	showUntil time.Time

	// typed is false until the user edits the default delete target.
	typed      bool
	query      string
	candidates []string
	candidate  int

	errorDisplay time.Duration
	now          func() time.Time
}

type PaletteOption func(p *Palette)

func WithClock(now func() time.Time) PaletteOption {
	return func(p *Palette) {
		p.now = now
	}
}

func NewPalette(errorDisplay time.Duration, options ...PaletteOption) *Palette {
	p := &Palette{errorDisplay: errorDisplay, now: time.Now, candidate: -1}
	for _, o := range options {
		o(p)
	}
	return p
}

func (p *Palette) Mode() Mode           { return p.mode }
func (p *Palette) IsEmpty() bool        { return p.mode == ModeEmpty }
func (p *Palette) Err() error           { return p.err }
func (p *Palette) Input() string        { return p.input() }
func (p *Palette) Candidates() []string { return p.candidates }

func (p *Palette) input() string {
	if p.candidate >= 0 {
		return p.candidates[p.candidate]
	}
	return p.query
}

func (p *Palette) reset() {
	p.mode = ModeEmpty
	p.err = nil
	p.typed = false
	p.query = ""
	p.resetCompletion()
}

func (p *Palette) resetCompletion() {
	p.candidates = nil
	p.candidate = -1
}

// OpenDelete starts a delete prompt targeting the current selection.
func (p *Palette) OpenDelete() {
	p.reset()
	p.mode = ModeDelete
}

// ShowError replaces the palette with an error banner.
func (p *Palette) ShowError(err error) {
	if err == nil {
		return
	}
	p.reset()
	p.mode = ModeError
	p.err = err
	p.showUntil = p.now().Add(p.errorDisplay)
}

// Expire clears an error banner whose time is up and reports whether it did.
func (p *Palette) Expire(now time.Time) bool {
	if p.mode != ModeError || now.Before(p.showUntil) {
		return false
	}
	p.reset()
	return true
}

// Line is the text to print in the palette row.
func (p *Palette) Line(target Target) string {
	switch p.mode {
	case ModeError:
		return p.err.Error()
	case ModeDelete:
		if p.typed {
			return DeletePrefix + p.input()
		}
		if path, ok := target.DeleteTarget(); ok {
			return DeletePrefix + filepath.Base(path)
		}
		return DeletePrefix
	default:
		return ""
	}
}

// HandleKey consumes keys while a prompt is open. An error banner only
// consumes Esc and lets everything else through to navigation.
func (p *Palette) HandleKey(ev *tcell.EventKey, target Target) (handled bool, err error) {
	switch p.mode {
	case ModeError:
		if ev.Key() == tcell.KeyEscape {
			p.reset()
			return true, nil
		}
		return false, nil
	case ModeDelete:
	default:
		return false, nil
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		p.reset()
	case tcell.KeyEnter:
		return true, p.execute(target)
	case tcell.KeyTab:
		p.complete(target, true)
	case tcell.KeyBacktab:
		p.complete(target, false)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		p.query = p.input()
		p.typed = true
		if r := []rune(p.query); len(r) > 0 {
			p.query = string(r[:len(r)-1])
		}
		p.resetCompletion()
	case tcell.KeyRune:
		p.query = p.input() + string(ev.Rune())
		p.typed = true
		p.resetCompletion()
	}
	return true, nil
}

func (p *Palette) execute(target Target) error {
	typed, input := p.typed, strings.TrimSpace(p.input())
	p.reset()

	if !typed {
		path, ok := target.DeleteTarget()
		if !ok {
			return ErrNothingToDelete
		}
		return target.DeletePath(path)
	}
	if input == "" {
		return ErrNothingToDelete
	}
	if !filepath.IsAbs(input) {
		if dir, _, ok := focusedListing(target); ok {
			input = filepath.Join(dir, input)
		}
	}
	path, err := canonicalizeParent(input)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", input, err)
	}
	return target.DeletePath(path)
}

// complete fills candidates from the focused directory on first use and
// cycles through them afterwards.
func (p *Palette) complete(target Target, next bool) {
	if len(p.candidates) == 0 {
		_, names, ok := focusedListing(target)
		if !ok {
			return
		}
		query := ""
		if p.typed {
			query = p.query
		}
		for _, name := range names {
			if strings.HasPrefix(name, query) {
				p.candidates = append(p.candidates, name)
			}
		}
		if len(p.candidates) == 0 {
			return
		}
		p.typed = true
		p.query = query
		p.candidate = -1
	}
	n := len(p.candidates)
	switch {
	case p.candidate < 0 && next:
		p.candidate = 0
	case p.candidate < 0:
		p.candidate = n - 1
	case next:
		p.candidate = (p.candidate + 1) % n
	default:
		p.candidate = (p.candidate + n - 1) % n
	}
}

// focusedListing returns the directory relative names resolve against and
// its child names, when the focused column is a listing.
func focusedListing(target Target) (dir string, names []string, ok bool) {
	e, ok := target.FocusedEntry()
	if !ok {
		return "", nil, false
	}
	opened, ok := e.Opened()
	if !ok {
		return "", nil, false
	}
	names = make([]string, len(opened.Entries))
	for i, child := range opened.Entries {
		names[i] = filepath.Base(child)
	}
	return e.Path, names, true
}
