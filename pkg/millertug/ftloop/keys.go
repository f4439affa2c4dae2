// Package ftloop drives the browser one fixed-length tick at a time,
// interleaving terminal input with background completions.
package ftloop

import (
	"github.com/gdamore/tcell/v2"
)

// Action is an abstract key the navigator understands.
type Action int

const (
	ActionNone Action = iota
	NavigateLeft
	NavigateRight
	SelectUp
	SelectDown
	DeleteRequest
	Cancel
	Quit
)

func (a Action) String() string {
	switch a {
	case NavigateLeft:
		return "navigate_left"
	case NavigateRight:
		return "navigate_right"
	case SelectUp:
		return "select_up"
	case SelectDown:
		return "select_down"
	case DeleteRequest:
		return "delete_request"
	case Cancel:
		return "cancel"
	case Quit:
		return "quit"
	default:
		return "none"
	}
}

var runeActions = map[rune]Action{
	'h': NavigateLeft,
	'l': NavigateRight,
	'k': SelectUp,
	'j': SelectDown,
	'd': DeleteRequest,
	'q': Quit,
}

var keyActions = map[tcell.Key]Action{
	tcell.KeyLeft:   NavigateLeft,
	tcell.KeyRight:  NavigateRight,
	tcell.KeyUp:     SelectUp,
	tcell.KeyDown:   SelectDown,
	tcell.KeyDelete: DeleteRequest,
	tcell.KeyEscape: Cancel,
	tcell.KeyCtrlC:  Quit,
}

// ActionForKey maps a key press outside the command palette.
func ActionForKey(ev *tcell.EventKey) Action {
	if ev.Key() == tcell.KeyRune {
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return ActionNone
		}
		return runeActions[ev.Rune()]
	}
	return keyActions[ev.Key()]
}
