package ftloop

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionForKey(t *testing.T) {
	t.Parallel()
	for _, tt := range []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"h", tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone), NavigateLeft},
		{"l", tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone), NavigateRight},
		{"k", tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone), SelectUp},
		{"j", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), SelectDown},
		{"d", tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), DeleteRequest},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), Quit},
		{"alt_h", tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModAlt), ActionNone},
		{"unmapped_rune", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), ActionNone},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), NavigateLeft},
		{"right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), NavigateRight},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), SelectUp},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), SelectDown},
		{"delete", tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone), DeleteRequest},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Cancel},
		{"ctrl_c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), Quit},
		{"f1", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), ActionNone},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ActionForKey(tt.ev)
			assert.Equal(t, tt.want, got, got.String())
		})
	}
}

func TestAction_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "navigate_left", NavigateLeft.String())
	assert.Equal(t, "delete_request", DeleteRequest.String())
	assert.Equal(t, "none", ActionNone.String())
}

type fakeSource struct {
	events []tcell.Event
}

func (s *fakeSource) PollEvent() tcell.Event {
	if len(s.events) == 0 {
		return nil
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev
}

func TestPumpEvents(t *testing.T) {
	t.Parallel()
	src := &fakeSource{events: []tcell.Event{
		tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone),
		tcell.NewEventResize(80, 24),
	}}
	events := PumpEvents(src, 4)

	var got []tcell.Event
	for ev := range events {
		got = append(got, ev)
	}
	require.Len(t, got, 2)
	assert.IsType(t, &tcell.EventKey{}, got[0])
	assert.IsType(t, &tcell.EventResize{}, got[1])
}
