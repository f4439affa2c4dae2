package ftloop

import (
	"github.com/gdamore/tcell/v2"
)

// EventSource is the part of tcell.Screen the input pump reads from.
type EventSource interface {
	PollEvent() tcell.Event
}

// PumpEvents forwards terminal events to a buffered channel until the
// screen is finalized. The channel is closed when the source stops.
func PumpEvents(src EventSource, buffer int) <-chan tcell.Event {
	events := make(chan tcell.Event, buffer)
	go func() {
		defer close(events)
		for {
			ev := src.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()
	return events
}
