package ftloop

import (
	"context"
	"time"

	"github.com/filetug/millertug/pkg/metrics"
	"github.com/gdamore/tcell/v2"
)

// TickBudget is the wall-clock length of one tick (about 120Hz).
const TickBudget = 8 * time.Millisecond

type Outcome int

const (
	Nothing Outcome = iota
	Redraw
	Exit
)

func (o Outcome) String() string {
	switch o {
	case Redraw:
		return "redraw"
	case Exit:
		return "exit"
	default:
		return "nothing"
	}
}

// Handler applies input and background completions to the browser state.
type Handler interface {
	HandleEvent(ev tcell.Event) (Outcome, error)
	// PollIO waits up to timeout for one completion and reports whether it applied one.
	PollIO(timeout time.Duration) (bool, error)
	// Expire drops timed-out UI state and reports whether that needs a redraw.
	Expire(now time.Time) bool
}

type Scheduler struct {
	events  <-chan tcell.Event
	handler Handler
	budget  time.Duration
	now     func() time.Time
}

type SchedulerOption func(s *Scheduler)

func WithBudget(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if d > 0 {
			s.budget = d
		}
	}
}

func WithClock(now func() time.Time) SchedulerOption {
	return func(s *Scheduler) {
		s.now = now
	}
}

func NewScheduler(events <-chan tcell.Event, handler Handler, options ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		events:  events,
		handler: handler,
		budget:  TickBudget,
		now:     time.Now,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Tick drains pending input, then waits the rest of the budget for at most
// one background completion. Anything worth a redraw ends the tick early.
func (s *Scheduler) Tick() (Outcome, error) {
	deadline := s.now().Add(s.budget)
	for draining := true; draining; {
		select {
		case ev, ok := <-s.events:
			if !ok {
				return Exit, nil
			}
			outcome, err := s.handler.HandleEvent(ev)
			if err != nil || outcome != Nothing {
				return outcome, err
			}
		default:
			draining = false
		}
	}

	remaining := max(deadline.Sub(s.now()), 0)
	applied, err := s.handler.PollIO(remaining)
	if applied || err != nil {
		return Redraw, err
	}
	if s.handler.Expire(s.now()) {
		return Redraw, nil
	}
	return Nothing, nil
}

// Run ticks until Exit or ctx is done. Errors go to report and do not stop the loop.
func (s *Scheduler) Run(ctx context.Context, draw func(), report func(error)) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		outcome, err := s.Tick()
		metrics.Tick(outcome.String())
		if err != nil {
			report(err)
		}
		switch outcome {
		case Exit:
			return nil
		case Redraw:
			draw()
		}
	}
}
