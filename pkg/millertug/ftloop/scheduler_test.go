package ftloop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandler struct {
	handled  []tcell.Event
	outcomes map[rune]Outcome
	eventErr error

	polled   []time.Duration
	applied  bool
	pollErr  error
	expire   bool
	expireAt []time.Time
}

func (h *fakeHandler) HandleEvent(ev tcell.Event) (Outcome, error) {
	h.handled = append(h.handled, ev)
	if key, ok := ev.(*tcell.EventKey); ok {
		return h.outcomes[key.Rune()], h.eventErr
	}
	return Nothing, h.eventErr
}

func (h *fakeHandler) PollIO(timeout time.Duration) (bool, error) {
	h.polled = append(h.polled, timeout)
	return h.applied, h.pollErr
}

func (h *fakeHandler) Expire(now time.Time) bool {
	h.expireAt = append(h.expireAt, now)
	return h.expire
}

func keyEvent(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

// steppingClock advances by step on every reading.
func steppingClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestScheduler_Tick(t *testing.T) {
	t.Run("idle_tick_polls_with_remaining_budget", func(t *testing.T) {
		h := &fakeHandler{}
		s := NewScheduler(make(chan tcell.Event), h, WithClock(steppingClock(time.Millisecond)))

		outcome, err := s.Tick()
		assert.NoError(t, err)
		assert.Equal(t, Nothing, outcome)
		require.Len(t, h.polled, 1)
		assert.Equal(t, TickBudget-time.Millisecond, h.polled[0])
		assert.Len(t, h.expireAt, 1)
	})

	t.Run("drains_input_until_redraw", func(t *testing.T) {
		events := make(chan tcell.Event, 4)
		events <- keyEvent('x')
		events <- keyEvent('y')
		events <- keyEvent('z')
		h := &fakeHandler{outcomes: map[rune]Outcome{'y': Redraw}}
		s := NewScheduler(events, h)

		outcome, err := s.Tick()
		assert.NoError(t, err)
		assert.Equal(t, Redraw, outcome)
		assert.Len(t, h.handled, 2, "the tick ends at the first redraw")
		assert.Empty(t, h.polled, "no completion wait after a redraw")
		assert.Len(t, events, 1)
	})

	t.Run("unhandled_input_then_poll", func(t *testing.T) {
		events := make(chan tcell.Event, 2)
		events <- keyEvent('x')
		h := &fakeHandler{applied: true}
		s := NewScheduler(events, h)

		outcome, err := s.Tick()
		assert.NoError(t, err)
		assert.Equal(t, Redraw, outcome)
		assert.Len(t, h.handled, 1)
		assert.Len(t, h.polled, 1)
		assert.Empty(t, h.expireAt)
	})

	t.Run("exit", func(t *testing.T) {
		events := make(chan tcell.Event, 1)
		events <- keyEvent('q')
		h := &fakeHandler{outcomes: map[rune]Outcome{'q': Exit}}
		outcome, err := NewScheduler(events, h).Tick()
		assert.NoError(t, err)
		assert.Equal(t, Exit, outcome)
	})

	t.Run("closed_input_exits", func(t *testing.T) {
		events := make(chan tcell.Event)
		close(events)
		outcome, err := NewScheduler(events, &fakeHandler{}).Tick()
		assert.NoError(t, err)
		assert.Equal(t, Exit, outcome)
	})

	t.Run("completion_error_redraws", func(t *testing.T) {
		h := &fakeHandler{pollErr: errors.New("boom")}
		outcome, err := NewScheduler(make(chan tcell.Event), h).Tick()
		assert.EqualError(t, err, "boom")
		assert.Equal(t, Redraw, outcome)
	})

	t.Run("input_error_ends_tick", func(t *testing.T) {
		events := make(chan tcell.Event, 1)
		events <- keyEvent('d')
		h := &fakeHandler{eventErr: errors.New("bad input")}
		_, err := NewScheduler(events, h).Tick()
		assert.EqualError(t, err, "bad input")
		assert.Empty(t, h.polled)
	})

	t.Run("expiry_redraws", func(t *testing.T) {
		h := &fakeHandler{expire: true}
		outcome, err := NewScheduler(make(chan tcell.Event), h).Tick()
		assert.NoError(t, err)
		assert.Equal(t, Redraw, outcome)
	})

	t.Run("overrun_budget_polls_without_waiting", func(t *testing.T) {
		h := &fakeHandler{}
		s := NewScheduler(make(chan tcell.Event), h,
			WithBudget(time.Millisecond),
			WithClock(steppingClock(10*time.Millisecond)),
		)
		_, _ = s.Tick()
		require.Len(t, h.polled, 1)
		assert.Equal(t, time.Duration(0), h.polled[0])
	})
}

func TestScheduler_Run(t *testing.T) {
	t.Run("draws_reports_and_exits", func(t *testing.T) {
		events := make(chan tcell.Event, 3)
		events <- keyEvent('r')
		events <- keyEvent('e')
		events <- keyEvent('q')
		h := &fakeHandler{outcomes: map[rune]Outcome{'r': Redraw, 'e': Redraw, 'q': Exit}}
		var draws int
		var reported []error
		s := NewScheduler(events, h)

		err := s.Run(context.Background(), func() { draws++ }, func(err error) { reported = append(reported, err) })
		assert.NoError(t, err)
		assert.Equal(t, 2, draws)
		assert.Empty(t, reported)
	})

	t.Run("reports_errors", func(t *testing.T) {
		events := make(chan tcell.Event, 1)
		events <- keyEvent('x')
		close(events)
		h := &fakeHandler{eventErr: errors.New("oops")}
		var reported []error
		err := NewScheduler(events, h).Run(context.Background(), func() {}, func(err error) { reported = append(reported, err) })
		assert.NoError(t, err)
		require.Len(t, reported, 1)
		assert.EqualError(t, reported[0], "oops")
	})

	t.Run("context_cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := NewScheduler(make(chan tcell.Event), &fakeHandler{}).Run(ctx, func() {}, func(error) {})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "nothing", Nothing.String())
	assert.Equal(t, "redraw", Redraw.String())
	assert.Equal(t, "exit", Exit.String())
}
