package snake

import (
	"context"
	"sync"
	"time"

	"github.com/vovakirdan/snakeboard/internal/core"
)

// Event is emitted by a Runner after every tick.
type Event interface {
	isEvent()
}

// StateEvent carries the board after a non-terminal tick (and once at start).
type StateEvent struct {
	Outcome  Outcome
	Snapshot Snapshot
}

func (StateEvent) isEvent() {}

// GameOverEvent is the last event of a game.
type GameOverEvent struct {
	Score    int
	Reason   Reason
	Snapshot Snapshot
}

func (GameOverEvent) isEvent() {}

// Runner drives one State on a timer whose period follows the speed ramp.
// All mutation happens on the goroutine that calls Run; Steer only drops an
// intent into a one-slot mailbox.
type Runner struct {
	state *State
	speed SpeedConfig

	steer    chan core.Direction
	events   chan Event
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	final Snapshot
}

// NewRunner creates a runner. eventBufferSize controls how many events can
// be buffered before the oldest ones are dropped.
func NewRunner(state *State, speed SpeedConfig, eventBufferSize int) *Runner {
	if eventBufferSize < 1 {
		eventBufferSize = 16
	}
	return &Runner{
		state:  state,
		speed:  speed,
		steer:  make(chan core.Direction, 1),
		events: make(chan Event, eventBufferSize),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Events returns the event stream. It is closed when Run returns.
func (r *Runner) Events() <-chan Event {
	return r.events
}

// Done returns a channel that closes when Run has returned.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Steer queues a direction intent for the next tick. A newer intent replaces
// an unconsumed older one.
func (r *Runner) Steer(d core.Direction) {
	select {
	case <-r.done:
		return
	default:
	}

	for {
		select {
		case r.steer <- d:
			return
		default:
		}
		// Mailbox full: discard the stale intent and retry
		select {
		case <-r.steer:
		default:
		}
	}
}

// Stop ends the loop without emitting a game over. Safe to call multiple times.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		close(r.stop)
	})
}

// Final returns the last snapshot. Only meaningful after Done is closed.
func (r *Runner) Final() Snapshot {
	return r.final
}

// Run executes the tick loop until the game ends, ctx is cancelled or Stop
// is called.
func (r *Runner) Run(ctx context.Context) {
	defer close(r.done)
	defer close(r.events)
	defer func() {
		r.final = r.state.Snapshot()
	}()

	r.emit(StateEvent{Outcome: OutcomeIdle, Snapshot: r.state.Snapshot()})
	if r.state.Status().Terminal() {
		r.emitGameOver()
		return
	}

	timer := time.NewTimer(r.speed.Interval(r.state.Score()))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stop:
			return
		case d := <-r.steer:
			r.state.Steer(d)
		case <-timer.C:
			res := r.state.Tick()
			if r.state.Status().Terminal() {
				r.emitGameOver()
				return
			}
			r.emit(StateEvent{Outcome: res.Outcome, Snapshot: res.Snapshot})
			timer.Reset(r.speed.Interval(r.state.Score()))
		}
	}
}

func (r *Runner) emitGameOver() {
	r.emit(GameOverEvent{
		Score:    r.state.Score(),
		Reason:   r.state.Reason(),
		Snapshot: r.state.Snapshot(),
	})
}

// emit never blocks: when the buffer is full the oldest event is dropped.
func (r *Runner) emit(evt Event) {
	select {
	case r.events <- evt:
		return
	default:
	}
	select {
	case <-r.events:
	default:
	}
	select {
	case r.events <- evt:
	default:
	}
}
