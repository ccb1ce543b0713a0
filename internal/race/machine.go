package race

import (
	"errors"
	"fmt"

	"github.com/KGrykiel/eriast-derby/internal/data"
	"github.com/KGrykiel/eriast-derby/internal/dice"
	"github.com/KGrykiel/eriast-derby/internal/event"
	"github.com/KGrykiel/eriast-derby/internal/rules"
	"github.com/KGrykiel/eriast-derby/internal/vehicle"
)

// ErrInvalidState signals state-machine misuse: resuming while not paused,
// acting outside the player pause point, or touching a finished race.
var ErrInvalidState = errors.New("invalid state machine transition")

// Machine owns the turn phase context and drives the handler chain. Each Run
// or Resume call cascades synchronously through phases until a handler
// signals a pause (player input) or the terminal GameOver stop.
//
// The machine is single-threaded and re-entrant only through Resume; callers
// must debounce their own input.
type Machine struct {
	ctx      Context
	order    []*vehicle.Vehicle
	track    data.Track
	roller   *dice.Roller
	registry *rules.Registry
	sink     event.Sink
	handlers map[Phase]Handler

	running bool
	paused  bool
	winner  *vehicle.Vehicle
}

// NewMachine wires a race over the given turn order and track. The event
// sink receives every structured notification; pass nil to discard them.
func NewMachine(order []*vehicle.Vehicle, track data.Track, roller *dice.Roller, registry *rules.Registry, sink event.Sink) (*Machine, error) {
	if len(order) == 0 {
		return nil, fmt.Errorf("race needs at least one vehicle")
	}
	if roller == nil {
		roller = dice.New()
	}
	if sink == nil {
		sink = event.NopSink{}
	}

	m := &Machine{
		ctx:      Context{Round: 1, Phase: PhaseRoundStart},
		order:    order,
		track:    track,
		roller:   roller,
		registry: registry,
		sink:     sink,
	}
	m.handlers = map[Phase]Handler{
		PhaseRoundStart:   &roundStartHandler{m},
		PhaseTurnStart:    &turnStartHandler{m},
		PhasePlayerAction: &playerActionHandler{},
		PhaseAIAction:     &aiActionHandler{m},
		PhaseTurnEnd:      &turnEndHandler{m},
		PhaseRoundEnd:     &roundEndHandler{m},
		PhaseGameOver:     &gameOverHandler{m},
	}
	return m, nil
}

// Run starts or continues the phase loop from the current phase. It returns
// once the machine pauses for player input or the race is over.
func (m *Machine) Run() error {
	if m.ctx.GameOver {
		return fmt.Errorf("%w: race is over", ErrInvalidState)
	}
	if m.running {
		return fmt.Errorf("%w: already running", ErrInvalidState)
	}
	if m.paused {
		return fmt.Errorf("%w: paused for player input, use Resume", ErrInvalidState)
	}
	return m.loop()
}

// Resume explicitly sets the phase and restarts the loop. This is how the
// PlayerAction pause is lifted once external input has been handled.
func (m *Machine) Resume(next Phase) error {
	if m.ctx.GameOver {
		return fmt.Errorf("%w: race is over", ErrInvalidState)
	}
	if m.running {
		return fmt.Errorf("%w: already running", ErrInvalidState)
	}
	if !m.paused {
		return fmt.Errorf("%w: machine is not paused", ErrInvalidState)
	}
	m.paused = false
	m.setPhase(next)
	return m.loop()
}

// loop invokes handlers until one declines to produce a next phase. This is
// the only legitimate suspension point.
func (m *Machine) loop() error {
	m.running = true
	m.ctx.ShouldRefresh = false
	defer func() { m.running = false }()

	for {
		h, ok := m.handlers[m.ctx.Phase]
		if !ok {
			return fmt.Errorf("no handler registered for phase %s", m.ctx.Phase)
		}
		next, cont := h.Execute(&m.ctx)
		if !cont {
			if !m.ctx.GameOver {
				m.paused = true
			}
			return nil
		}
		m.setPhase(next)
	}
}

func (m *Machine) setPhase(next Phase) {
	if m.ctx.Phase != next {
		m.sink.Emit(&event.PhaseChangedEvent{From: string(m.ctx.Phase), To: string(next)})
	}
	m.ctx.Phase = next
}

// advanceTurn moves the turn index to the next slot and reports whether the
// round rolled over. Both the TurnStart skip path and TurnEnd use this one
// operation so rollover detection lives in a single place.
func (m *Machine) advanceTurn() bool {
	m.ctx.TurnIndex++
	if m.ctx.TurnIndex >= len(m.order) {
		m.ctx.TurnIndex = 0
		return true
	}
	return false
}

func shouldSkipTurn(v *vehicle.Vehicle) bool {
	return !v.IsOperational()
}

func (m *Machine) operationalCount() int {
	n := 0
	for _, v := range m.order {
		if v.IsOperational() {
			n++
		}
	}
	return n
}

func (m *Machine) lastOperational() *vehicle.Vehicle {
	for _, v := range m.order {
		if v.IsOperational() {
			return v
		}
	}
	return nil
}

// CurrentPhase is a read-only query for callers tracking pause state.
func (m *Machine) CurrentPhase() Phase { return m.ctx.Phase }

// CurrentActor returns the vehicle whose turn the index points at.
func (m *Machine) CurrentActor() *vehicle.Vehicle { return m.order[m.ctx.TurnIndex] }

// Round returns the current round number.
func (m *Machine) Round() int { return m.ctx.Round }

// IsGameOver reports whether the terminal phase has executed.
func (m *Machine) IsGameOver() bool { return m.ctx.GameOver }

// IsPaused reports whether the machine is suspended for player input.
func (m *Machine) IsPaused() bool { return m.paused }

// Winner returns the winning vehicle once the race is over, or nil.
func (m *Machine) Winner() *vehicle.Vehicle { return m.winner }

// Vehicles returns the full turn order, wrecks included.
func (m *Machine) Vehicles() []*vehicle.Vehicle { return m.order }

// ShouldRefresh reports whether the last Run/Resume changed visible state.
func (m *Machine) ShouldRefresh() bool { return m.ctx.ShouldRefresh }
