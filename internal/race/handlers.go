package race

import (
	"github.com/KGrykiel/eriast-derby/internal/event"
	"github.com/KGrykiel/eriast-derby/internal/vehicle"
)

// roundStartHandler is the round bootstrap. It carries no logic today beyond
// the notification; round-level effects (weather, event cards drawn for the
// whole field) hook in here.
type roundStartHandler struct{ m *Machine }

func (h *roundStartHandler) Execute(ctx *Context) (Phase, bool) {
	h.m.sink.Emit(&event.RoundStartedEvent{Round: ctx.Round})
	return PhaseTurnStart, true
}

// turnStartHandler regenerates resources, resets per-turn flags, applies
// start-of-turn hazards, and routes by control type. Skipped actors advance
// the turn index through the same operation TurnEnd uses.
type turnStartHandler struct{ m *Machine }

func (h *turnStartHandler) Execute(ctx *Context) (Phase, bool) {
	m := h.m

	if next, decided := m.checkVictory(); decided {
		return next, true
	}

	actor := m.CurrentActor()
	if shouldSkipTurn(actor) {
		if m.advanceTurn() {
			return PhaseRoundEnd, true
		}
		return PhaseTurnStart, true
	}

	actor.BeginTurn()
	if gained := actor.Regenerate(); gained > 0 {
		m.sink.Emit(&event.EnergyChangedEvent{
			VehicleID: actor.ID, Name: actor.Name,
			Amount: gained, Energy: actor.Energy, Reason: actor.Core.Name,
		})
	}

	m.applyStageHazards(actor, ctx.Round)
	if !actor.IsOperational() {
		// Destroyed by a start-of-turn hazard: the turn never happens.
		if m.advanceTurn() {
			return PhaseRoundEnd, true
		}
		return PhaseTurnStart, true
	}

	m.sink.Emit(&event.TurnStartedEvent{
		VehicleID: actor.ID, Name: actor.Name,
		Stage: actor.Stage, Energy: actor.Energy,
	})
	ctx.ShouldRefresh = true

	if actor.Control == vehicle.ControlPlayer {
		return PhasePlayerAction, true
	}
	return PhaseAIAction, true
}

// playerActionHandler is the pause point. Control returns to the caller,
// who lifts the pause through the machine's player action methods.
type playerActionHandler struct{}

func (h *playerActionHandler) Execute(ctx *Context) (Phase, bool) {
	return "", false
}

// aiActionHandler executes automatic decisions synchronously: fire at a
// random operational target when the weapon is affordable, otherwise drive.
type aiActionHandler struct{ m *Machine }

func (h *aiActionHandler) Execute(ctx *Context) (Phase, bool) {
	m := h.m
	actor := m.CurrentActor()

	target := m.chooseTarget(actor)
	canShoot := target != nil && actor.Weapon != nil && actor.Energy >= actor.Weapon.EnergyCost
	if canShoot {
		if err := m.attack(actor, target); err != nil {
			m.sink.Emit(&event.WarningEvent{Context: actor.Name, Detail: err.Error()})
			m.move(actor)
		}
	} else {
		m.move(actor)
	}
	return PhaseTurnEnd, true
}

// turnEndHandler forces movement for idle actors, checks victory, and
// advances the turn index.
type turnEndHandler struct{ m *Machine }

func (h *turnEndHandler) Execute(ctx *Context) (Phase, bool) {
	m := h.m
	actor := m.CurrentActor()

	forced := false
	if actor.IsOperational() && !actor.HasActedThisTurn && !actor.HasMovedThisTurn {
		m.move(actor)
		forced = true
	}
	m.sink.Emit(&event.TurnEndedEvent{VehicleID: actor.ID, Name: actor.Name, Forced: forced})
	ctx.ShouldRefresh = true

	if actor.IsOperational() && actor.Stage >= m.track.TotalLength() {
		m.winner = actor
		return PhaseGameOver, true
	}
	if next, decided := m.checkVictory(); decided {
		return next, true
	}

	if m.advanceTurn() {
		return PhaseRoundEnd, true
	}
	return PhaseTurnStart, true
}

// roundEndHandler is the only place the round counter increments.
type roundEndHandler struct{ m *Machine }

func (h *roundEndHandler) Execute(ctx *Context) (Phase, bool) {
	h.m.sink.Emit(&event.RoundEndedEvent{Round: ctx.Round})
	ctx.Round++
	return PhaseRoundStart, true
}

// gameOverHandler is terminal: it raises the monotonic game-over flag and
// stops the loop permanently.
type gameOverHandler struct{ m *Machine }

func (h *gameOverHandler) Execute(ctx *Context) (Phase, bool) {
	ctx.GameOver = true
	ctx.ShouldRefresh = true
	winner := ""
	if h.m.winner != nil {
		winner = h.m.winner.Name
	}
	h.m.sink.Emit(&event.GameOverEvent{Winner: winner, Rounds: ctx.Round})
	return "", false
}

// checkVictory decides destruction-based race endings: everyone wrecked, or
// a single survivor in a contested race. Crossing the finish line is checked
// separately at TurnEnd.
func (m *Machine) checkVictory() (Phase, bool) {
	alive := m.operationalCount()
	if alive == 0 {
		return PhaseGameOver, true
	}
	if alive == 1 && len(m.order) > 1 {
		m.winner = m.lastOperational()
		return PhaseGameOver, true
	}
	return "", false
}
