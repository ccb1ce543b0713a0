package race

// Phase is a named stage of a single vehicle's turn or a round boundary.
type Phase string

const (
	PhaseRoundStart   Phase = "RoundStart"
	PhaseTurnStart    Phase = "TurnStart"
	PhasePlayerAction Phase = "PlayerAction"
	PhaseAIAction     Phase = "AIAction"
	PhaseTurnEnd      Phase = "TurnEnd"
	PhaseRoundEnd     Phase = "RoundEnd"
	PhaseGameOver     Phase = "GameOver"
)

// Context is the data bundle phase handlers read and write. It is owned by
// exactly one Machine and passed to handlers for the duration of a single
// Execute call; handlers must not retain it.
type Context struct {
	// Round starts at 1 and strictly increases at the RoundEnd boundary.
	Round int
	// TurnIndex cycles over the turn order.
	TurnIndex int
	// Phase is the currently executing phase.
	Phase Phase
	// GameOver is monotonic: once true it never reverts.
	GameOver bool
	// ShouldRefresh tells the presentation layer something visible changed.
	// Reset at the start of every Run/Resume call.
	ShouldRefresh bool
}

// Handler advances the state machine by one phase. The second return value
// is false when the machine must suspend (player input pending, or the
// terminal GameOver stop).
type Handler interface {
	Execute(ctx *Context) (Phase, bool)
}
