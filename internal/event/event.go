package event

import (
	"fmt"
	"strings"

	"github.com/KGrykiel/eriast-derby/internal/dice"
)

// Type tags each notification record for serialization and filtering.
type Type string

const (
	TypePhaseChanged     Type = "PhaseChanged"
	TypeRoundStarted     Type = "RoundStarted"
	TypeRoundEnded       Type = "RoundEnded"
	TypeTurnStarted      Type = "TurnStarted"
	TypeTurnEnded        Type = "TurnEnded"
	TypeMovementMade     Type = "MovementMade"
	TypeEnergyChanged    Type = "EnergyChanged"
	TypeDamageResolved   Type = "DamageResolved"
	TypeVehicleDestroyed Type = "VehicleDestroyed"
	TypeHazardTriggered  Type = "HazardTriggered"
	TypeCheckResolved    Type = "CheckResolved"
	TypeGameOver         Type = "GameOver"
	TypeWarning          Type = "Warning"
)

// Event is a structured notification the engine hands to presentation and
// history sinks. The engine never depends on how these are rendered or
// stored.
type Event interface {
	Type() Type
	Message() string
}

// PhaseChangedEvent marks every transition of the turn state machine.
type PhaseChangedEvent struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (e *PhaseChangedEvent) Type() Type { return TypePhaseChanged }
func (e *PhaseChangedEvent) Message() string {
	return fmt.Sprintf("Phase %s -> %s", e.From, e.To)
}

// RoundStartedEvent opens a new round.
type RoundStartedEvent struct {
	Round int `json:"round"`
}

func (e *RoundStartedEvent) Type() Type      { return TypeRoundStarted }
func (e *RoundStartedEvent) Message() string { return fmt.Sprintf("Round %d begins.", e.Round) }

// RoundEndedEvent closes a round after every vehicle has acted or been
// skipped.
type RoundEndedEvent struct {
	Round int `json:"round"`
}

func (e *RoundEndedEvent) Type() Type      { return TypeRoundEnded }
func (e *RoundEndedEvent) Message() string { return fmt.Sprintf("Round %d ends.", e.Round) }

// TurnStartedEvent announces whose turn begins and where they stand.
type TurnStartedEvent struct {
	VehicleID string `json:"vehicle_id"`
	Name      string `json:"name"`
	Stage     int    `json:"stage"`
	Energy    int    `json:"energy"`
}

func (e *TurnStartedEvent) Type() Type { return TypeTurnStarted }
func (e *TurnStartedEvent) Message() string {
	return fmt.Sprintf("%s starts its turn at stage %d (%d energy).", e.Name, e.Stage, e.Energy)
}

// TurnEndedEvent closes a vehicle's turn.
type TurnEndedEvent struct {
	VehicleID string `json:"vehicle_id"`
	Name      string `json:"name"`
	Forced    bool   `json:"forced"`
}

func (e *TurnEndedEvent) Type() Type { return TypeTurnEnded }
func (e *TurnEndedEvent) Message() string {
	if e.Forced {
		return fmt.Sprintf("%s coasted (forced movement) and ended its turn.", e.Name)
	}
	return fmt.Sprintf("%s ended its turn.", e.Name)
}

// MovementMadeEvent records stage progression.
type MovementMadeEvent struct {
	VehicleID string `json:"vehicle_id"`
	Name      string `json:"name"`
	FromStage int    `json:"from_stage"`
	ToStage   int    `json:"to_stage"`
}

func (e *MovementMadeEvent) Type() Type { return TypeMovementMade }
func (e *MovementMadeEvent) Message() string {
	return fmt.Sprintf("%s advances: stage %d -> %d", e.Name, e.FromStage, e.ToStage)
}

// EnergyChangedEvent records regeneration or spending of power-core energy.
type EnergyChangedEvent struct {
	VehicleID string `json:"vehicle_id"`
	Name      string `json:"name"`
	Amount    int    `json:"amount"`
	Energy    int    `json:"energy"`
	Reason    string `json:"reason"`
}

func (e *EnergyChangedEvent) Type() Type { return TypeEnergyChanged }
func (e *EnergyChangedEvent) Message() string {
	if e.Amount >= 0 {
		return fmt.Sprintf("%s gains %d energy (%s), now %d.", e.Name, e.Amount, e.Reason, e.Energy)
	}
	return fmt.Sprintf("%s spends %d energy (%s), now %d.", e.Name, -e.Amount, e.Reason, e.Energy)
}

// DamageResolvedEvent carries the full audit trail of one damage packet
// through the resolver.
type DamageResolvedEvent struct {
	TargetID   string                `json:"target_id"`
	TargetName string                `json:"target_name"`
	Attacker   string                `json:"attacker,omitempty"`
	Source     string                `json:"source"`
	DamageType string                `json:"damage_type"`
	Raw        int                   `json:"raw"`
	Final      int                   `json:"final"`
	Critical   bool                  `json:"critical"`
	Breakdown  *dice.DamageBreakdown `json:"-"`
}

func (e *DamageResolvedEvent) Type() Type { return TypeDamageResolved }
func (e *DamageResolvedEvent) Message() string {
	var sb strings.Builder
	crit := ""
	if e.Critical {
		crit = "[CRITICAL] "
	}
	fmt.Fprintf(&sb, "%s%s takes %d %s damage from %s", crit, e.TargetName, e.Final, e.DamageType, e.Source)
	if e.Attacker != "" {
		fmt.Fprintf(&sb, " (%s)", e.Attacker)
	}
	if e.Breakdown != nil {
		fmt.Fprintf(&sb, "\n%s", e.Breakdown.String())
	}
	return sb.String()
}

// VehicleDestroyedEvent records destruction and its causal source for
// "destroyed by X" reporting.
type VehicleDestroyedEvent struct {
	VehicleID   string `json:"vehicle_id"`
	Name        string `json:"name"`
	DestroyedBy string `json:"destroyed_by"`
}

func (e *VehicleDestroyedEvent) Type() Type { return TypeVehicleDestroyed }
func (e *VehicleDestroyedEvent) Message() string {
	return fmt.Sprintf("%s is destroyed by %s!", e.Name, e.DestroyedBy)
}

// HazardTriggeredEvent records a stage hazard firing at turn start.
type HazardTriggeredEvent struct {
	VehicleID string `json:"vehicle_id"`
	Name      string `json:"name"`
	Hazard    string `json:"hazard"`
	Stage     int    `json:"stage"`
}

func (e *HazardTriggeredEvent) Type() Type { return TypeHazardTriggered }
func (e *HazardTriggeredEvent) Message() string {
	return fmt.Sprintf("%s hits %s at stage %d.", e.Hazard, e.Name, e.Stage)
}

// CheckResolvedEvent records an avoidance check with its audit trail.
type CheckResolvedEvent struct {
	VehicleID string               `json:"vehicle_id"`
	Name      string               `json:"name"`
	Success   bool                 `json:"success"`
	Breakdown *dice.CheckBreakdown `json:"-"`
}

func (e *CheckResolvedEvent) Type() Type { return TypeCheckResolved }
func (e *CheckResolvedEvent) Message() string {
	outcome := "fails"
	if e.Success {
		outcome = "succeeds"
	}
	msg := fmt.Sprintf("%s %s its check.", e.Name, outcome)
	if e.Breakdown != nil {
		msg += "\n" + e.Breakdown.String()
	}
	return msg
}

// GameOverEvent is terminal; Winner is empty when no vehicle survived.
type GameOverEvent struct {
	Winner string `json:"winner"`
	Rounds int    `json:"rounds"`
}

func (e *GameOverEvent) Type() Type { return TypeGameOver }
func (e *GameOverEvent) Message() string {
	if e.Winner == "" {
		return fmt.Sprintf("Race over after %d rounds. No survivors.", e.Rounds)
	}
	return fmt.Sprintf("Race over after %d rounds. Winner: %s!", e.Rounds, e.Winner)
}

// WarningEvent surfaces recoverable combat-flow misconfiguration. Warnings
// never halt round progression.
type WarningEvent struct {
	Context string `json:"context"`
	Detail  string `json:"detail"`
}

func (e *WarningEvent) Type() Type      { return TypeWarning }
func (e *WarningEvent) Message() string { return fmt.Sprintf("WARN %s: %s", e.Context, e.Detail) }
