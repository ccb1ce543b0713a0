package vehicle

import (
	"github.com/KGrykiel/eriast-derby/internal/combat"
)

// ControlType routes a vehicle's turn to the player pause point or the AI
// path.
type ControlType string

const (
	ControlPlayer ControlType = "player"
	ControlAI     ControlType = "ai"
)

// Vehicle is the unit whose turn is tracked: hull, energy, position on the
// track, mounted components, and a resistance profile. Created at race
// setup, mutated every turn, marked destroyed when hull reaches zero.
type Vehicle struct {
	ID      string
	Name    string
	Control ControlType

	Hull    int
	MaxHull int
	Energy  int
	Stage   int

	Weapon *Weapon // nil when no weapon is mounted
	Drive  Drive
	Core   PowerCore
	Skill  *combat.Formula // damage policy for attacks; nil falls back to weapon-only

	Resistances combat.ResistanceProfile

	Destroyed   bool
	DestroyedBy string

	// Per-turn flags, reset only by BeginTurn.
	HasActedThisTurn bool
	HasMovedThisTurn bool
}

// IsOperational reports whether the vehicle can take turns.
func (v *Vehicle) IsOperational() bool {
	return v != nil && !v.Destroyed && v.Hull > 0
}

// ResistanceLevel looks up the vehicle's resistance for a damage type.
func (v *Vehicle) ResistanceLevel(t combat.DamageType) combat.ResistanceLevel {
	return v.Resistances.Level(t)
}

// ApplyDamage deducts resolved damage from the hull. When the hull is
// exhausted the vehicle is marked destroyed and remembers the causal source.
// Returns true if this call destroyed the vehicle.
func (v *Vehicle) ApplyDamage(amount int, source string) bool {
	if amount <= 0 || v.Destroyed {
		return false
	}
	v.Hull -= amount
	if v.Hull <= 0 {
		v.Hull = 0
		v.Destroyed = true
		v.DestroyedBy = source
		return true
	}
	return false
}

// BeginTurn is the single reset point for per-turn flags. Only the TurnStart
// phase calls it.
func (v *Vehicle) BeginTurn() {
	v.HasActedThisTurn = false
	v.HasMovedThisTurn = false
}

// Regenerate tops up energy from the power core, capped at capacity.
// Returns the amount actually gained.
func (v *Vehicle) Regenerate() int {
	if v.Core.Regen <= 0 {
		return 0
	}
	before := v.Energy
	v.Energy += v.Core.Regen
	if v.Energy > v.Core.Capacity {
		v.Energy = v.Core.Capacity
	}
	return v.Energy - before
}

// SpendEnergy deducts cost if affordable.
func (v *Vehicle) SpendEnergy(cost int) bool {
	if cost > v.Energy {
		return false
	}
	v.Energy -= cost
	return true
}

// Advance moves the vehicle forward by its drive speed and marks the
// movement flag. Returns the new stage.
func (v *Vehicle) Advance() int {
	v.Stage += v.Drive.Speed
	v.HasMovedThisTurn = true
	return v.Stage
}
