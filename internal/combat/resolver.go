package combat

import (
	"fmt"

	"github.com/KGrykiel/eriast-derby/internal/dice"
)

// Resolve applies a target's resistance profile to a damage packet and
// returns the final damage. It never mutates the target; applying the result
// to hull is the caller's responsibility.
//
// The steps run in a fixed order. Reordering them changes outcomes. Shield
// and hardness reduction are future steps that slot in between the
// resistance step and the final clamp.
func Resolve(p Packet, resistanceOf func(DamageType) ResistanceLevel) int {
	// Fully blocked or zero-amount hits are valid no-ops.
	if p.Amount <= 0 {
		return 0
	}

	amount := p.Amount
	if !p.IgnoresResistance {
		switch resistanceOf(p.Type) {
		case Vulnerable:
			amount *= 2
		case Resistant:
			amount /= 2 // integer floor, never rounds up
		case Immune:
			amount = 0
		}
	}

	if amount < 0 {
		amount = 0
	}
	return amount
}

// ResolveInto resolves the packet and freezes the outcome into the given
// breakdown for audit display. A nil breakdown is allowed.
func ResolveInto(p Packet, profile ResistanceProfile, breakdown *dice.DamageBreakdown) int {
	final := Resolve(p, profile.Level)
	if breakdown != nil {
		note := string(profile.Level(p.Type))
		if p.IgnoresResistance {
			note = "ignored"
		}
		breakdown.Resolve(fmt.Sprintf("%s (%s)", note, p.Type), final)
	}
	return final
}
