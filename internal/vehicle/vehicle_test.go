package vehicle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KGrykiel/eriast-derby/internal/combat"
	"github.com/KGrykiel/eriast-derby/internal/dice"
)

func testVehicle() *Vehicle {
	return &Vehicle{
		ID:      "ironclad",
		Name:    "Ironclad",
		Control: ControlAI,
		Hull:    20,
		MaxHull: 20,
		Energy:  3,
		Drive:   Drive{Speed: 2, Handling: 1},
		Core:    PowerCore{Regen: 2, Capacity: 6},
		Weapon: &Weapon{
			Name:       "Autocannon",
			Damage:     dice.Notation{Count: 2, Sides: 6, Bonus: 1},
			Type:       combat.DamageKinetic,
			EnergyCost: 2,
		},
		Resistances: combat.ResistanceProfile{combat.DamageFire: combat.Resistant},
	}
}

func TestApplyDamageMarksDestruction(t *testing.T) {
	v := testVehicle()

	assert.False(t, v.ApplyDamage(15, "Plasma Lance"))
	assert.Equal(t, 5, v.Hull)
	assert.True(t, v.IsOperational())

	assert.True(t, v.ApplyDamage(9, "Plasma Lance"))
	assert.Equal(t, 0, v.Hull)
	assert.False(t, v.IsOperational())
	assert.Equal(t, "Plasma Lance", v.DestroyedBy)

	// Further damage to a wreck is a no-op.
	assert.False(t, v.ApplyDamage(5, "Autocannon"))
	assert.Equal(t, "Plasma Lance", v.DestroyedBy)
}

func TestApplyDamageZeroIsNoop(t *testing.T) {
	v := testVehicle()
	assert.False(t, v.ApplyDamage(0, "Glancing Hit"))
	assert.Equal(t, 20, v.Hull)
}

func TestBeginTurnResetsFlags(t *testing.T) {
	v := testVehicle()
	v.HasActedThisTurn = true
	v.HasMovedThisTurn = true

	v.BeginTurn()
	assert.False(t, v.HasActedThisTurn)
	assert.False(t, v.HasMovedThisTurn)
}

func TestRegenerateCapsAtCapacity(t *testing.T) {
	v := testVehicle()
	assert.Equal(t, 2, v.Regenerate())
	assert.Equal(t, 5, v.Energy)
	assert.Equal(t, 1, v.Regenerate())
	assert.Equal(t, 6, v.Energy)
	assert.Equal(t, 0, v.Regenerate())
}

func TestSpendEnergy(t *testing.T) {
	v := testVehicle()
	assert.True(t, v.SpendEnergy(2))
	assert.Equal(t, 1, v.Energy)
	assert.False(t, v.SpendEnergy(2))
	assert.Equal(t, 1, v.Energy)
}

func TestAdvance(t *testing.T) {
	v := testVehicle()
	assert.Equal(t, 2, v.Advance())
	assert.True(t, v.HasMovedThisTurn)
	assert.Equal(t, 4, v.Advance())
}

func TestWeaponImplementsCombatContract(t *testing.T) {
	var w combat.Weapon = testVehicle().Weapon
	assert.Equal(t, combat.DamageKinetic, w.DamageType())
	assert.Equal(t, 2, w.DamageDiceCount())
	assert.Equal(t, 6, w.DamageDieSize())
	assert.Equal(t, 1, w.DamageBonus())

	r := dice.NewSeeded(1)
	r.Queue(3, 4)
	amount, err := w.RollDamage(r)
	assert.NoError(t, err)
	assert.Equal(t, 8, amount)
}
