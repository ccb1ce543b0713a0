package vehicle

import (
	"github.com/KGrykiel/eriast-derby/internal/combat"
	"github.com/KGrykiel/eriast-derby/internal/dice"
)

// Weapon is a mounted weapon system. Damage is authored as dice notation in
// vehicle presets.
type Weapon struct {
	Name       string            `yaml:"name"`
	Damage     dice.Notation     `yaml:"damage"`
	Type       combat.DamageType `yaml:"type"`
	EnergyCost int               `yaml:"energy_cost"`
}

// RollDamage rolls the weapon's damage dice.
func (w *Weapon) RollDamage(r *dice.Roller) (int, error) {
	return w.Damage.Roll(r)
}

func (w *Weapon) DamageType() combat.DamageType { return w.Type }
func (w *Weapon) DamageDiceCount() int          { return w.Damage.Count }
func (w *Weapon) DamageDieSize() int            { return w.Damage.Sides }
func (w *Weapon) DamageBonus() int              { return w.Damage.Bonus }

// Drive moves the vehicle between stages and contributes handling to
// avoidance checks.
type Drive struct {
	Name     string `yaml:"name"`
	Speed    int    `yaml:"speed"`
	Handling int    `yaml:"handling"`
}

// PowerCore regenerates energy at turn start up to its capacity.
type PowerCore struct {
	Name     string `yaml:"name"`
	Regen    int    `yaml:"regen"`
	Capacity int    `yaml:"capacity"`
}
