package combat

import (
	"fmt"
	"math"

	"github.com/KGrykiel/eriast-derby/internal/dice"
)

// FormulaMode selects how a damage formula combines skill dice and weapon
// stats.
type FormulaMode string

const (
	SkillOnly        FormulaMode = "skill_only"
	WeaponOnly       FormulaMode = "weapon_only"
	WeaponPlusSkill  FormulaMode = "weapon_plus_skill"
	WeaponMultiplied FormulaMode = "weapon_multiplied"
)

// Weapon is the subset of a mounted weapon the formula needs. Callers pass
// nil when the acting vehicle has no weapon.
type Weapon interface {
	RollDamage(r *dice.Roller) (int, error)
	DamageType() DamageType
	DamageDiceCount() int
	DamageDieSize() int
	DamageBonus() int
}

// Formula is an immutable damage policy authored in skill presets and
// evaluated many times against different weapon contexts.
type Formula struct {
	Mode                FormulaMode `yaml:"mode"`
	SkillDice           int         `yaml:"skill_dice"`
	SkillDieSize        int         `yaml:"skill_die_size"`
	SkillBonus          int         `yaml:"skill_bonus"`
	SkillDamageType     DamageType  `yaml:"skill_damage_type"`
	WeaponMultiplier    float64     `yaml:"weapon_multiplier"`
	UseWeaponDamageType bool        `yaml:"use_weapon_damage_type"`
}

// Evaluation is the outcome of one formula evaluation. Warning carries
// recoverable misconfiguration notes (missing weapon); combat flow is never
// interrupted by them.
type Evaluation struct {
	Amount    int
	Type      DamageType
	Breakdown *dice.DamageBreakdown
	Warning   string
}

// Evaluate computes a damage amount and type for the given weapon context.
// The only error source is the dice roller; misconfiguration degrades to
// zero damage or a documented fallback instead of failing.
func (f Formula) Evaluate(r *dice.Roller, weapon Weapon) (Evaluation, error) {
	switch f.Mode {
	case WeaponOnly:
		if weapon == nil {
			return f.missingWeapon()
		}
		amount, err := weapon.RollDamage(r)
		if err != nil {
			return Evaluation{}, err
		}
		bd := &dice.DamageBreakdown{}
		bd.AddComponent(weaponLabel(weapon), amount)
		return Evaluation{Amount: amount, Type: weapon.DamageType(), Breakdown: bd}, nil

	case WeaponPlusSkill:
		if weapon == nil {
			// Documented fallback, not an error.
			return f.evaluateSkill(r)
		}
		weaponAmount, err := weapon.RollDamage(r)
		if err != nil {
			return Evaluation{}, err
		}
		skillAmount, err := f.rollSkill(r)
		if err != nil {
			return Evaluation{}, err
		}
		bd := &dice.DamageBreakdown{}
		bd.AddComponent(weaponLabel(weapon), weaponAmount)
		bd.AddComponent(f.skillLabel(), skillAmount)
		dtype := f.SkillDamageType
		if f.UseWeaponDamageType {
			dtype = weapon.DamageType()
		}
		return Evaluation{Amount: weaponAmount + skillAmount, Type: dtype, Breakdown: bd}, nil

	case WeaponMultiplied:
		if weapon == nil {
			return f.missingWeapon()
		}
		// Round-to-nearest, half away from zero. Players budget expected
		// damage on this exact policy.
		effective := int(math.Round(float64(weapon.DamageDiceCount()) * f.WeaponMultiplier))
		sum, err := r.RollSum(effective, weapon.DamageDieSize())
		if err != nil {
			return Evaluation{}, err
		}
		amount := sum + weapon.DamageBonus()
		bd := &dice.DamageBreakdown{}
		bd.AddComponent(fmt.Sprintf("%dd%d (x%.2g)", effective, weapon.DamageDieSize(), f.WeaponMultiplier), sum)
		bd.AddComponent("Weapon Bonus", weapon.DamageBonus())
		return Evaluation{Amount: amount, Type: weapon.DamageType(), Breakdown: bd}, nil

	default: // SkillOnly, or an unset mode that can only roll skill dice
		return f.evaluateSkill(r)
	}
}

func (f Formula) evaluateSkill(r *dice.Roller) (Evaluation, error) {
	amount, err := f.rollSkill(r)
	if err != nil {
		return Evaluation{}, err
	}
	bd := &dice.DamageBreakdown{}
	bd.AddComponent(f.skillLabel(), amount)
	return Evaluation{Amount: amount, Type: f.SkillDamageType, Breakdown: bd}, nil
}

// rollSkill degrades to the flat bonus when dice count or size is zero.
func (f Formula) rollSkill(r *dice.Roller) (int, error) {
	if f.SkillDice <= 0 || f.SkillDieSize <= 0 {
		return f.SkillBonus, nil
	}
	sum, err := r.RollSum(f.SkillDice, f.SkillDieSize)
	if err != nil {
		return 0, err
	}
	return sum + f.SkillBonus, nil
}

func (f Formula) missingWeapon() (Evaluation, error) {
	return Evaluation{
		Amount:    0,
		Type:      f.SkillDamageType,
		Breakdown: &dice.DamageBreakdown{},
		Warning:   fmt.Sprintf("formula mode %s requires a weapon but none is mounted", f.Mode),
	}, nil
}

func (f Formula) skillLabel() string {
	if f.SkillDice > 0 && f.SkillDieSize > 0 {
		if f.SkillBonus != 0 {
			return fmt.Sprintf("Skill %dd%d%+d", f.SkillDice, f.SkillDieSize, f.SkillBonus)
		}
		return fmt.Sprintf("Skill %dd%d", f.SkillDice, f.SkillDieSize)
	}
	return "Skill Bonus"
}

func weaponLabel(w Weapon) string {
	if w.DamageBonus() != 0 {
		return fmt.Sprintf("Weapon %dd%d%+d", w.DamageDiceCount(), w.DamageDieSize(), w.DamageBonus())
	}
	return fmt.Sprintf("Weapon %dd%d", w.DamageDiceCount(), w.DamageDieSize())
}
