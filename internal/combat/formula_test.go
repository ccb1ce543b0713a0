package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KGrykiel/eriast-derby/internal/dice"
)

// testWeapon is a minimal Weapon for formula tests.
type testWeapon struct {
	diceCount int
	dieSize   int
	bonus     int
	dtype     DamageType
}

func (w testWeapon) RollDamage(r *dice.Roller) (int, error) {
	sum, err := r.RollSum(w.diceCount, w.dieSize)
	if err != nil {
		return 0, err
	}
	return sum + w.bonus, nil
}

func (w testWeapon) DamageType() DamageType { return w.dtype }
func (w testWeapon) DamageDiceCount() int   { return w.diceCount }
func (w testWeapon) DamageDieSize() int     { return w.dieSize }
func (w testWeapon) DamageBonus() int       { return w.bonus }

func TestSkillOnly(t *testing.T) {
	f := Formula{
		Mode:            SkillOnly,
		SkillDice:       2,
		SkillDieSize:    6,
		SkillBonus:      1,
		SkillDamageType: DamagePsychic,
	}

	r := dice.NewSeeded(3)
	for i := 0; i < 50; i++ {
		eval, err := f.Evaluate(r, nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, eval.Amount, 3)
		assert.LessOrEqual(t, eval.Amount, 13)
		assert.Equal(t, DamagePsychic, eval.Type)
		assert.Empty(t, eval.Warning)
	}
}

func TestSkillOnlyDegradesToFlatBonus(t *testing.T) {
	tests := []struct {
		name string
		f    Formula
	}{
		{"zero dice", Formula{Mode: SkillOnly, SkillDice: 0, SkillDieSize: 6, SkillBonus: 4}},
		{"zero die size", Formula{Mode: SkillOnly, SkillDice: 2, SkillDieSize: 0, SkillBonus: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval, err := tt.f.Evaluate(dice.NewSeeded(1), nil)
			require.NoError(t, err)
			assert.Equal(t, 4, eval.Amount)
		})
	}
}

func TestWeaponOnly(t *testing.T) {
	f := Formula{Mode: WeaponOnly, SkillDamageType: DamagePsychic}
	w := testWeapon{diceCount: 2, dieSize: 8, bonus: 2, dtype: DamageFire}

	r := dice.NewSeeded(5)
	eval, err := f.Evaluate(r, w)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, eval.Amount, 4)
	assert.LessOrEqual(t, eval.Amount, 18)
	assert.Equal(t, DamageFire, eval.Type)
}

func TestWeaponOnlyMissingWeapon(t *testing.T) {
	f := Formula{Mode: WeaponOnly, SkillDamageType: DamagePsychic}
	eval, err := f.Evaluate(dice.NewSeeded(1), nil)
	require.NoError(t, err, "missing weapon must never abort combat")
	assert.Equal(t, 0, eval.Amount)
	assert.Equal(t, DamagePsychic, eval.Type)
	assert.NotEmpty(t, eval.Warning)
}

func TestWeaponPlusSkillRange(t *testing.T) {
	f := Formula{
		Mode:                WeaponPlusSkill,
		SkillDice:           1,
		SkillDieSize:        6,
		SkillBonus:          0,
		SkillDamageType:     DamagePsychic,
		UseWeaponDamageType: true,
	}
	w := testWeapon{diceCount: 1, dieSize: 8, bonus: 2, dtype: DamageKinetic}

	r := dice.NewSeeded(9)
	for i := 0; i < 200; i++ {
		eval, err := f.Evaluate(r, w)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, eval.Amount, 4, "min 1d6 + 1d8 + 2")
		assert.LessOrEqual(t, eval.Amount, 16, "max 1d6 + 1d8 + 2")
		assert.Equal(t, DamageKinetic, eval.Type)
	}
}

func TestWeaponPlusSkillDamageTypePolicy(t *testing.T) {
	w := testWeapon{diceCount: 1, dieSize: 4, dtype: DamageFire}
	f := Formula{Mode: WeaponPlusSkill, SkillDamageType: DamageCold, SkillBonus: 1}

	eval, err := f.Evaluate(dice.NewSeeded(2), w)
	require.NoError(t, err)
	assert.Equal(t, DamageCold, eval.Type, "fixed type when UseWeaponDamageType is off")

	f.UseWeaponDamageType = true
	eval, err = f.Evaluate(dice.NewSeeded(2), w)
	require.NoError(t, err)
	assert.Equal(t, DamageFire, eval.Type)
}

func TestWeaponPlusSkillFallsBackWithoutWeapon(t *testing.T) {
	f := Formula{
		Mode:            WeaponPlusSkill,
		SkillDice:       1,
		SkillDieSize:    4,
		SkillBonus:      2,
		SkillDamageType: DamageCorrosive,
	}
	r := dice.NewSeeded(1)
	r.Queue(3)

	eval, err := f.Evaluate(r, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, eval.Amount, "skill-only fallback: 3 + 2")
	assert.Equal(t, DamageCorrosive, eval.Type)
	assert.Empty(t, eval.Warning, "fallback is documented behavior, not a misconfiguration")
}

func TestWeaponMultipliedRounding(t *testing.T) {
	// 3 dice x1.5 rounds to 5 (half away from zero); queued rolls pin the sum.
	f := Formula{Mode: WeaponMultiplied, WeaponMultiplier: 1.5}
	w := testWeapon{diceCount: 3, dieSize: 6, bonus: 1, dtype: DamageKinetic}

	r := dice.NewSeeded(1)
	r.Queue(1, 1, 1, 1, 1)

	eval, err := f.Evaluate(r, w)
	require.NoError(t, err)
	assert.Equal(t, 6, eval.Amount, "5 queued dice + weapon bonus 1")
	assert.Equal(t, DamageKinetic, eval.Type)
}

func TestWeaponMultipliedHalving(t *testing.T) {
	// 3 dice x0.5 rounds to 2.
	f := Formula{Mode: WeaponMultiplied, WeaponMultiplier: 0.5}
	w := testWeapon{diceCount: 3, dieSize: 6, dtype: DamageKinetic}

	r := dice.NewSeeded(1)
	r.Queue(2, 2)

	eval, err := f.Evaluate(r, w)
	require.NoError(t, err)
	assert.Equal(t, 4, eval.Amount)
}

func TestWeaponMultipliedMissingWeapon(t *testing.T) {
	f := Formula{Mode: WeaponMultiplied, WeaponMultiplier: 2, SkillDamageType: DamageCold}
	eval, err := f.Evaluate(dice.NewSeeded(1), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, eval.Amount)
	assert.NotEmpty(t, eval.Warning)
}

func TestEvaluationBreakdownComponents(t *testing.T) {
	f := Formula{Mode: WeaponPlusSkill, SkillDice: 1, SkillDieSize: 6, SkillDamageType: DamageFire}
	w := testWeapon{diceCount: 1, dieSize: 8, bonus: 2, dtype: DamageFire}

	r := dice.NewSeeded(1)
	r.Queue(5, 3)

	eval, err := f.Evaluate(r, w)
	require.NoError(t, err)
	require.NotNil(t, eval.Breakdown)
	assert.Len(t, eval.Breakdown.Components, 2)
	assert.Equal(t, eval.Amount, eval.Breakdown.RawTotal())
}
