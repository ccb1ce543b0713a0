package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KGrykiel/eriast-derby/internal/dice"
	"github.com/KGrykiel/eriast-derby/internal/vehicle"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry(func(expr string) int {
		n, err := dice.ParseNotation(expr)
		require.NoError(t, err)
		val, err := n.Roll(dice.NewSeeded(1))
		require.NoError(t, err)
		return val
	})
	require.NoError(t, err)
	return reg
}

func TestEvalRollFunction(t *testing.T) {
	reg := testRegistry(t)

	out, err := reg.EvalInt("roll('2d6') + 3", map[string]any{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, out, 5)
	assert.LessOrEqual(t, out, 15)
}

func TestEvalActorContext(t *testing.T) {
	reg := testRegistry(t)
	v := &vehicle.Vehicle{ID: "ironclad", Name: "Ironclad", Hull: 12, Energy: 4, Stage: 2}
	ctx := BuildEvalContext(v, "Scrap Canyon", 2, 3)

	hit, err := reg.EvalBool("actor.hull < 15 && round >= 3", ctx)
	require.NoError(t, err)
	assert.True(t, hit)

	hit, err = reg.EvalBool("stage.name == 'Open Flats'", ctx)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestEvalBadExpression(t *testing.T) {
	reg := testRegistry(t)
	_, err := reg.Eval("actor.>>>", map[string]any{})
	assert.Error(t, err)
}

func TestEvalIntCoercions(t *testing.T) {
	reg := testRegistry(t)

	out, err := reg.EvalInt("2 + 2", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, 4, out)

	out, err = reg.EvalInt("true", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, 1, out)

	out, err = reg.EvalInt("'words'", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, 0, out)
}
