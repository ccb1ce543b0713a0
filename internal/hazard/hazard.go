package hazard

import (
	"fmt"

	"github.com/KGrykiel/eriast-derby/internal/combat"
	"github.com/KGrykiel/eriast-derby/internal/dice"
	"github.com/KGrykiel/eriast-derby/internal/rules"
	"github.com/KGrykiel/eriast-derby/internal/vehicle"
)

// Hazard is a stage-bound environmental threat authored in track files. The
// trigger and amount are CEL expressions evaluated against the actor, stage,
// and round context.
type Hazard struct {
	Name              string            `yaml:"name"`
	When              string            `yaml:"when"`   // trigger expression; empty means always
	Amount            string            `yaml:"amount"` // damage expression, may call roll()
	Type              combat.DamageType `yaml:"type"`
	IgnoresResistance bool              `yaml:"ignores_resistance"`
	AvoidDC           int               `yaml:"avoid_dc"` // 0 means unavoidable
}

// Outcome is the result of evaluating one hazard against one vehicle.
type Outcome struct {
	Triggered bool
	Avoided   bool
	Check     *dice.CheckBreakdown
	Packet    combat.Packet
}

// Evaluate decides whether the hazard fires against the vehicle and, if so,
// builds the environmental damage packet. An avoidance check (d20 + drive
// handling vs the hazard DC) is rolled when the hazard allows one.
func (h Hazard) Evaluate(reg *rules.Registry, r *dice.Roller, v *vehicle.Vehicle, stageName string, stageIndex, round int) (Outcome, error) {
	ctx := rules.BuildEvalContext(v, stageName, stageIndex, round)

	if h.When != "" {
		hit, err := reg.EvalBool(h.When, ctx)
		if err != nil {
			return Outcome{}, fmt.Errorf("hazard %q trigger: %w", h.Name, err)
		}
		if !hit {
			return Outcome{}, nil
		}
	}

	out := Outcome{Triggered: true}

	if h.AvoidDC > 0 {
		base, err := r.Roll(20)
		if err != nil {
			return Outcome{}, err
		}
		check := dice.NewCheckBreakdown(fmt.Sprintf("Avoid %s", h.Name), base)
		check.AddModifier("Handling", v.Drive.Handling)
		out.Check = check
		if check.Against(h.AvoidDC) {
			out.Avoided = true
			return out, nil
		}
	}

	amount, err := reg.EvalInt(h.Amount, ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("hazard %q amount: %w", h.Name, err)
	}

	p := combat.NewPacket(amount, h.Type, h.Name, combat.SourceEnvironment)
	p.IgnoresResistance = h.IgnoresResistance
	out.Packet = p
	return out, nil
}
