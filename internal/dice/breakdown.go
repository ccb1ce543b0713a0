package dice

import (
	"fmt"
	"strings"
)

// Contribution is a single named modifier applied to a check or damage roll.
type Contribution struct {
	Name  string
	Value int
}

// CheckBreakdown is the auditable record of one d20-style check. It is built
// in three stages: base roll, named modifiers, then Against freezes the
// result. Frozen breakdowns reject further mutation.
type CheckBreakdown struct {
	Label     string
	BaseRoll  int
	Modifiers []Contribution
	Target    int
	Success   bool
	frozen    bool
}

// NewCheckBreakdown starts a breakdown from the base die result.
func NewCheckBreakdown(label string, baseRoll int) *CheckBreakdown {
	return &CheckBreakdown{Label: label, BaseRoll: baseRoll}
}

// AddModifier records a named contribution. Ignored once frozen.
func (b *CheckBreakdown) AddModifier(name string, value int) *CheckBreakdown {
	if b.frozen {
		return b
	}
	b.Modifiers = append(b.Modifiers, Contribution{Name: name, Value: value})
	return b
}

// Total is the base roll plus all recorded modifiers.
func (b *CheckBreakdown) Total() int {
	total := b.BaseRoll
	for _, m := range b.Modifiers {
		total += m.Value
	}
	return total
}

// Against compares the running total to a target number and freezes the
// breakdown. The success flag never changes afterwards.
func (b *CheckBreakdown) Against(target int) bool {
	if !b.frozen {
		b.Target = target
		b.Success = b.Total() >= target
		b.frozen = true
	}
	return b.Success
}

func (b *CheckBreakdown) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d", b.Label, b.Total())
	fmt.Fprintf(&sb, "\n├─ Base: %d", b.BaseRoll)
	for _, m := range b.Modifiers {
		fmt.Fprintf(&sb, "\n├─ %s: %+d", m.Name, m.Value)
	}
	if b.frozen {
		outcome := "Failure"
		if b.Success {
			outcome = "Success!"
		}
		fmt.Fprintf(&sb, "\n├─ vs %d: %s", b.Target, outcome)
	}
	return sb.String()
}

// DamageBreakdown is the auditable record of one damage roll: the dice
// components that produced the raw total and, once resolved, the resistance
// applied and the final amount.
type DamageBreakdown struct {
	Components []Contribution
	Resistance string
	Final      int
	resolved   bool
}

// AddComponent records a named dice or flat component of the raw total.
func (b *DamageBreakdown) AddComponent(name string, value int) *DamageBreakdown {
	if b.resolved {
		return b
	}
	b.Components = append(b.Components, Contribution{Name: name, Value: value})
	return b
}

// RawTotal is the sum of all components before resistance.
func (b *DamageBreakdown) RawTotal() int {
	total := 0
	for _, c := range b.Components {
		total += c.Value
	}
	return total
}

// Resolve freezes the breakdown with the resistance note and final amount.
func (b *DamageBreakdown) Resolve(resistance string, final int) {
	if b.resolved {
		return
	}
	b.Resistance = resistance
	b.Final = final
	b.resolved = true
}

func (b *DamageBreakdown) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Damage: %d", b.RawTotal())
	for _, c := range b.Components {
		fmt.Fprintf(&sb, "\n├─ %s: %d", c.Name, c.Value)
	}
	if b.resolved {
		fmt.Fprintf(&sb, "\n├─ %s -> %d", b.Resistance, b.Final)
	}
	return sb.String()
}
