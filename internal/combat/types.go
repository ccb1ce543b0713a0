package combat

// DamageType classifies damage for resistance lookups.
type DamageType string

const (
	DamageKinetic   DamageType = "kinetic"
	DamageFire      DamageType = "fire"
	DamageLightning DamageType = "lightning"
	DamageCorrosive DamageType = "corrosive"
	DamageCold      DamageType = "cold"
	DamagePsychic   DamageType = "psychic"
)

// ResistanceLevel is the multiplier category applied to damage of one type.
type ResistanceLevel string

const (
	Vulnerable ResistanceLevel = "vulnerable" // x2
	Normal     ResistanceLevel = "normal"     // x1
	Resistant  ResistanceLevel = "resistant"  // x0.5, floored
	Immune     ResistanceLevel = "immune"     // x0
)

// SourceType classifies what produced a damage packet.
type SourceType string

const (
	SourceWeapon      SourceType = "weapon"
	SourceAbility     SourceType = "ability"
	SourceEnvironment SourceType = "environment"
	SourceEffect      SourceType = "effect"
	SourceCollision   SourceType = "collision"
)

// ResistanceProfile maps damage types to resistance levels. Types without an
// entry are Normal. Mutation happens only through status-effect application;
// the resolver treats the profile as read-only.
type ResistanceProfile map[DamageType]ResistanceLevel

// Level returns the resistance level for a damage type, defaulting to Normal.
func (p ResistanceProfile) Level(t DamageType) ResistanceLevel {
	if p == nil {
		return Normal
	}
	if lvl, ok := p[t]; ok {
		return lvl
	}
	return Normal
}

// Set records a resistance level, removing the entry when it returns to
// Normal so the profile only carries exceptions.
func (p ResistanceProfile) Set(t DamageType, lvl ResistanceLevel) {
	if lvl == Normal {
		delete(p, t)
		return
	}
	p[t] = lvl
}
