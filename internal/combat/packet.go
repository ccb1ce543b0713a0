package combat

// ActorRef identifies the attacker behind a damage packet. Environmental
// damage carries no attacker, so packets hold it as an explicit optional.
type ActorRef struct {
	ID   string
	Name string
}

// Packet is an immutable description of one instance of damage prior to
// resistance application. Packets are constructed fresh per damage event and
// consumed immediately by the resolver; they never outlive the phase call
// that created them.
type Packet struct {
	Amount     int
	Type       DamageType
	Attacker   *ActorRef // nil for environmental damage
	Source     string    // causal source label, always present ("killed by X" reporting)
	SourceType SourceType

	IgnoresResistance bool
	IgnoresShields    bool
	Critical          bool
	ArmorPenetration  int
}

// NewPacket builds a packet, clamping the amount to zero. Negative amounts
// are not a valid packet state.
func NewPacket(amount int, dtype DamageType, source string, sourceType SourceType) Packet {
	if amount < 0 {
		amount = 0
	}
	return Packet{
		Amount:     amount,
		Type:       dtype,
		Source:     source,
		SourceType: sourceType,
	}
}

// WithAttacker returns a copy of the packet attributed to an attacker.
func (p Packet) WithAttacker(ref ActorRef) Packet {
	p.Attacker = &ref
	return p
}

// WithFlags returns a copy of the packet with the given modifier flags.
func (p Packet) WithFlags(ignoresResistance, ignoresShields, critical bool) Packet {
	p.IgnoresResistance = ignoresResistance
	p.IgnoresShields = ignoresShields
	p.Critical = critical
	return p
}
