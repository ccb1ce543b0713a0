package race

import (
	"fmt"

	"github.com/KGrykiel/eriast-derby/internal/combat"
	"github.com/KGrykiel/eriast-derby/internal/dice"
	"github.com/KGrykiel/eriast-derby/internal/event"
	"github.com/KGrykiel/eriast-derby/internal/vehicle"
)

// attack evaluates the attacker's damage formula, resolves the packet
// against the target's resistances, and applies the result. Damage packets
// never outlive this call.
func (m *Machine) attack(attacker, target *vehicle.Vehicle) error {
	formula := combat.Formula{Mode: combat.WeaponOnly}
	if attacker.Skill != nil {
		formula = *attacker.Skill
	}

	var weapon combat.Weapon
	source := fmt.Sprintf("%s (improvised)", attacker.Name)
	if attacker.Weapon != nil {
		weapon = attacker.Weapon
		source = attacker.Weapon.Name
	}

	eval, err := formula.Evaluate(m.roller, weapon)
	if err != nil {
		return err
	}
	if eval.Warning != "" {
		m.sink.Emit(&event.WarningEvent{Context: attacker.Name, Detail: eval.Warning})
	}

	if attacker.Weapon != nil {
		attacker.SpendEnergy(attacker.Weapon.EnergyCost)
	}
	attacker.HasActedThisTurn = true

	packet := combat.NewPacket(eval.Amount, eval.Type, source, combat.SourceWeapon).
		WithAttacker(combat.ActorRef{ID: attacker.ID, Name: attacker.Name})
	final := combat.ResolveInto(packet, target.Resistances, eval.Breakdown)
	destroyed := target.ApplyDamage(final, packet.Source)

	m.sink.Emit(&event.DamageResolvedEvent{
		TargetID: target.ID, TargetName: target.Name,
		Attacker: attacker.Name, Source: packet.Source,
		DamageType: string(packet.Type),
		Raw:        packet.Amount, Final: final,
		Critical:  packet.Critical,
		Breakdown: eval.Breakdown,
	})
	if destroyed {
		m.sink.Emit(&event.VehicleDestroyedEvent{
			VehicleID: target.ID, Name: target.Name, DestroyedBy: target.DestroyedBy,
		})
	}
	m.ctx.ShouldRefresh = true
	return nil
}

// move advances the actor down the track by its drive speed.
func (m *Machine) move(actor *vehicle.Vehicle) {
	from := actor.Stage
	to := actor.Advance()
	m.sink.Emit(&event.MovementMadeEvent{
		VehicleID: actor.ID, Name: actor.Name, FromStage: from, ToStage: to,
	})
	m.ctx.ShouldRefresh = true
}

// chooseTarget picks a random operational opponent, or nil when none exist.
func (m *Machine) chooseTarget(attacker *vehicle.Vehicle) *vehicle.Vehicle {
	var candidates []*vehicle.Vehicle
	for _, v := range m.order {
		if v != attacker && v.IsOperational() {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	idx, err := m.roller.Roll(len(candidates))
	if err != nil {
		return candidates[0]
	}
	return candidates[idx-1]
}

// applyStageHazards evaluates the hazards of the actor's current stage.
// Expression failures are authoring mistakes and surface as warnings; they
// never interrupt the turn.
func (m *Machine) applyStageHazards(actor *vehicle.Vehicle, round int) {
	if m.registry == nil {
		return
	}
	stage, idx := m.track.StageAt(actor.Stage)
	for _, h := range stage.Hazards {
		out, err := h.Evaluate(m.registry, m.roller, actor, stage.Name, idx, round)
		if err != nil {
			m.sink.Emit(&event.WarningEvent{Context: stage.Name, Detail: err.Error()})
			continue
		}
		if !out.Triggered {
			continue
		}
		m.sink.Emit(&event.HazardTriggeredEvent{
			VehicleID: actor.ID, Name: actor.Name, Hazard: h.Name, Stage: idx,
		})
		if out.Check != nil {
			m.sink.Emit(&event.CheckResolvedEvent{
				VehicleID: actor.ID, Name: actor.Name,
				Success: out.Check.Success, Breakdown: out.Check,
			})
		}
		if out.Avoided {
			continue
		}

		bd := &dice.DamageBreakdown{}
		bd.AddComponent(h.Name, out.Packet.Amount)
		final := combat.ResolveInto(out.Packet, actor.Resistances, bd)
		destroyed := actor.ApplyDamage(final, out.Packet.Source)

		m.sink.Emit(&event.DamageResolvedEvent{
			TargetID: actor.ID, TargetName: actor.Name,
			Source: out.Packet.Source, DamageType: string(out.Packet.Type),
			Raw: out.Packet.Amount, Final: final, Breakdown: bd,
		})
		if destroyed {
			m.sink.Emit(&event.VehicleDestroyedEvent{
				VehicleID: actor.ID, Name: actor.Name, DestroyedBy: actor.DestroyedBy,
			})
		}
		if !actor.IsOperational() {
			return
		}
	}
}

// PlayerAttack fires the paused player's weapon at the named target and
// lifts the pause. Target validation errors leave the machine paused so the
// player can pick again.
func (m *Machine) PlayerAttack(targetID string) error {
	if err := m.requirePlayerPause(); err != nil {
		return err
	}
	actor := m.CurrentActor()
	target := m.findVehicle(targetID)
	if target == nil || target == actor || !target.IsOperational() {
		return fmt.Errorf("invalid target %q", targetID)
	}
	if actor.Weapon != nil && actor.Energy < actor.Weapon.EnergyCost {
		return fmt.Errorf("not enough energy for %s (%d needed, %d left)", actor.Weapon.Name, actor.Weapon.EnergyCost, actor.Energy)
	}
	if err := m.attack(actor, target); err != nil {
		return err
	}
	return m.Resume(PhaseTurnEnd)
}

// PlayerMove drives the paused player's vehicle forward and lifts the pause.
func (m *Machine) PlayerMove() error {
	if err := m.requirePlayerPause(); err != nil {
		return err
	}
	m.move(m.CurrentActor())
	return m.Resume(PhaseTurnEnd)
}

// PlayerPass lifts the pause without acting; TurnEnd applies forced
// movement.
func (m *Machine) PlayerPass() error {
	if err := m.requirePlayerPause(); err != nil {
		return err
	}
	return m.Resume(PhaseTurnEnd)
}

func (m *Machine) requirePlayerPause() error {
	if !m.paused || m.ctx.Phase != PhasePlayerAction {
		return fmt.Errorf("%w: no player action pending", ErrInvalidState)
	}
	return nil
}

func (m *Machine) findVehicle(id string) *vehicle.Vehicle {
	for _, v := range m.order {
		if v.ID == id {
			return v
		}
	}
	return nil
}
