package rules

import (
	"github.com/KGrykiel/eriast-derby/internal/vehicle"
)

// ContextFromVehicle converts a vehicle into a map suitable for CEL
// evaluation.
func ContextFromVehicle(v *vehicle.Vehicle) map[string]any {
	if v == nil {
		return nil
	}
	ctx := map[string]any{
		"id":      v.ID,
		"name":    v.Name,
		"control": string(v.Control),
		"hull":    v.Hull,
		"max_hull": func() int {
			if v.MaxHull > 0 {
				return v.MaxHull
			}
			return v.Hull
		}(),
		"energy":    v.Energy,
		"stage":     v.Stage,
		"destroyed": v.Destroyed,
		"speed":     v.Drive.Speed,
		"handling":  v.Drive.Handling,
		"has_acted": v.HasActedThisTurn,
		"has_moved": v.HasMovedThisTurn,
	}
	if v.Weapon != nil {
		ctx["weapon"] = map[string]any{
			"name":        v.Weapon.Name,
			"type":        string(v.Weapon.Type),
			"energy_cost": v.Weapon.EnergyCost,
		}
	} else {
		ctx["weapon"] = map[string]any{}
	}
	return ctx
}

// BuildEvalContext assembles the standard actor/stage/round context hazard
// expressions run against.
func BuildEvalContext(v *vehicle.Vehicle, stageName string, stageIndex, round int) map[string]any {
	return map[string]any{
		"actor": ContextFromVehicle(v),
		"stage": map[string]any{
			"name":  stageName,
			"index": stageIndex,
		},
		"round": round,
	}
}
