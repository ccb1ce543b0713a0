package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KGrykiel/eriast-derby/internal/combat"
	"github.com/KGrykiel/eriast-derby/internal/vehicle"
)

func TestLoadVehicle(t *testing.T) {
	loader := NewLoader([]string{"testdata"})

	spec, err := loader.LoadVehicle("Ironclad")
	require.NoError(t, err)
	assert.Equal(t, "Ironclad", spec.Name)
	require.NotNil(t, spec.Weapon)
	assert.Equal(t, 2, spec.Weapon.Damage.Count)
	assert.Equal(t, 6, spec.Weapon.Damage.Sides)
	assert.Equal(t, 1, spec.Weapon.Damage.Bonus)
	require.NotNil(t, spec.Skill)
	assert.Equal(t, combat.WeaponPlusSkill, spec.Skill.Mode)

	v, err := spec.Build("ironclad")
	require.NoError(t, err)
	assert.Equal(t, vehicle.ControlAI, v.Control)
	assert.Equal(t, 20, v.MaxHull)
	assert.Equal(t, 6, v.Energy, "starts at core capacity")
	assert.Equal(t, combat.Resistant, v.ResistanceLevel(combat.DamageFire))
	assert.Equal(t, combat.Vulnerable, v.ResistanceLevel(combat.DamageCold))
	assert.Equal(t, combat.Normal, v.ResistanceLevel(combat.DamageLightning))
}

func TestLoadVehicleMissing(t *testing.T) {
	loader := NewLoader([]string{"testdata"})
	_, err := loader.LoadVehicle("ghost-rider")
	assert.Error(t, err)
}

func TestBuildRejectsBadResistance(t *testing.T) {
	loader := NewLoader([]string{"testdata"})
	spec, err := loader.LoadVehicle("bad-resistance")
	require.NoError(t, err)

	_, err = spec.Build("rustbucket")
	assert.ErrorContains(t, err, "fireproof")
}

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name string
		spec VehicleSpec
	}{
		{"missing name", VehicleSpec{Hull: 10}},
		{"zero hull", VehicleSpec{Name: "Husk"}},
		{"zero speed", VehicleSpec{Name: "Husk", Hull: 5}},
		{"bad control", VehicleSpec{Name: "Husk", Hull: 5, Drive: vehicle.Drive{Speed: 2}, Control: "remote"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.spec.Build("husk")
			assert.Error(t, err)
		})
	}
}

// A preset without a drive block (or with speed 0) must be rejected at
// build time: an immobile, unarmed roster could otherwise loop a race
// without ever finishing.
func TestBuildRejectsImmobileDrive(t *testing.T) {
	spec := VehicleSpec{
		Name: "Deadweight",
		Hull: 12,
		Core: vehicle.PowerCore{Regen: 1, Capacity: 4},
	}
	_, err := spec.Build("deadweight")
	assert.ErrorContains(t, err, "drive speed")

	spec.Drive = vehicle.Drive{Name: "Spare Wheels", Speed: 1}
	_, err = spec.Build("deadweight")
	assert.NoError(t, err)
}

func TestLoadTrack(t *testing.T) {
	loader := NewLoader([]string{"testdata"})

	track, err := loader.LoadTrack("Scrap Run")
	require.NoError(t, err)
	assert.Equal(t, 12, track.TotalLength())
	assert.Len(t, track.Stages, 3)

	stage, idx := track.StageAt(0)
	assert.Equal(t, "Open Flats", stage.Name)
	assert.Equal(t, 0, idx)

	stage, idx = track.StageAt(5)
	assert.Equal(t, "Scrap Canyon", stage.Name)
	assert.Equal(t, 1, idx)

	// Past the end clamps to the final stage.
	stage, idx = track.StageAt(40)
	assert.Equal(t, "Caldera Sprint", stage.Name)
	assert.Equal(t, 2, idx)
}

func TestTrackValidate(t *testing.T) {
	assert.Error(t, Track{}.Validate())
	assert.Error(t, Track{Name: "Loop"}.Validate())
	assert.Error(t, Track{Name: "Loop", Stages: []Stage{{Name: "Flat", Length: 0}}}.Validate())
	assert.NoError(t, Track{Name: "Loop", Stages: []Stage{{Name: "Flat", Length: 3}}}.Validate())
}

func TestListVehicles(t *testing.T) {
	loader := NewLoader([]string{"testdata"})
	names := loader.ListVehicles()
	assert.Contains(t, names, "ironclad")
	assert.Contains(t, names, "bad-resistance")
}
