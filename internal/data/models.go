package data

import (
	"fmt"

	"github.com/KGrykiel/eriast-derby/internal/combat"
	"github.com/KGrykiel/eriast-derby/internal/hazard"
	"github.com/KGrykiel/eriast-derby/internal/vehicle"
)

// VehicleSpec is the YAML authoring model for a race entrant. It replaces
// inspector-serialized presets with plain data files.
type VehicleSpec struct {
	Name        string            `yaml:"name"`
	Control     string            `yaml:"control"`
	Hull        int               `yaml:"hull"`
	Weapon      *vehicle.Weapon   `yaml:"weapon"`
	Drive       vehicle.Drive     `yaml:"drive"`
	Core        vehicle.PowerCore `yaml:"core"`
	Resistances map[string]string `yaml:"resistances"`
	Skill       *combat.Formula   `yaml:"skill"`
}

var validLevels = map[string]combat.ResistanceLevel{
	string(combat.Vulnerable): combat.Vulnerable,
	string(combat.Normal):     combat.Normal,
	string(combat.Resistant):  combat.Resistant,
	string(combat.Immune):     combat.Immune,
}

// Build validates the authoring data and constructs a race-ready vehicle.
func (s VehicleSpec) Build(id string) (*vehicle.Vehicle, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("vehicle %s: name is required", id)
	}
	if s.Hull <= 0 {
		return nil, fmt.Errorf("vehicle %s: hull must be positive, got %d", s.Name, s.Hull)
	}
	// A vehicle that cannot move can never finish, which would spin an
	// all-AI race forever.
	if s.Drive.Speed < 1 {
		return nil, fmt.Errorf("vehicle %s: drive speed must be at least 1, got %d", s.Name, s.Drive.Speed)
	}

	control := vehicle.ControlAI
	switch s.Control {
	case "", string(vehicle.ControlAI):
	case string(vehicle.ControlPlayer):
		control = vehicle.ControlPlayer
	default:
		return nil, fmt.Errorf("vehicle %s: unknown control type %q", s.Name, s.Control)
	}

	profile := combat.ResistanceProfile{}
	for dtype, lvl := range s.Resistances {
		level, ok := validLevels[lvl]
		if !ok {
			return nil, fmt.Errorf("vehicle %s: unknown resistance level %q for %s", s.Name, lvl, dtype)
		}
		profile.Set(combat.DamageType(dtype), level)
	}

	return &vehicle.Vehicle{
		ID:          id,
		Name:        s.Name,
		Control:     control,
		Hull:        s.Hull,
		MaxHull:     s.Hull,
		Energy:      s.Core.Capacity,
		Weapon:      s.Weapon,
		Drive:       s.Drive,
		Core:        s.Core,
		Skill:       s.Skill,
		Resistances: profile,
	}, nil
}

// Stage is one segment of the track.
type Stage struct {
	Name    string          `yaml:"name"`
	Length  int             `yaml:"length"`
	Hazards []hazard.Hazard `yaml:"hazards"`
}

// Track is the ordered list of stages a race runs over.
type Track struct {
	Name   string  `yaml:"name"`
	Stages []Stage `yaml:"stages"`
}

// TotalLength is the distance a vehicle must cover to finish.
func (t Track) TotalLength() int {
	total := 0
	for _, s := range t.Stages {
		total += s.Length
	}
	return total
}

// StageAt maps an absolute position to its stage and index. Positions past
// the end clamp to the final stage.
func (t Track) StageAt(position int) (Stage, int) {
	if len(t.Stages) == 0 {
		return Stage{}, 0
	}
	covered := 0
	for i, s := range t.Stages {
		covered += s.Length
		if position < covered {
			return s, i
		}
	}
	last := len(t.Stages) - 1
	return t.Stages[last], last
}

// Validate checks the track is raceable.
func (t Track) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("track name is required")
	}
	if len(t.Stages) == 0 {
		return fmt.Errorf("track %s: at least one stage is required", t.Name)
	}
	for _, s := range t.Stages {
		if s.Length <= 0 {
			return fmt.Errorf("track %s: stage %q must have positive length", t.Name, s.Name)
		}
	}
	return nil
}
