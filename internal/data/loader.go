package data

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader handles reading and instantiating records from the read-only data
// layer. Directories are searched in order, so a campaign directory can
// shadow the stock presets.
type Loader struct {
	dataDirs []string
}

// NewLoader initializes a Loader with the given data directory fallback
// hierarchy.
func NewLoader(dataDirs []string) *Loader {
	return &Loader{dataDirs: dataDirs}
}

// LoadVehicle reads a vehicle preset by name and builds the race-ready
// vehicle.
func (l *Loader) LoadVehicle(name string) (VehicleSpec, error) {
	var spec VehicleSpec
	ref := filepath.Join("vehicles", fmt.Sprintf("%s.yaml", slug(name)))
	if err := l.load(ref, &spec); err != nil {
		return VehicleSpec{}, err
	}
	return spec, nil
}

// LoadTrack reads and validates a track definition by name.
func (l *Loader) LoadTrack(name string) (Track, error) {
	var t Track
	ref := filepath.Join("tracks", fmt.Sprintf("%s.yaml", slug(name)))
	if err := l.load(ref, &t); err != nil {
		return Track{}, err
	}
	if err := t.Validate(); err != nil {
		return Track{}, err
	}
	return t, nil
}

// ListVehicles returns the preset names available across the data
// directories, first occurrence winning.
func (l *Loader) ListVehicles() []string {
	seen := map[string]bool{}
	var names []string
	for _, dir := range l.dataDirs {
		entries, err := os.ReadDir(filepath.Join(dir, "vehicles"))
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := strings.TrimSuffix(e.Name(), ".yaml")
			if name == e.Name() || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func (l *Loader) load(ref string, target any) error {
	for _, dir := range l.dataDirs {
		path := filepath.Join(dir, ref)
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		defer f.Close()
		decoder := yaml.NewDecoder(f)
		decoder.KnownFields(true)
		if err := decoder.Decode(target); err != nil {
			return fmt.Errorf("failed to decode %s: %w", ref, err)
		}
		return nil
	}
	return fmt.Errorf("could not find %s in any data directory", ref)
}

func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
