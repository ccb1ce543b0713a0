package session

import (
	"fmt"

	"github.com/KGrykiel/eriast-derby/internal/data"
	"github.com/KGrykiel/eriast-derby/internal/dice"
	"github.com/KGrykiel/eriast-derby/internal/event"
	"github.com/KGrykiel/eriast-derby/internal/history"
	"github.com/KGrykiel/eriast-derby/internal/race"
	"github.com/KGrykiel/eriast-derby/internal/rules"
	"github.com/KGrykiel/eriast-derby/internal/vehicle"
)

// Config describes one race session.
type Config struct {
	// DataDirs is the preset search hierarchy, first match winning.
	DataDirs []string
	// Track is the track preset name.
	Track string
	// Vehicles are the entrant preset names, in grid order.
	Vehicles []string
	// Seed fixes the dice roller; zero seeds from entropy.
	Seed int64
	// HistoryPath, when set, appends the race log to a JSONL file.
	HistoryPath string
	// Sink receives notifications in addition to the session's own buffer.
	Sink event.Sink
}

// Session wires the loader, dice roller, rules registry, state machine, and
// event sinks into one race and owns their lifecycle.
type Session struct {
	loader    *data.Loader
	roller    *dice.Roller
	registry  *rules.Registry
	machine   *race.Machine
	store     *history.Store
	collector *event.Collector
	drained   int
}

// NewSession loads all presets and bootstraps a ready-to-run race.
func NewSession(cfg Config) (*Session, error) {
	if len(cfg.Vehicles) == 0 {
		return nil, fmt.Errorf("session needs at least one vehicle")
	}

	loader := data.NewLoader(cfg.DataDirs)
	track, err := loader.LoadTrack(cfg.Track)
	if err != nil {
		return nil, fmt.Errorf("failed to load track: %w", err)
	}

	var order []*vehicle.Vehicle
	for _, name := range cfg.Vehicles {
		spec, err := loader.LoadVehicle(name)
		if err != nil {
			return nil, fmt.Errorf("failed to load vehicle %q: %w", name, err)
		}
		v, err := spec.Build(name)
		if err != nil {
			return nil, err
		}
		order = append(order, v)
	}

	roller := dice.New()
	if cfg.Seed != 0 {
		roller = dice.NewSeeded(cfg.Seed)
	}

	// Bridge the rules registry to the session's roller so hazard
	// expressions share the deterministic dice stream.
	registry, err := rules.NewRegistry(func(expr string) int {
		n, err := dice.ParseNotation(expr)
		if err != nil {
			return 0
		}
		val, err := n.Roll(roller)
		if err != nil {
			return 0
		}
		return val
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rules registry: %w", err)
	}

	s := &Session{
		loader:    loader,
		roller:    roller,
		registry:  registry,
		collector: &event.Collector{},
	}

	sinks := event.Multi{s.collector}
	if cfg.HistoryPath != "" {
		store, err := history.NewStore(cfg.HistoryPath)
		if err != nil {
			return nil, err
		}
		s.store = store
		sinks = append(sinks, store)
	}
	if cfg.Sink != nil {
		sinks = append(sinks, cfg.Sink)
	}

	machine, err := race.NewMachine(order, track, roller, registry, sinks)
	if err != nil {
		return nil, err
	}
	s.machine = machine
	return s, nil
}

// Start runs the machine until the first pause or race end.
func (s *Session) Start() error {
	return s.machine.Run()
}

// Attack fires the paused player's weapon at the named vehicle.
func (s *Session) Attack(targetID string) error {
	return s.machine.PlayerAttack(targetID)
}

// Move drives the paused player's vehicle forward.
func (s *Session) Move() error {
	return s.machine.PlayerMove()
}

// Pass skips the paused player's action.
func (s *Session) Pass() error {
	return s.machine.PlayerPass()
}

// Machine exposes the underlying state machine for read-only queries.
func (s *Session) Machine() *race.Machine {
	return s.machine
}

// Messages drains human-readable lines for events emitted since the last
// call.
func (s *Session) Messages() []string {
	var lines []string
	for ; s.drained < len(s.collector.Events); s.drained++ {
		lines = append(lines, s.collector.Events[s.drained].Message())
	}
	return lines
}

// Standings returns the entrants ordered by distance covered, wrecks last.
func (s *Session) Standings() []*vehicle.Vehicle {
	order := append([]*vehicle.Vehicle(nil), s.machine.Vehicles()...)
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && ahead(order[j], order[j-1]); j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	return order
}

func ahead(a, b *vehicle.Vehicle) bool {
	if a.IsOperational() != b.IsOperational() {
		return a.IsOperational()
	}
	return a.Stage > b.Stage
}

// Close releases the history store, if one was opened.
func (s *Session) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
