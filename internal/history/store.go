package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/KGrykiel/eriast-derby/internal/event"
)

// eventWrapper tags each serialized record so polymorphic events can be
// decoded again on Load.
type eventWrapper struct {
	Type  event.Type      `json:"type"`
	Event json.RawMessage `json:"data"`
}

// Store is an append-only JSONL race log. It implements event.Sink, so a
// session can wire it next to the presentation sink and replay the race
// afterwards. Lifecycle is owned by the race session, not the process.
type Store struct {
	file    *os.File
	lastErr error
}

// NewStore opens or creates the log file at path for appending.
func NewStore(path string) (*Store, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	return &Store{file: file}, nil
}

// Append marshals one event to the log.
func (s *Store) Append(evt event.Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	wrapper := eventWrapper{Type: evt.Type(), Event: data}
	line, err := json.Marshal(wrapper)
	if err != nil {
		return err
	}
	if _, err := s.file.Write(append(line, '\n')); err != nil {
		return err
	}
	return nil
}

// Emit satisfies event.Sink. Write failures are remembered rather than
// propagated; the engine must not stall on a full disk.
func (s *Store) Emit(evt event.Event) {
	if err := s.Append(evt); err != nil {
		s.lastErr = err
	}
}

// Err returns the last Emit failure, if any.
func (s *Store) Err() error { return s.lastErr }

// Load replays the entire log back into typed events.
func (s *Store) Load() ([]event.Event, error) {
	if _, err := s.file.Seek(0, 0); err != nil {
		return nil, err
	}

	var events []event.Event
	scanner := bufio.NewScanner(s.file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var wrapper eventWrapper
		if err := json.Unmarshal(line, &wrapper); err != nil {
			return nil, fmt.Errorf("corrupt history line: %w", err)
		}
		evt, err := decode(wrapper)
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// Close releases the underlying file.
func (s *Store) Close() error {
	return s.file.Close()
}

func decode(w eventWrapper) (event.Event, error) {
	var evt event.Event
	switch w.Type {
	case event.TypePhaseChanged:
		evt = &event.PhaseChangedEvent{}
	case event.TypeRoundStarted:
		evt = &event.RoundStartedEvent{}
	case event.TypeRoundEnded:
		evt = &event.RoundEndedEvent{}
	case event.TypeTurnStarted:
		evt = &event.TurnStartedEvent{}
	case event.TypeTurnEnded:
		evt = &event.TurnEndedEvent{}
	case event.TypeMovementMade:
		evt = &event.MovementMadeEvent{}
	case event.TypeEnergyChanged:
		evt = &event.EnergyChangedEvent{}
	case event.TypeDamageResolved:
		evt = &event.DamageResolvedEvent{}
	case event.TypeVehicleDestroyed:
		evt = &event.VehicleDestroyedEvent{}
	case event.TypeHazardTriggered:
		evt = &event.HazardTriggeredEvent{}
	case event.TypeCheckResolved:
		evt = &event.CheckResolvedEvent{}
	case event.TypeGameOver:
		evt = &event.GameOverEvent{}
	case event.TypeWarning:
		evt = &event.WarningEvent{}
	default:
		return nil, fmt.Errorf("unknown event type in history: %s", w.Type)
	}
	if err := json.Unmarshal(w.Event, evt); err != nil {
		return nil, err
	}
	return evt, nil
}
