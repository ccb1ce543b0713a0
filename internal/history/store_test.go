package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KGrykiel/eriast-derby/internal/event"
)

func TestAppendAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "race.jsonl")
	store, err := NewStore(path)
	require.NoError(t, err)
	defer store.Close()

	store.Emit(&event.RoundStartedEvent{Round: 1})
	store.Emit(&event.DamageResolvedEvent{
		TargetID: "ironclad", TargetName: "Ironclad",
		Attacker: "Vulture", Source: "Plasma Lance",
		DamageType: "fire", Raw: 10, Final: 5,
	})
	store.Emit(&event.GameOverEvent{Winner: "Vulture", Rounds: 7})
	require.NoError(t, store.Err())

	events, err := store.Load()
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, event.TypeRoundStarted, events[0].Type())
	dr, ok := events[1].(*event.DamageResolvedEvent)
	require.True(t, ok)
	assert.Equal(t, 5, dr.Final)
	assert.Equal(t, "Plasma Lance", dr.Source)

	over, ok := events[2].(*event.GameOverEvent)
	require.True(t, ok)
	assert.Equal(t, "Vulture", over.Winner)
}

func TestLoadSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "race.jsonl")

	store, err := NewStore(path)
	require.NoError(t, err)
	store.Emit(&event.RoundStartedEvent{Round: 1})
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	events, err := reopened.Load()
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 1, events[0].(*event.RoundStartedEvent).Round)
}

func TestLoadEmptyLog(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "empty.jsonl"))
	require.NoError(t, err)
	defer store.Close()

	events, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, events)
}
