package player

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file reports os.ErrNotExist", func(t *testing.T) {
		players, err := Load(filepath.Join(t.TempDir(), "players.yml"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
		assert.Empty(t, players)
	})

	t.Run("document without players key yields empty list", func(t *testing.T) {
		path := writeFile(t, "something_else: true\n")
		players, err := Load(path)
		require.NoError(t, err)
		assert.Empty(t, players)
	})

	t.Run("preserves order and collects flags", func(t *testing.T) {
		path := writeFile(t, `players:
  - uuid: "b50ad385-829d-3141-a216-7e7d7539ba7f"
    name: Notch
    keepInventoryEnabled: true
  - uuid: "069a79f4-44e9-4726-a5be-fca90e38aaf5"
    name: Alice
`)
		players, err := Load(path)
		require.NoError(t, err)
		require.Len(t, players, 2)

		assert.Equal(t, "Notch", players[0].Name)
		assert.Equal(t, "b50ad385-829d-3141-a216-7e7d7539ba7f", players[0].UUID)
		assert.True(t, players[0].Flag("keepInventoryEnabled"))

		assert.Equal(t, "Alice", players[1].Name)
		assert.False(t, players[1].Flag("keepInventoryEnabled"))
	})

	t.Run("missing fields are tolerated at load time", func(t *testing.T) {
		path := writeFile(t, "players:\n  - uuid: abc\n")
		players, err := Load(path)
		require.NoError(t, err)
		require.Len(t, players, 1)
		assert.Equal(t, "abc", players[0].UUID)
		assert.Empty(t, players[0].Name)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := writeFile(t, "players: [\n")
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players.yml")
	in := []Player{
		{UUID: "a", Name: "Alice", Flags: map[string]bool{"keepInventoryEnabled": true}},
		{UUID: "b", Name: "Bob"},
	}

	require.NoError(t, Save(path, in))
	out, err := Load(path)
	require.NoError(t, err)

	if diff := cmp.Diff(in, out, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFlag(t *testing.T) {
	p := Player{UUID: "a", Name: "Alice"}
	assert.False(t, p.Flag("keepInventoryEnabled"), "absent flag map reads false")

	p.Flags = map[string]bool{"keepInventoryEnabled": false}
	assert.False(t, p.Flag("keepInventoryEnabled"))

	p.Flags["keepInventoryEnabled"] = true
	assert.True(t, p.Flag("keepInventoryEnabled"))
}

func TestOfflineUUID(t *testing.T) {
	// Known fixture: the offline-mode UUID the vanilla server assigns
	// to Notch.
	assert.Equal(t, "b50ad385-829d-3141-a216-7e7d7539ba7f", OfflineUUID("Notch").String())

	id := OfflineUUID("Alice")
	assert.Equal(t, uuid.Version(3), id.Version())
	assert.Equal(t, id, OfflineUUID("Alice"), "derivation is deterministic")
	assert.NotEqual(t, id, OfflineUUID("Bob"))
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "players.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
