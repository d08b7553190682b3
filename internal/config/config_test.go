package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	cfg := &Config{Root: "/srv/mc"}
	paths := cfg.Resolve()

	assert.Equal(t, filepath.Join("/srv/mc", "players.yml"), paths.Players)
	assert.Equal(t, filepath.Join("/srv/mc", "whitelist.json"), paths.Whitelist)
	assert.Equal(t, filepath.Join("/srv/mc", "server.properties"), paths.Properties)
	assert.Equal(t, filepath.Join("/srv/mc", "plugins", "KeepInvIndividual", "keepInvList.yml"), paths.KeepInv)
}

func TestResolveOverrides(t *testing.T) {
	t.Run("relative overrides join onto root", func(t *testing.T) {
		cfg := &Config{Root: "/srv/mc", Whitelist: "config/whitelist.json"}
		paths := cfg.Resolve()
		assert.Equal(t, filepath.Join("/srv/mc", "config", "whitelist.json"), paths.Whitelist)
	})

	t.Run("absolute overrides win as-is", func(t *testing.T) {
		cfg := &Config{Root: "/srv/mc", Properties: "/etc/minecraft/server.properties"}
		paths := cfg.Resolve()
		assert.Equal(t, "/etc/minecraft/server.properties", paths.Properties)
	})

	t.Run("empty root means current directory", func(t *testing.T) {
		paths := (&Config{}).Resolve()
		assert.Equal(t, "players.yml", paths.Players)
	})
}

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "playersync.yml"))
		require.NoError(t, err)
		assert.Empty(t, cfg.Root)
	})

	t.Run("reads yaml fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "playersync.yml")
		require.NoError(t, os.WriteFile(path, []byte("root: /srv/mc\nkeep_inv: plugins/Other/list.yml\n"), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/srv/mc", cfg.Root)
		assert.Equal(t, filepath.Join("/srv/mc", "plugins", "Other", "list.yml"), cfg.Resolve().KeepInv)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "playersync.yml")
		require.NoError(t, os.WriteFile(path, []byte("root: [\n"), 0644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Run("PLAYERSYNC_ROOT overrides file value", func(t *testing.T) {
		t.Setenv("PLAYERSYNC_ROOT", "/env/root")

		path := filepath.Join(t.TempDir(), "playersync.yml")
		require.NoError(t, os.WriteFile(path, []byte("root: /file/root\n"), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/env/root", cfg.Root)
	})

	t.Run("per-artifact variables", func(t *testing.T) {
		t.Setenv("PLAYERSYNC_PLAYERS", "/data/players.yml")
		t.Setenv("PLAYERSYNC_WHITELIST", "/data/whitelist.json")
		t.Setenv("PLAYERSYNC_PROPERTIES", "/data/server.properties")
		t.Setenv("PLAYERSYNC_KEEPINV", "/data/keepInvList.yml")

		cfg, err := Load(filepath.Join(t.TempDir(), "playersync.yml"))
		require.NoError(t, err)

		paths := cfg.Resolve()
		assert.Equal(t, "/data/players.yml", paths.Players)
		assert.Equal(t, "/data/whitelist.json", paths.Whitelist)
		assert.Equal(t, "/data/server.properties", paths.Properties)
		assert.Equal(t, "/data/keepInvList.yml", paths.KeepInv)
	})
}
