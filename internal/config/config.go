// Package config resolves the file paths playersync operates on.
// Every derivation step receives an explicit Paths value; nothing in
// the tool resolves files relative to the process working directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default artifact locations, relative to the server root.
const (
	DefaultPlayersFile    = "players.yml"
	DefaultWhitelistFile  = "whitelist.json"
	DefaultPropertiesFile = "server.properties"
)

// DefaultKeepInvFile is where the KeepInvIndividual plugin reads its
// membership list from.
var DefaultKeepInvFile = filepath.Join("plugins", "KeepInvIndividual", "keepInvList.yml")

// Config holds playersync configuration. All fields are optional; an
// empty field falls back to its default location under Root.
type Config struct {
	// Root is the server directory. Relative artifact paths are
	// resolved against it.
	Root string `yaml:"root"`

	// Per-artifact overrides.
	Players    string `yaml:"players"`
	Whitelist  string `yaml:"whitelist"`
	Properties string `yaml:"properties"`
	KeepInv    string `yaml:"keep_inv"`
}

// Paths is the fully resolved set of files one run touches.
type Paths struct {
	Players    string
	Whitelist  string
	Properties string
	KeepInv    string
}

// Load reads configuration from a YAML file. A missing file is not an
// error; defaults are returned. Environment variables override file
// values either way.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if root := os.Getenv("PLAYERSYNC_ROOT"); root != "" {
		c.Root = root
	}
	if p := os.Getenv("PLAYERSYNC_PLAYERS"); p != "" {
		c.Players = p
	}
	if p := os.Getenv("PLAYERSYNC_WHITELIST"); p != "" {
		c.Whitelist = p
	}
	if p := os.Getenv("PLAYERSYNC_PROPERTIES"); p != "" {
		c.Properties = p
	}
	if p := os.Getenv("PLAYERSYNC_KEEPINV"); p != "" {
		c.KeepInv = p
	}
}

// Resolve produces the final path set, filling defaults and joining
// relative paths onto Root.
func (c *Config) Resolve() Paths {
	root := c.Root
	if root == "" {
		root = "."
	}
	return Paths{
		Players:    resolve(root, c.Players, DefaultPlayersFile),
		Whitelist:  resolve(root, c.Whitelist, DefaultWhitelistFile),
		Properties: resolve(root, c.Properties, DefaultPropertiesFile),
		KeepInv:    resolve(root, c.KeepInv, DefaultKeepInvFile),
	}
}

func resolve(root, value, fallback string) string {
	if value == "" {
		value = fallback
	}
	if filepath.IsAbs(value) {
		return value
	}
	return filepath.Join(root, value)
}
