// Package keepinv writes the KeepInvIndividual plugin's membership
// list: the UUIDs of every player who opted into keeping their
// inventory on death.
package keepinv

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"playersync/internal/player"
)

// FlagName is the players.yml flag that opts a player into the list.
const FlagName = "keepInventoryEnabled"

// list is the keepInvList.yml document layout the plugin expects.
type list struct {
	Players []string `yaml:"players"`
}

// Members returns the UUIDs of players whose opt-in flag is present
// and true, in input order. A player without the flag is excluded.
func Members(players []player.Player) []string {
	var ids []string
	for _, p := range players {
		if p.Flag(FlagName) {
			ids = append(ids, p.UUID)
		}
	}
	return ids
}

// Write overwrites path with the membership list derived from players,
// creating missing parent directories first. Prior file content is
// discarded entirely. Returns the number of members written.
func Write(players []player.Player, path string) (int, error) {
	ids := Members(players)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("create plugin directory: %w", err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(list{Players: ids}); err != nil {
		return 0, fmt.Errorf("marshal membership list: %w", err)
	}
	if err := enc.Close(); err != nil {
		return 0, fmt.Errorf("marshal membership list: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return len(ids), nil
}
