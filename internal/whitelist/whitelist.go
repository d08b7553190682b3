// Package whitelist generates the server's whitelist.json from the
// player list. The file is regenerated wholesale on every run; it is
// never merged with prior content.
package whitelist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"playersync/internal/player"
)

// Entry is one whitelist.json record. The vanilla server reads exactly
// these two fields.
type Entry struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// Generate overwrites path with the access list derived from players,
// one entry per player in input order. Every player must carry both a
// uuid and a name; a missing field fails the whole step. The file is
// written via a temp file and rename so a failed run never leaves
// partial content behind.
func Generate(players []player.Player, path string) error {
	entries := make([]Entry, 0, len(players))
	for i, p := range players {
		if p.UUID == "" {
			return fmt.Errorf("player %d (%q): missing uuid", i, p.Name)
		}
		if p.Name == "" {
			return fmt.Errorf("player %d (%s): missing name", i, p.UUID)
		}
		entries = append(entries, Entry{UUID: p.UUID, Name: p.Name})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal whitelist: %w", err)
	}

	if err := writeFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file in path's directory and
// renames it into place.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
