// Package player defines the player model and the players.yml loader.
// players.yml is the single source of truth; every artifact playersync
// writes is derived from the list it holds.
package player

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Player is one entry in players.yml. UUID is the identity; Name and
// flags may change between runs. Any additional boolean key on the
// entry is collected into Flags.
type Player struct {
	UUID  string          `yaml:"uuid"`
	Name  string          `yaml:"name"`
	Flags map[string]bool `yaml:",inline"`
}

// Flag reports whether the named feature flag is present and true.
// An absent flag reads as false.
func (p Player) Flag(name string) bool {
	return p.Flags[name]
}

// listFile is the players.yml document layout.
type listFile struct {
	Players []Player `yaml:"players"`
}

// Load reads the player list from path, preserving document order.
// A missing file surfaces as an error satisfying
// errors.Is(err, os.ErrNotExist) so callers can downgrade it to a
// warning. A file without a players key yields an empty list.
// Individual fields are not validated here; consumers check what they
// need.
func Load(path string) ([]Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read players file: %w", err)
	}

	var doc listFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc.Players, nil
}

// Save writes the player list back to path in the players.yml layout,
// block style with 2-space indentation.
func Save(path string, players []Player) error {
	data, err := marshal(listFile{Players: players})
	if err != nil {
		return fmt.Errorf("marshal players: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func marshal(doc listFile) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// OfflineUUID derives the UUID an offline-mode server assigns to a
// player name: the MD5 of "OfflinePlayer:<name>" stamped as an
// RFC 4122 version 3 UUID, matching Java's UUID.nameUUIDFromBytes.
func OfflineUUID(name string) uuid.UUID {
	sum := md5.Sum([]byte("OfflinePlayer:" + name))
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	id, _ := uuid.FromBytes(sum[:])
	return id
}
