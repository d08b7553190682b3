// Package properties edits line-oriented key=value settings files such
// as server.properties. Edits are surgical: one line's value changes,
// every other line (comments included) keeps its content and order.
package properties

import (
	"fmt"
	"os"
	"strings"
)

// MaxPlayersKey is the server.properties setting playersync manages.
const MaxPlayersKey = "max-players"

// File is a settings file held in memory as its ordered lines.
// Loading strips line terminators; Save writes every line back
// terminated with \n, so CRLF input is normalized to LF.
type File struct {
	lines []string
}

// Load reads path into a File. A missing file surfaces as an error
// satisfying errors.Is(err, os.ErrNotExist).
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read properties file: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return &File{lines: lines}, nil
}

// Lines returns a copy of the current lines, mainly for tests.
func (f *File) Lines() []string {
	out := make([]string, len(f.lines))
	copy(out, f.lines)
	return out
}

// Set replaces the value of the first "key=" line and reports whether
// such a line existed. Later duplicates of the key are left untouched.
func (f *File) Set(key, value string) bool {
	prefix := key + "="
	for i, line := range f.lines {
		if strings.HasPrefix(line, prefix) {
			f.lines[i] = prefix + value
			return true
		}
	}
	return false
}

// Save rewrites path with the current lines, each terminated with \n.
// It writes even when nothing changed; callers rely on that to keep
// the reference no-op-rewrite behavior.
func (f *File) Save(path string) error {
	var b strings.Builder
	for _, line := range f.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write properties file: %w", err)
	}
	return nil
}
