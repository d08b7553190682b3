// Package syncer runs the full derivation pipeline: load players.yml,
// then regenerate the whitelist, patch server.properties, and rewrite
// the KeepInvIndividual list, in that fixed order.
//
// Missing optional files downgrade to warnings and the run continues;
// the first hard error (notably a player missing a required field)
// aborts the remaining steps. Each artifact is updated independently —
// there is no rollback across files.
package syncer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"playersync/internal/config"
	"playersync/internal/keepinv"
	"playersync/internal/player"
	"playersync/internal/properties"
	"playersync/internal/whitelist"
)

const banner = "============================================================"

// Runner executes one synchronization pass over a fixed set of paths.
type Runner struct {
	Paths config.Paths
	Log   *zap.Logger

	// Out receives user-facing status lines, warnings, and the final
	// banner. Defaults to os.Stdout via New.
	Out io.Writer
}

// New returns a Runner writing status output to stdout.
func New(paths config.Paths, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{Paths: paths, Log: log, Out: os.Stdout}
}

// Run performs one full pass. With zero players loaded it prints a
// notice and returns without touching any output file.
func (r *Runner) Run() error {
	fmt.Fprintln(r.Out, banner)
	fmt.Fprintln(r.Out, "Minecraft Server Player Management")
	fmt.Fprintln(r.Out, banner)

	players, err := player.Load(r.Paths.Players)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		fmt.Fprintf(r.Out, "Warning: %s does not exist\n", r.Paths.Players)
	}

	if len(players) == 0 {
		fmt.Fprintf(r.Out, "No players found in %s\n", r.Paths.Players)
		return nil
	}
	fmt.Fprintf(r.Out, "Loaded %d players from %s\n", len(players), r.Paths.Players)

	if err := r.generateWhitelist(players); err != nil {
		return err
	}
	if err := r.updateProperties(players); err != nil {
		return err
	}
	if err := r.updateKeepInv(players); err != nil {
		return err
	}

	fmt.Fprintln(r.Out, banner)
	fmt.Fprintln(r.Out, "Player management completed successfully!")
	fmt.Fprintln(r.Out, banner)
	return nil
}

func (r *Runner) generateWhitelist(players []player.Player) error {
	if err := whitelist.Generate(players, r.Paths.Whitelist); err != nil {
		return fmt.Errorf("generate whitelist: %w", err)
	}
	r.Log.Debug("whitelist regenerated",
		zap.String("path", r.Paths.Whitelist),
		zap.Int("players", len(players)))
	fmt.Fprintf(r.Out, "Generated %s with %d players\n",
		filepath.Base(r.Paths.Whitelist), len(players))
	return nil
}

func (r *Runner) updateProperties(players []player.Player) error {
	f, err := properties.Load(r.Paths.Properties)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(r.Out, "Warning: %s does not exist\n", r.Paths.Properties)
			return nil
		}
		return err
	}

	count := len(players)
	found := f.Set(properties.MaxPlayersKey, strconv.Itoa(count))
	if err := f.Save(r.Paths.Properties); err != nil {
		return err
	}

	if found {
		r.Log.Debug("properties updated",
			zap.String("path", r.Paths.Properties),
			zap.Int("max_players", count))
		fmt.Fprintf(r.Out, "Updated %s: %s=%d\n",
			filepath.Base(r.Paths.Properties), properties.MaxPlayersKey, count)
	} else {
		fmt.Fprintf(r.Out, "Warning: %s property not found in %s\n",
			properties.MaxPlayersKey, filepath.Base(r.Paths.Properties))
	}
	return nil
}

func (r *Runner) updateKeepInv(players []player.Player) error {
	if _, err := os.Stat(r.Paths.KeepInv); os.IsNotExist(err) {
		fmt.Fprintf(r.Out, "Warning: %s does not exist\n", r.Paths.KeepInv)
	}

	n, err := keepinv.Write(players, r.Paths.KeepInv)
	if err != nil {
		return fmt.Errorf("update keep-inventory list: %w", err)
	}
	r.Log.Debug("keep-inventory list rewritten",
		zap.String("path", r.Paths.KeepInv),
		zap.Int("members", n))
	fmt.Fprintf(r.Out, "Updated %s with %d players\n",
		filepath.Base(r.Paths.KeepInv), n)
	return nil
}
