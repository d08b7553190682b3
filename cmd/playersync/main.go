package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"playersync/internal/config"
	"playersync/internal/keepinv"
	"playersync/internal/player"
	"playersync/internal/syncer"
	"playersync/internal/watch"
)

var (
	// Global flags
	rootDir string
	cfgFile string
	verbose bool

	// add flags
	addUUID    string
	addKeepInv bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command; running it without a subcommand
// performs a single sync pass.
var rootCmd = &cobra.Command{
	Use:   "playersync",
	Short: "Sync Minecraft server files from players.yml",
	Long: `playersync keeps three server artifacts in sync with players.yml:

  - whitelist.json is regenerated from the player list
  - server.properties gets max-players set to the player count
  - plugins/KeepInvIndividual/keepInvList.yml lists players with
    keepInventoryEnabled: true

All three are derived from players.yml on every run; running twice in a
row changes nothing.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runSync,
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Derive all server artifacts from players.yml once",
	RunE:  runSync,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch players.yml and re-sync on every change",
	Long: `Performs an initial sync, then blocks watching players.yml and
re-derives all artifacts whenever it changes. Stop with Ctrl-C.`,
	RunE: runWatch,
}

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Append a player to players.yml",
	Long: `Appends a player entry to players.yml. Without --uuid the
offline-mode UUID is derived from the name, the same way the vanilla
server does it. Run sync afterwards to regenerate the artifacts.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "server directory containing players.yml")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default <root>/playersync.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	addCmd.Flags().StringVar(&addUUID, "uuid", "", "player UUID (derived from the name when omitted)")
	addCmd.Flags().BoolVar(&addKeepInv, "keep-inventory", false, "opt the player into keep-inventory")

	rootCmd.AddCommand(syncCmd, watchCmd, addCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadPaths resolves the artifact paths from the config file, the
// environment, and the --root flag, in increasing precedence of the
// first two over the flag.
func loadPaths() (config.Paths, error) {
	path := cfgFile
	if path == "" {
		path = filepath.Join(rootDir, "playersync.yml")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Paths{}, err
	}
	if cfg.Root == "" {
		cfg.Root = rootDir
	}
	return cfg.Resolve(), nil
}

func runSync(cmd *cobra.Command, args []string) error {
	paths, err := loadPaths()
	if err != nil {
		return err
	}

	runner := syncer.New(paths, logger)
	runner.Out = cmd.OutOrStdout()
	return runner.Run()
}

func runWatch(cmd *cobra.Command, args []string) error {
	paths, err := loadPaths()
	if err != nil {
		return err
	}

	runner := syncer.New(paths, logger)
	runner.Out = cmd.OutOrStdout()

	// Initial pass before watching; a fatal error here aborts the
	// whole session rather than leaving a silently broken watcher.
	if err := runner.Run(); err != nil {
		return err
	}

	w, err := watch.New(runner, paths.Players, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.Run(ctx)
	})
	return g.Wait()
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	paths, err := loadPaths()
	if err != nil {
		return err
	}

	players, err := player.Load(paths.Players)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	id := addUUID
	if id == "" {
		id = player.OfflineUUID(name).String()
	} else {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return fmt.Errorf("invalid uuid %q: %w", id, err)
		}
		id = parsed.String()
	}

	for _, p := range players {
		if p.UUID == id {
			return fmt.Errorf("player %s already exists as %q", id, p.Name)
		}
	}

	entry := player.Player{UUID: id, Name: name}
	if addKeepInv {
		entry.Flags = map[string]bool{keepinv.FlagName: true}
	}
	players = append(players, entry)

	if err := player.Save(paths.Players, players); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) to %s\n", name, id, paths.Players)
	return nil
}
