package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/guessr/internal/catalog"
	"github.com/abhisek/guessr/internal/config"
	"github.com/abhisek/guessr/internal/engine"
	"github.com/abhisek/guessr/internal/logging"
	"github.com/abhisek/guessr/internal/questionbank"
	"github.com/abhisek/guessr/internal/store"
)

var (
	logger *zap.Logger
	cfg    config.Config
)

var rootCmd = &cobra.Command{
	Use:   "guessr",
	Short: "Think of something and I will guess it",
	Long: `guessr asks yes/no questions about what you are thinking of and names it
in as few questions as it can. Answers may be hedged, and one answer can
be taken back.

Run without arguments to start a game.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		logFile := cfg.LogFile
		// Keep log lines off the screen while the TUI owns it.
		if logFile == "" && isInteractive(cmd) {
			dbPath, err := resolveDBPath(cmd)
			if err != nil {
				return fmt.Errorf("resolve DB path: %w", err)
			}
			logFile = store.LogPath(dbPath)
		}
		logger, err = logging.New(logging.Options{Level: cfg.LogLevel, Verbose: verbose, File: logFile})
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the command tree until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides GUESSR_DB env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Catalog file to play with (overrides GUESSR_CATALOG; default is the built-in catalog)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Random seed for question order (overrides GUESSR_SEED; 0 draws one)")
	rootCmd.PersistentFlags().Float64("margin", 0, "Score lead needed to declare a guess (overrides GUESSR_MARGIN)")
	rootCmd.Flags().Bool("no-store", false, "Do not record games")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

func isInteractive(cmd *cobra.Command) bool {
	return cmd == rootCmd || cmd == playCmd
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then GUESSR_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the game log at the resolved path.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// loadBank builds the question bank from --catalog, then GUESSR_CATALOG,
// then the built-in catalog.
func loadBank(cmd *cobra.Command) (*questionbank.Bank, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = cfg.CatalogPath
	}

	var (
		c   *catalog.Catalog
		err error
	)
	if path == "" {
		c, err = catalog.Seed()
	} else {
		c, err = catalog.Load(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	bank, err := questionbank.Build(c)
	if err != nil {
		return nil, fmt.Errorf("build question bank: %w", err)
	}
	if logger != nil {
		logger.Debug("catalog loaded",
			zap.String("name", bank.Name()),
			zap.Int("candidates", bank.Len()),
			zap.Int("questions", bank.TotalQuestions()))
	}
	return bank, nil
}

// resolveSeed returns --seed when set, else GUESSR_SEED.
func resolveSeed(cmd *cobra.Command) uint64 {
	if cmd.Flags().Changed("seed") {
		s, _ := cmd.Flags().GetUint64("seed")
		return s
	}
	return cfg.Seed
}

// resolvePolicy returns the termination policy from --margin or
// GUESSR_MARGIN.
func resolvePolicy(cmd *cobra.Command) (engine.Policy, error) {
	margin := cfg.Margin
	if cmd.Flags().Changed("margin") {
		margin, _ = cmd.Flags().GetFloat64("margin")
		if margin <= 0 {
			return engine.Policy{}, fmt.Errorf("--margin must be positive, got %v", margin)
		}
	}
	if margin <= 0 {
		return engine.DefaultPolicy(), nil
	}
	return engine.Policy{Margin: margin}, nil
}
