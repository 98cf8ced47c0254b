package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/guessr/internal/app"
	"github.com/abhisek/guessr/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a game",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	playCmd.Flags().Bool("no-store", false, "Do not record games")
}

// runApp loads the catalog, opens the game log, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	bank, err := loadBank(cmd)
	if err != nil {
		return err
	}
	policy, err := resolvePolicy(cmd)
	if err != nil {
		return err
	}

	regCfg := session.RegistryConfig{
		Policy:      policy,
		IdleTimeout: cfg.IdleTimeout,
		Seed:        resolveSeed(cmd),
		Logger:      logger,
	}
	opts := app.Options{Logger: logger}

	if noStore, _ := cmd.Flags().GetBool("no-store"); !noStore {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		opts.Games = st.EventRepo()
		regCfg.Recorder = opts.Games
	}

	opts.Registry = session.NewRegistry(bank, regCfg)
	logger.Info("starting game UI",
		zap.String("catalog", bank.Name()),
		zap.Bool("recording", opts.Games != nil))

	if err := app.Run(cmd.Context(), opts); err != nil {
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}
