// Package cli provides the cobra commands of the inventory binary.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"inventory/src/infra/config"
	"inventory/src/infra/logger"
)

// app carries what every command needs once configuration is loaded.
type app struct {
	cfg *config.Config
	log *slog.Logger
}

// NewRootCommand builds the inventory command tree. Running it without a
// subcommand starts the server.
func NewRootCommand() *cobra.Command {
	a := &app{}
	var logLevel string

	root := &cobra.Command{
		Use:           "inventory",
		Short:         "Product and category inventory API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			a.cfg = cfg
			a.log = logger.NewWithWriter(cfg.Log, cmd.ErrOrStderr())
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override APP_LOG_LEVEL (debug, info, warn, error)")

	root.AddCommand(
		newServeCommand(a),
		newMigrateCommand(a),
		newTokenCommand(a),
		newSeedCommand(a),
	)
	return root
}
