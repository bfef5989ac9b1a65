package cli

import (
	"github.com/spf13/cobra"

	"inventory/src/app/server"
	"inventory/src/infra/repo"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd)
		},
	}
}

func (a *app) serve(cmd *cobra.Command) error {
	ctx := cmd.Context()
	a.log.Info("starting application",
		"port", a.cfg.Server.Port,
		"store", a.cfg.Store.Driver,
		"log_level", a.cfg.Log.Level,
	)

	store, closeStore, err := repo.Open(ctx, a.cfg, a.log)
	if err != nil {
		return err
	}
	defer closeStore()

	srv, err := server.New(a.cfg, a.log, store)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
