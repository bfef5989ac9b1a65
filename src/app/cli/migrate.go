package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"inventory/src/infra/config"
	"inventory/src/infra/db"
)

func newMigrateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.withMigrator(cmd, func(m *db.Migrator) error {
					return m.Up(cmd.Context())
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.withMigrator(cmd, func(m *db.Migrator) error {
					return m.Down(cmd.Context())
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.withMigrator(cmd, func(m *db.Migrator) error {
					states, err := m.Status(cmd.Context())
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "VERSION\tAPPLIED\tSOURCE")
					for _, s := range states {
						fmt.Fprintf(w, "%d\t%t\t%s\n", s.Version, s.Applied, s.Path)
					}
					return w.Flush()
				})
			},
		},
	)
	return cmd
}

func (a *app) withMigrator(cmd *cobra.Command, fn func(*db.Migrator) error) error {
	if a.cfg.Store.Driver != config.DriverPostgres {
		return fmt.Errorf("migrations apply to the postgres store, APP_STORE_DRIVER is %q", a.cfg.Store.Driver)
	}

	pg, err := db.New(cmd.Context(), a.cfg.Database, a.log)
	if err != nil {
		return err
	}
	defer pg.Close()

	m, err := db.NewMigrator(pg, a.log)
	if err != nil {
		return err
	}
	defer m.Close()

	return fn(m)
}
