package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"inventory/src/infra/auth"
)

func newTokenCommand(a *app) *cobra.Command {
	var (
		subject string
		roles   []string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a signed bearer token for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, r := range roles {
				if r != auth.RoleAdmin && r != auth.RoleManager {
					return fmt.Errorf("unknown role %q, want %s or %s", r, auth.RoleAdmin, auth.RoleManager)
				}
			}
			svc, err := auth.NewTokenService(a.cfg.Auth)
			if err != nil {
				return err
			}
			token, err := svc.Issue(subject, roles)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "developer", "sub claim of the token")
	cmd.Flags().StringSliceVar(&roles, "role", nil, "role to grant (admin, manager); repeatable")
	return cmd
}
