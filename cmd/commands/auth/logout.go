package auth

import (
	"fmt"

	"bakehouse/zipporder/internal/app"

	"github.com/spf13/cobra"
)

func LogoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Load(cmd.Context(), app.Options{})
			if err != nil {
				return err
			}
			defer a.Close()

			a.Session.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
