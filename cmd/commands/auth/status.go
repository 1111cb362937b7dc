package auth

import (
	"fmt"

	"bakehouse/zipporder/internal/app"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show who is signed in",
		Long: `Show the account of the persisted session, if any.

Example:
  zipporder auth status`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Load(cmd.Context(), app.Options{})
			if err != nil {
				return err
			}
			defer a.Close()

			state := a.Session.State()
			if !state.IsAuthenticated {
				fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s <%s>\n", state.User.Name, state.User.Email)
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
