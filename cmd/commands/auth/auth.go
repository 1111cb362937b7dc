package auth

import (
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the signed-in ZippOrder account",
		Long: `Manage the signed-in ZippOrder account.

The session is kept in the configured storage backend, so signing in here
also signs in the full-screen app and the other way round.`,
	}

	cmd.AddCommand(LoginCommand())
	cmd.AddCommand(StatusCommand())
	cmd.AddCommand(LogoutCommand())

	return cmd
}
