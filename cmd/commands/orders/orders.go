package orders

import (
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Browse your order history",
		Long: `Browse the order history of the signed-in account.

Sign in first with "zipporder auth login" or the full-screen app.`,
	}

	cmd.AddCommand(ListCommand())

	return cmd
}
