package config

import (
	"bakehouse/zipporder/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage zipporder configuration",
		Long: "View and modify persistent zipporder settings.\n\n" +
			"Configuration is stored at ~/.config/zipporder/config.json.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
