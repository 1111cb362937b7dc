package theme

import (
	"fmt"

	"bakehouse/zipporder/internal/app"
	"bakehouse/zipporder/internal/theme"

	"github.com/spf13/cobra"
)

// NewCommand returns the "theme" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the appearance",
		Long: `Show or change the appearance used by the app.

The choice is remembered in the storage backend and wins over the
theme-mode config key, which only applies until a choice is made.`,
	}

	cmd.AddCommand(getCommand())
	cmd.AddCommand(setCommand())
	cmd.AddCommand(toggleCommand())

	return cmd
}

func getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the theme mode and the resolved appearance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(s *theme.Store) error {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", s.Mode(), appearance(s.IsDark()))
				return nil
			})
		},
		SilenceUsage: true,
	}
}

func setCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <light|dark|system>",
		Short: "Choose a theme mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := theme.ParseMode(args[0])
			if err != nil {
				return err
			}
			return withStore(cmd, func(s *theme.Store) error {
				s.SetMode(mode)
				fmt.Fprintf(cmd.OutOrStdout(), "theme set to %s (%s)\n", s.Mode(), appearance(s.IsDark()))
				return nil
			})
		},
		SilenceUsage: true,
	}
}

func toggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(s *theme.Store) error {
				mode := s.Toggle()
				fmt.Fprintf(cmd.OutOrStdout(), "theme set to %s\n", mode)
				return nil
			})
		},
		SilenceUsage: true,
	}
}

// withStore opens the app for the duration of fn.
func withStore(cmd *cobra.Command, fn func(*theme.Store) error) error {
	a, err := app.Load(cmd.Context(), app.Options{Host: hostOverride})
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a.Theme)
}

// hostOverride replaces host detection in tests.
var hostOverride theme.Host

func appearance(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
