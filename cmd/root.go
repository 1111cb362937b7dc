package cmd

import (
	"fmt"
	"os"

	"bakehouse/zipporder/cmd/commands/auth"
	cfgcmd "bakehouse/zipporder/cmd/commands/config"
	"bakehouse/zipporder/cmd/commands/orders"
	themecmd "bakehouse/zipporder/cmd/commands/theme"
	"bakehouse/zipporder/internal/app"
	"bakehouse/zipporder/internal/config"
	"bakehouse/zipporder/internal/log"
	"bakehouse/zipporder/internal/tui"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command. Without a subcommand it opens the app.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "zipporder",
		Short: "Order from the ZippOrder bakery in your terminal",
		Long: `zipporder is a terminal client for the ZippOrder bakery. Sign in or
create an account, then browse your orders and profile.

Running zipporder without a subcommand opens the full-screen app. When
stdout is not a terminal, or with --accessible (or ACCESSIBLE set in the
environment), it falls back to line-by-line prompts.

Quick start:
  zipporder                        # open the app
  zipporder auth login --email me@example.com
  zipporder orders list            # print your orders
  zipporder theme toggle           # switch light/dark`,
		Args:               cobra.NoArgs,
		PersistentPreRunE:  setupLogging,
		PersistentPostRunE: closeLogging,
		RunE:               runApp,
		SilenceUsage:       true,
	}

	cmd.Flags().Bool("accessible", false, "Use line-by-line prompts instead of the full-screen app")

	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(orders.NewCommand())
	cmd.AddCommand(themecmd.NewCommand())

	return cmd
}

// closeLog releases the log file opened by setupLogging.
var closeLog = func() error { return nil }

// setupLogging configures the logger from the config file for every command.
func setupLogging(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logDir, err := config.Dir()
	if err != nil {
		return err
	}
	closeLog, err = log.Setup(log.Options{
		Write: cfg.LogWriteEnabled(),
		Dir:   logDir,
		Level: cfg.LogLevelOrDefault(),
		JSON:  cfg.LogJSONEnabled(),
	})
	if err != nil {
		return err
	}
	log.WithComponent("cli").WithField("command", cmd.CommandPath()).Debug("starting")
	return nil
}

func closeLogging(cmd *cobra.Command, args []string) error {
	return closeLog()
}

func runApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	a, err := app.Open(cmd.Context(), cfg, app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	if linePrompts(cmd) {
		return tui.RunAccessible(cmd.Context(), a.Deps(), cmd.OutOrStdout(), true)
	}
	return tui.Run(a.Deps())
}

// stdoutIsTerminal is swapped out by tests.
var stdoutIsTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }

// linePrompts reports whether the app must run as plain line-by-line
// prompts: on --accessible, ACCESSIBLE in the environment, or when stdout
// cannot host a full-screen program.
func linePrompts(cmd *cobra.Command) bool {
	if accessible, _ := cmd.Flags().GetBool("accessible"); accessible {
		return true
	}
	if os.Getenv("ACCESSIBLE") != "" {
		return true
	}
	return !stdoutIsTerminal()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}
