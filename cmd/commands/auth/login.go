package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"bakehouse/zipporder/internal/app"
	"bakehouse/zipporder/internal/validation"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Long: `Sign in with email and password.

The password is prompted for when --password is not given and stdin is a
terminal.

Example:
  zipporder auth login --email jane@example.com`,
		Args:         cobra.NoArgs,
		RunE:         runLogin,
		SilenceUsage: true,
	}

	cmd.Flags().String("email", "", "Account email address")
	cmd.Flags().String("password", "", "Account password (optional, overrides prompt)")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	if password == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		password = string(b)
	}

	a, err := app.Load(cmd.Context(), app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	values := map[string]string{
		validation.FieldEmail:    strings.TrimSpace(email),
		validation.FieldPassword: password,
	}
	schema := validation.LoginSchema(a.Policy)
	var invalid validation.Errors
	if errors.As(schema.Validate(values).Err(), &invalid) {
		for _, f := range schema {
			if msg := invalid[f.Name]; msg != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", f.Label, msg)
			}
		}
		return errors.New("invalid credentials")
	}

	if err := a.Session.Login(cmd.Context(), values[validation.FieldEmail], values[validation.FieldPassword]); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", a.Session.State().User.Name)
	return nil
}
