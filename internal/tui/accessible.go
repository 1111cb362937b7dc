package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"bakehouse/zipporder/internal/domain"
	"bakehouse/zipporder/internal/navigation"
	"bakehouse/zipporder/internal/orders"
	"bakehouse/zipporder/internal/util"
	"bakehouse/zipporder/internal/validation"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("aborted by user")

// Menu choices of the line-oriented flow.
const (
	choiceLogin    = "login"
	choiceRegister = "register"
	choiceForgot   = "forgot"
	choiceOrders   = "orders"
	choiceTheme    = "theme"
	choiceSignOut  = "signout"
	choiceQuit     = "quit"
)

// RunAccessible drives the app with sequential huh prompts instead of the
// full-screen program. It is used when stdout is not a terminal or when
// accessible mode is requested; the same session, theme and validation
// rules apply. With accessible false each prompt is an interactive huh
// widget, which needs a terminal.
func RunAccessible(ctx context.Context, deps Deps, out io.Writer, accessible bool) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		state := deps.Session.State()
		var (
			choice string
			err    error
		)
		if state.IsAuthenticated {
			choice, err = selectAction(accessible, "Signed in as "+state.User.Name, []huh.Option[string]{
				huh.NewOption("View orders", choiceOrders),
				huh.NewOption(navigation.DrawerLabel(navigation.DrawerTheme, deps.Theme.IsDark()), choiceTheme),
				huh.NewOption("Sign Out", choiceSignOut),
				huh.NewOption("Quit", choiceQuit),
			})
		} else {
			choice, err = selectAction(accessible, "ZippOrder: bakery delights delivered", []huh.Option[string]{
				huh.NewOption("Login", choiceLogin),
				huh.NewOption("Create Account", choiceRegister),
				huh.NewOption("Forgot Password?", choiceForgot),
				huh.NewOption("Quit", choiceQuit),
			})
		}
		if err != nil {
			if errors.Is(err, ErrAborted) {
				return nil
			}
			return err
		}

		switch choice {
		case choiceQuit:
			return nil
		case choiceLogin, choiceRegister, choiceForgot:
			err = runAuthPrompt(ctx, deps, out, accessible, choice)
		case choiceOrders:
			err = printOrders(ctx, deps.Orders, out)
		case choiceTheme:
			mode := deps.Theme.Toggle()
			fmt.Fprintf(out, "Theme set to %s.\n", mode)
		case choiceSignOut:
			deps.Session.Logout()
			fmt.Fprintln(out, "Signed out.")
		}
		if err != nil && !errors.Is(err, ErrAborted) {
			return err
		}
	}
}

func selectAction(accessible bool, title string, options []huh.Option[string]) (string, error) {
	var choice string
	err := runForm(accessible, huh.NewGroup(
		huh.NewSelect[string]().
			Title(title).
			Options(options...).
			Value(&choice),
	))
	return choice, err
}

// runAuthPrompt collects one auth form and runs its transition behind a
// spinner. A rejected attempt is reported and the menu is shown again.
func runAuthPrompt(ctx context.Context, deps Deps, out io.Writer, accessible bool, choice string) error {
	var (
		schema validation.Schema
		route  navigation.AuthRoute
	)
	switch choice {
	case choiceRegister:
		schema, route = validation.RegisterSchema(deps.Policy), navigation.RouteRegister
	case choiceForgot:
		schema, route = validation.ForgotPasswordSchema(), navigation.RouteForgotPassword
	default:
		schema, route = validation.LoginSchema(deps.Policy), navigation.RouteLogin
	}
	screen := screenFor(route)

	values, err := promptSchema(accessible, schema)
	var invalid validation.Errors
	if errors.As(err, &invalid) {
		for _, f := range schema {
			if msg := invalid[f.Name]; msg != "" {
				fmt.Fprintf(out, "%s: %s\n", f.Label, msg)
			}
		}
		return nil
	}
	if err != nil {
		return err
	}

	err = spinner.New().
		Title(screen.busyLabel).
		Accessible(accessible).
		Output(out).
		Context(ctx).
		ActionWithErr(func(ctx context.Context) error {
			switch route {
			case navigation.RouteRegister:
				return deps.Session.Register(ctx, values[validation.FieldName], values[validation.FieldEmail], values[validation.FieldPassword])
			case navigation.RouteForgotPassword:
				return deps.Session.RequestPasswordReset(ctx, values[validation.FieldEmail])
			default:
				return deps.Session.Login(ctx, values[validation.FieldEmail], values[validation.FieldPassword])
			}
		}).
		Run()

	switch {
	case err == nil:
		if route == navigation.RouteForgotPassword {
			fmt.Fprintln(out, resetNotice)
		} else {
			fmt.Fprintf(out, "Welcome, %s!\n", deps.Session.State().User.Name)
		}
		return nil
	case errors.Is(err, domain.ErrSuperseded):
		return nil
	case domain.IsAuthError(err):
		fmt.Fprintln(out, screen.failure)
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, huh.ErrUserAborted):
		return ErrAborted
	default:
		return err
	}
}

// promptSchema asks for every field of schema. Each input validates with
// the field's rules against the values entered so far.
func promptSchema(accessible bool, schema validation.Schema) (map[string]string, error) {
	inputs := make([]string, len(schema))
	values := func() map[string]string {
		v := make(map[string]string, len(schema))
		for i, f := range schema {
			v[f.Name] = inputs[i]
		}
		return v
	}

	fields := make([]huh.Field, len(schema))
	for i, f := range schema {
		name := f.Name
		in := huh.NewInput().
			Title(f.Label).
			Placeholder(f.Placeholder).
			Value(&inputs[i]).
			Validate(func(string) error {
				if msg := schema.ValidateField(name, values()); msg != "" {
					return errors.New(msg)
				}
				return nil
			})
		if f.Kind == validation.KindPassword {
			in = in.EchoMode(huh.EchoModePassword)
		}
		fields[i] = in
	}

	if err := runForm(accessible, huh.NewGroup(fields...)); err != nil {
		return nil, err
	}

	// The inputs validated one by one; check the whole form once more.
	v := values()
	if err := schema.Validate(v).Err(); err != nil {
		return nil, err
	}
	return v, nil
}

func printOrders(ctx context.Context, repo orders.Repository, out io.Writer) error {
	if repo == nil {
		fmt.Fprintln(out, "No orders yet.")
		return nil
	}
	list, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "No orders yet.")
		return nil
	}

	fmt.Fprintln(out, "My Orders")
	for _, o := range list {
		fmt.Fprintf(out, "  %-12s  %s  %-9s  %8s\n", o.Title, o.Date, o.Status, util.FormatCents(o.Amount))
	}
	s := orders.Summarize(list)
	fmt.Fprintf(out, "  %d orders, %d pending, %s spent\n", s.Count, s.Pending, util.FormatCents(s.TotalSpent))
	return nil
}

// runForm creates and runs a huh.Form, translating ErrUserAborted to ErrAborted.
func runForm(accessible bool, groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(accessible).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}
