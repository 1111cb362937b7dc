package tui

import (
	"context"

	"bakehouse/zipporder/internal/navigation"
	"bakehouse/zipporder/internal/tui/components"
	"bakehouse/zipporder/internal/tui/styles"
	"bakehouse/zipporder/internal/validation"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Messages ---

// submitFormMsg is sent by a form that passed validation. The app starts
// the matching session transition.
type submitFormMsg struct {
	mountID int
	route   navigation.AuthRoute
	values  map[string]string
}

// authResultMsg carries the outcome of a transition back to the form that
// started it. It is dropped when that form is no longer mounted.
type authResultMsg struct {
	mountID int
	route   navigation.AuthRoute
	err     error
}

// navigateAuthMsg asks the app to show route on the auth stack.
type navigateAuthMsg struct {
	route navigation.AuthRoute
}

// navigateBackMsg asks the app to pop the auth stack.
type navigateBackMsg struct{}

// --- Screen copy ---

type authLink struct {
	key   string
	desc  string
	route navigation.AuthRoute
	back  bool
}

type authScreen struct {
	title       string
	subtitle    string
	submitLabel string
	busyLabel   string
	failure     string
	links       []authLink
}

func screenFor(route navigation.AuthRoute) authScreen {
	switch route {
	case navigation.RouteRegister:
		return authScreen{
			title:       "Create Account",
			subtitle:    "Sign up to get started",
			submitLabel: "Sign Up",
			busyLabel:   "Creating account...",
			failure:     "Registration failed. Please try again.",
			links: []authLink{
				{key: "ctrl+l", desc: "already have an account? login", route: navigation.RouteLogin},
				{key: "esc", desc: "back", back: true},
			},
		}
	case navigation.RouteForgotPassword:
		return authScreen{
			title:       "Forgot Password?",
			subtitle:    "Enter your email address and we'll send you instructions to reset your password.",
			submitLabel: "Send Reset Link",
			busyLabel:   "Sending...",
			failure:     "Failed to send reset email. Please try again.",
			links: []authLink{
				{key: "esc", desc: "back to login", back: true},
			},
		}
	default:
		return authScreen{
			title:       "ZippOrder",
			subtitle:    "Bakery delights delivered",
			submitLabel: "Login",
			busyLabel:   "Signing in...",
			failure:     "Login failed. Please try again.",
			links: []authLink{
				{key: "ctrl+f", desc: "forgot password?", route: navigation.RouteForgotPassword},
				{key: "ctrl+r", desc: "create account", route: navigation.RouteRegister},
			},
		}
	}
}

// resetNotice is shown on Login after a reset request went through.
const resetNotice = "Reset Email Sent. If an account exists with this email, you will receive password reset instructions."

// --- Auth form model ---

// authFormModel is one mounted auth screen. Values and inline errors live
// in a validation.Form; the textinputs only mirror them for editing.
type authFormModel struct {
	route   navigation.AuthRoute
	screen  authScreen
	mountID int

	form   *validation.Form
	inputs []textinput.Model
	focus  int

	busy    bool
	spinner spinner.Model
	cancel  context.CancelFunc

	// alert is the transient failure message, notice a transient success
	// message. Both clear on the next key press.
	alert  string
	notice string
}

func newAuthFormModel(route navigation.AuthRoute, schema validation.Schema, mountID int) authFormModel {
	inputs := make([]textinput.Model, len(schema))
	for i, f := range schema {
		ti := textinput.New()
		ti.Placeholder = f.Placeholder
		ti.CharLimit = 128
		ti.Width = 36
		if f.Kind == validation.KindPassword {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		inputs[i] = ti
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	return authFormModel{
		route:   route,
		screen:  screenFor(route),
		mountID: mountID,
		form:    validation.NewForm(schema),
		inputs:  inputs,
		spinner: s,
	}
}

func (m authFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// unmount abandons any transition still in flight.
func (m authFormModel) unmount() {
	if m.cancel != nil {
		m.cancel()
	}
}

func (m authFormModel) Update(msg tea.Msg) (authFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m authFormModel) handleKey(msg tea.KeyMsg) (authFormModel, tea.Cmd) {
	// Input is locked while a transition is in flight.
	if m.busy {
		return m, nil
	}
	m.alert = ""
	m.notice = ""

	key := msg.String()
	for _, l := range m.screen.links {
		if l.key != key {
			continue
		}
		if l.back {
			return m, func() tea.Msg { return navigateBackMsg{} }
		}
		route := l.route
		return m, func() tea.Msg { return navigateAuthMsg{route: route} }
	}

	switch key {
	case "tab", "down":
		return m.setFocus(m.focus + 1), nil
	case "shift+tab", "up":
		return m.setFocus(m.focus - 1), nil
	case "enter":
		if m.focus < len(m.inputs)-1 {
			return m.setFocus(m.focus + 1), nil
		}
		return m.submit()
	}

	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.syncField(m.focus)
	return m, cmd
}

// syncField copies input i into the form. Set clears the field's error,
// so an edit removes the message shown next to it.
func (m authFormModel) syncField(i int) {
	name := m.form.Schema()[i].Name
	if v := m.inputs[i].Value(); v != m.form.Value(name) {
		m.form.Set(name, v)
	}
}

func (m authFormModel) setFocus(i int) authFormModel {
	if len(m.inputs) == 0 {
		return m
	}
	i = (i + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
	return m
}

// submit validates the whole form and, when it passes, locks the form and
// asks the app to run the transition.
func (m authFormModel) submit() (authFormModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	for i := range m.inputs {
		m.syncField(i)
	}
	if !m.form.Validate() {
		// Focus the first invalid field.
		for i, f := range m.form.Schema() {
			if m.form.Error(f.Name) != "" {
				m = m.setFocus(i)
				break
			}
		}
		return m, nil
	}

	m.busy = true
	req := submitFormMsg{mountID: m.mountID, route: m.route, values: m.form.Values()}
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg { return req })
}

// finish unlocks the form after its transition returned.
func (m authFormModel) finish() authFormModel {
	m.busy = false
	m.cancel = nil
	return m
}

func (m authFormModel) bindings() []components.KeyBinding {
	b := []components.KeyBinding{
		{Key: "tab", Desc: "next field"},
		{Key: "enter", Desc: "submit"},
	}
	for _, l := range m.screen.links {
		b = append(b, components.KeyBinding{Key: l.key, Desc: l.desc})
	}
	return append(b, components.KeyBinding{Key: "ctrl+t", Desc: "theme"}, components.KeyBinding{Key: "ctrl+c", Desc: "quit"})
}

func (m authFormModel) View(st styles.Styles, width, height int) string {
	title := st.Title.Render(m.screen.title)
	if m.route == navigation.RouteLogin {
		title = st.Brand.Render(m.screen.title)
	}
	subtitle := st.Subtitle.Width(min(48, max(width-4, 10))).Render(m.screen.subtitle)

	rows := []string{title, subtitle, ""}
	for i, f := range m.form.Schema() {
		ti := m.inputs[i]
		ti.PromptStyle = st.AccentText
		ti.TextStyle = st.Value
		ti.PlaceholderStyle = st.MutedText
		ti.Cursor.Style = st.AccentText

		box := st.InputBlurred
		if i == m.focus {
			box = st.InputFocused
		}
		if m.form.Error(f.Name) != "" {
			box = box.BorderForeground(st.Palette.Error)
		}

		rows = append(rows, st.Label.Render(f.Label), box.Render(ti.View()))
		if msg := m.form.Error(f.Name); msg != "" {
			rows = append(rows, st.ErrorText.Render(msg))
		}
	}

	rows = append(rows, "", m.renderButton(st))
	if m.alert != "" {
		rows = append(rows, "", st.ErrorText.Render(m.alert))
	}
	if m.notice != "" {
		rows = append(rows, "", st.SuccessText.Width(min(48, max(width-4, 10))).Render(m.notice))
	}

	card := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (m authFormModel) renderButton(st styles.Styles) string {
	if m.busy {
		sp := m.spinner
		sp.Style = lipgloss.NewStyle().Foreground(styles.OnPrimary).Background(st.Palette.PrimaryDark)
		return st.ButtonBusy.Render(sp.View() + " " + m.screen.busyLabel)
	}
	return st.Button.Render(m.screen.submitLabel)
}
