// Package tui is the full-screen ZippOrder client. A single Bubbletea
// program hosts both halves of the app; which half is mounted follows the
// session through a navigation.Gate.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bakehouse/zipporder/internal/domain"
	"bakehouse/zipporder/internal/log"
	"bakehouse/zipporder/internal/navigation"
	"bakehouse/zipporder/internal/orders"
	"bakehouse/zipporder/internal/services/auth"
	"bakehouse/zipporder/internal/theme"
	"bakehouse/zipporder/internal/tui/components"
	"bakehouse/zipporder/internal/tui/styles"
	"bakehouse/zipporder/internal/validation"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Deps are the shared stores the app is built around.
type Deps struct {
	Session *auth.Session
	Theme   *theme.Store
	Orders  orders.Repository
	Policy  validation.PasswordPolicy
}

// themeChangedMsg reports that the host color scheme flipped the resolved
// appearance.
type themeChangedMsg struct{}

// appModel is the top-level Bubbletea model. It owns the gate and the
// mounted views of whichever subtree is current.
type appModel struct {
	deps Deps
	gate *navigation.Gate

	// Auth subtree: one mounted form per stack entry, root first.
	stack *navigation.AuthStack
	forms []authFormModel

	// Main subtree.
	main mainModel

	nextMount int

	// status is a one-line confirmation shown above the footer until the
	// next key press.
	status string

	width  int
	height int
}

func newAppModel(deps Deps) appModel {
	m := appModel{
		deps:  deps,
		gate:  navigation.NewGate(),
		stack: navigation.NewAuthStack(),
	}
	m.forms = []authFormModel{m.newForm(navigation.RouteLogin)}
	// A restored session starts directly in the main subtree.
	if sub, changed := m.gate.Observe(deps.Session.State()); changed && sub == navigation.SubtreeMain {
		m.forms = nil
		m.main = newMainModel(deps.Orders, m.mount())
	}
	return m
}

// Run starts the TUI and blocks until the user quits.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps), tea.WithAltScreen())
	unsubscribe := deps.Theme.Subscribe(func(bool) { p.Send(themeChangedMsg{}) })
	defer unsubscribe()
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run zipporder: %w", err)
	}
	final.(appModel).unmountAuth()
	return nil
}

func (m *appModel) mount() int {
	m.nextMount++
	return m.nextMount
}

func (m *appModel) newForm(route navigation.AuthRoute) authFormModel {
	var schema validation.Schema
	switch route {
	case navigation.RouteRegister:
		schema = validation.RegisterSchema(m.deps.Policy)
	case navigation.RouteForgotPassword:
		schema = validation.ForgotPasswordSchema()
	default:
		schema = validation.LoginSchema(m.deps.Policy)
	}
	return newAuthFormModel(route, schema, m.mount())
}

func (m appModel) Init() tea.Cmd {
	if m.gate.Current() == navigation.SubtreeMain {
		return m.main.Init()
	}
	return m.forms[0].Init()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m, gateCmd := m.observeSession()
	return m, tea.Batch(cmd, gateCmd)
}

func (m appModel) update(msg tea.Msg) (appModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		switch msg.String() {
		case "ctrl+c":
			m.unmountAuth()
			return m, tea.Quit
		case "ctrl+t":
			return m.toggleTheme(), nil
		}

	// --- Auth subtree ---

	case submitFormMsg:
		return m.startTransition(msg)

	case authResultMsg:
		return m.handleResult(msg), nil

	case navigateAuthMsg:
		return m.navigateAuth(msg.route)

	case navigateBackMsg:
		if m.stack.Back() {
			return m.syncForms()
		}
		return m, nil

	// --- Main subtree ---

	case toggleThemeMsg:
		return m.toggleTheme(), nil

	case themeChangedMsg:
		// Styles are derived from the store on every View; receiving
		// the message is enough to repaint.
		return m, nil

	case signOutMsg:
		m.deps.Session.Logout()
		return m, nil

	case spinner.TickMsg:
		// Forward to every mounted view so each spinner keeps its own
		// tick chain; views ignore ticks for other spinner IDs.
		var cmds []tea.Cmd
		for i := range m.forms {
			var cmd tea.Cmd
			m.forms[i], cmd = m.forms[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.gate.Current() == navigation.SubtreeMain {
			var cmd tea.Cmd
			m.main, cmd = m.main.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m.updateActive(msg)
}

// updateActive delegates msg to the visible view.
func (m appModel) updateActive(msg tea.Msg) (appModel, tea.Cmd) {
	if m.gate.Current() == navigation.SubtreeMain {
		var cmd tea.Cmd
		m.main, cmd = m.main.Update(msg)
		return m, cmd
	}
	if len(m.forms) == 0 {
		return m, nil
	}
	top := len(m.forms) - 1
	var cmd tea.Cmd
	m.forms[top], cmd = m.forms[top].Update(msg)
	return m, cmd
}

// observeSession runs the gate against the current session and swaps the
// mounted subtree when it flipped.
func (m appModel) observeSession() (appModel, tea.Cmd) {
	sub, changed := m.gate.Observe(m.deps.Session.State())
	if !changed {
		return m, nil
	}

	log.WithComponent("tui").WithField("subtree", sub.String()).Debug("switching subtree")
	if sub == navigation.SubtreeMain {
		m.unmountAuth()
		m.forms = nil
		m.main = newMainModel(m.deps.Orders, m.mount())
		return m, m.main.Init()
	}

	m.main = mainModel{}
	m.stack.Reset()
	m.forms = []authFormModel{m.newForm(navigation.RouteLogin)}
	return m, m.forms[0].Init()
}

func (m appModel) unmountAuth() {
	for _, f := range m.forms {
		f.unmount()
	}
}

func (m appModel) navigateAuth(route navigation.AuthRoute) (appModel, tea.Cmd) {
	m.stack.Navigate(route)
	return m.syncForms()
}

// syncForms makes the mounted forms match the auth stack: forms above a
// popped route are unmounted and a pushed route gets a fresh form.
func (m appModel) syncForms() (appModel, tea.Cmd) {
	routes := m.stack.Routes()

	keep := 0
	for keep < len(m.forms) && keep < len(routes) && m.forms[keep].route == routes[keep] {
		keep++
	}
	for _, f := range m.forms[keep:] {
		f.unmount()
	}
	m.forms = m.forms[:keep]

	var cmds []tea.Cmd
	for _, r := range routes[keep:] {
		f := m.newForm(r)
		m.forms = append(m.forms, f)
		cmds = append(cmds, f.Init())
	}
	return m, tea.Batch(cmds...)
}

// formIndex returns the position of the mounted form with mountID, or -1.
func (m appModel) formIndex(mountID int) int {
	for i, f := range m.forms {
		if f.mountID == mountID {
			return i
		}
	}
	return -1
}

// startTransition runs the session operation for a submitted form. The
// returned command blocks in its own goroutine; the form's cancel func
// abandons it if the form is unmounted first.
func (m appModel) startTransition(msg submitFormMsg) (appModel, tea.Cmd) {
	i := m.formIndex(msg.mountID)
	if i < 0 {
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.forms[i].cancel = cancel

	session := m.deps.Session
	v := msg.values
	run := func() error {
		switch msg.route {
		case navigation.RouteRegister:
			return session.Register(ctx, v[validation.FieldName], v[validation.FieldEmail], v[validation.FieldPassword])
		case navigation.RouteForgotPassword:
			return session.RequestPasswordReset(ctx, v[validation.FieldEmail])
		default:
			return session.Login(ctx, v[validation.FieldEmail], v[validation.FieldPassword])
		}
	}

	return m, func() tea.Msg {
		defer cancel()
		return authResultMsg{mountID: msg.mountID, route: msg.route, err: run()}
	}
}

// handleResult applies a transition outcome to the form that started it.
// Results for unmounted forms are dropped.
func (m appModel) handleResult(msg authResultMsg) appModel {
	i := m.formIndex(msg.mountID)
	if i < 0 {
		log.WithComponent("tui").WithField("route", msg.route.String()).Debug("dropping result for unmounted view")
		return m
	}
	m.forms[i] = m.forms[i].finish()

	switch {
	case msg.err == nil:
		if msg.route == navigation.RouteForgotPassword {
			m.stack.Back()
			m, _ = m.syncForms()
			if top := len(m.forms) - 1; top >= 0 {
				m.forms[top].notice = resetNotice
			}
		}
	case errors.Is(msg.err, domain.ErrSuperseded), errors.Is(msg.err, context.Canceled):
		// Another transition took over; nothing to report.
	default:
		m.forms[i].alert = m.forms[i].screen.failure
	}
	return m
}

func (m appModel) toggleTheme() appModel {
	m.deps.Theme.Toggle()
	// Name the appearance now rendered; the toggle never lands on system.
	if m.deps.Theme.IsDark() {
		m.status = "Switched to Dark Mode"
	} else {
		m.status = "Switched to Light Mode"
	}
	return m
}

// --- View ---

func (m appModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	st := styles.New(m.deps.Theme.Palette())

	var view string
	if m.gate.Current() == navigation.SubtreeMain {
		view = m.renderMain(st)
	} else {
		view = m.renderAuth(st)
	}

	view = lipgloss.NewStyle().Background(st.Palette.Background).Render(view)
	return padToHeight(view, m.width, m.height)
}

func (m appModel) renderAuth(st styles.Styles) string {
	if len(m.forms) == 0 {
		return ""
	}
	top := m.forms[len(m.forms)-1]

	header := components.Header(st, m.width, top.route.String(), "")
	footer := m.withStatus(st, components.Footer(st, m.width, top.bindings()))

	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)
	return lipgloss.JoinVertical(lipgloss.Left, header, top.View(st, m.width, contentH), footer)
}

func (m appModel) renderMain(st styles.Styles) string {
	state := m.deps.Session.State()
	name := ""
	if state.User != nil {
		name = state.User.Name
	}

	header := components.Header(st, m.width, m.main.nav.Active().String(), name)
	tabs := components.TabBar(st, m.width, m.main.tabLabels(), int(m.main.nav.Active()))
	footer := m.withStatus(st, components.Footer(st, m.width, m.main.bindings()))

	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(tabs)-lipgloss.Height(footer), 1)
	content := m.main.View(st, state.User, m.deps.Theme.IsDark(), m.width, contentH)
	return lipgloss.JoinVertical(lipgloss.Left, header, content, tabs, footer)
}

// withStatus puts the status line, if any, above footer.
func (m appModel) withStatus(st styles.Styles, footer string) string {
	if m.status == "" {
		return footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, components.StatusBar(st, m.width, m.status, false), footer)
}

// padToHeight ensures the view string has exactly `height` lines by
// appending blank lines if necessary. This prevents ghost rendering
// artifacts when the terminal's alt screen buffer retains content from
// previous frames.
func padToHeight(view string, width, height int) string {
	if height <= 0 {
		return view
	}
	lines := strings.Split(view, "\n")
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
