package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"bakehouse/zipporder/internal/domain"
	"bakehouse/zipporder/internal/navigation"
	"bakehouse/zipporder/internal/orders"
	"bakehouse/zipporder/internal/retry"
	"bakehouse/zipporder/internal/services/auth"
	"bakehouse/zipporder/internal/theme"
	"bakehouse/zipporder/internal/tui/styles"
	"bakehouse/zipporder/internal/validation"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

// blockingAuthenticator never answers; exchanges end only when their
// context is cancelled.
type blockingAuthenticator struct{ started chan struct{} }

func (b blockingAuthenticator) block(ctx context.Context) error {
	b.started <- struct{}{}
	<-ctx.Done()
	return ctx.Err()
}

func (b blockingAuthenticator) Authenticate(ctx context.Context, _, _ string) (auth.Identity, error) {
	return auth.Identity{}, b.block(ctx)
}

func (b blockingAuthenticator) CreateAccount(ctx context.Context, _, _, _ string) (auth.Identity, error) {
	return auth.Identity{}, b.block(ctx)
}

func (b blockingAuthenticator) RequestReset(ctx context.Context, _ string) error {
	return b.block(ctx)
}

// rejectingAuthenticator refuses every exchange.
type rejectingAuthenticator struct{}

func (rejectingAuthenticator) Authenticate(context.Context, string, string) (auth.Identity, error) {
	return auth.Identity{}, domain.ErrAuth
}

func (rejectingAuthenticator) CreateAccount(context.Context, string, string, string) (auth.Identity, error) {
	return auth.Identity{}, domain.ErrAuth
}

func (rejectingAuthenticator) RequestReset(context.Context, string) error { return domain.ErrAuth }

// countingAuthenticator records every exchange it is asked to perform and
// delegates to the mock backend.
type countingAuthenticator struct {
	*auth.MockAuthenticator
	mu    sync.Mutex
	calls map[string]int
}

func newCountingAuthenticator() *countingAuthenticator {
	return &countingAuthenticator{MockAuthenticator: auth.NewMockAuthenticator(0), calls: map[string]int{}}
}

func (c *countingAuthenticator) record(op string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[op]++
}

func (c *countingAuthenticator) Calls() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int, len(c.calls))
	for k, v := range c.calls {
		out[k] = v
	}
	return out
}

func (c *countingAuthenticator) Authenticate(ctx context.Context, email, password string) (auth.Identity, error) {
	c.record("authenticate")
	return c.MockAuthenticator.Authenticate(ctx, email, password)
}

func (c *countingAuthenticator) CreateAccount(ctx context.Context, name, email, password string) (auth.Identity, error) {
	c.record("create")
	return c.MockAuthenticator.CreateAccount(ctx, name, email, password)
}

func (c *countingAuthenticator) RequestReset(ctx context.Context, email string) error {
	c.record("reset")
	return c.MockAuthenticator.RequestReset(ctx, email)
}

func newTestApp(t *testing.T, authn auth.Authenticator) appModel {
	t.Helper()
	store := theme.NewStore(theme.NewManualHost(false))
	t.Cleanup(store.Close)

	m := newAppModel(Deps{
		Session: auth.NewSession(authn, auth.WithRetry(retry.Config{MaxAttempts: 1})),
		Theme:   store,
		Orders:  orders.NewStaticRepository(),
		Policy:  validation.PolicyBasic,
	})
	return step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

// step feeds msg to m and returns the updated app.
func step(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(appModel)
}

// stepCmd feeds msg to m and also returns the command it produced.
func stepCmd(t *testing.T, m appModel, msg tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(appModel), cmd
}

// collect runs cmd and flattens batches into their messages. Only use it on
// commands known not to sleep.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

func findMsg[T tea.Msg](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v
		}
	}
	var zero T
	t.Fatalf("no %T among %d messages", zero, len(msgs))
	return zero
}

func typeText(t *testing.T, m appModel, s string) appModel {
	t.Helper()
	return step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func topForm(m appModel) authFormModel { return m.forms[len(m.forms)-1] }

// submitLogin fills the login form and returns the submit request it sent.
func submitLogin(t *testing.T, m appModel, email, password string) (appModel, submitFormMsg) {
	t.Helper()
	m = typeText(t, m, email)
	m = step(t, m, key(tea.KeyEnter))
	m = typeText(t, m, password)
	m, cmd := stepCmd(t, m, key(tea.KeyEnter))
	if !topForm(m).busy {
		t.Fatalf("form should be busy after a valid submit, errors: %v", topForm(m).form.Errors())
	}
	return m, findMsg[submitFormMsg](t, collect(cmd))
}

func TestApp_StartsOnLogin(t *testing.T) {
	m := newTestApp(t, auth.NewMockAuthenticator(0))

	if m.gate.Current() != navigation.SubtreeAuth {
		t.Fatalf("subtree = %v, want auth", m.gate.Current())
	}
	if got := topForm(m).route; got != navigation.RouteLogin {
		t.Fatalf("top route = %v, want Login", got)
	}
	if view := m.View(); !strings.Contains(view, "Bakery delights delivered") {
		t.Errorf("login view missing tagline:\n%s", view)
	}
}

func TestApp_InvalidSubmitShowsErrors(t *testing.T) {
	m := newTestApp(t, auth.NewMockAuthenticator(0))

	m = typeText(t, m, "bad")
	m = step(t, m, key(tea.KeyEnter))
	m, cmd := stepCmd(t, m, key(tea.KeyEnter))

	f := topForm(m)
	if f.busy {
		t.Fatal("invalid form must not submit")
	}
	if cmd != nil {
		for _, msg := range collect(cmd) {
			if _, ok := msg.(submitFormMsg); ok {
				t.Fatal("invalid form sent a submit request")
			}
		}
	}
	if got := f.form.Error(validation.FieldEmail); got != "Please enter a valid email" {
		t.Errorf("email error = %q", got)
	}
	if got := f.form.Error(validation.FieldPassword); got != "Password is required" {
		t.Errorf("password error = %q", got)
	}
	if f.focus != 0 {
		t.Errorf("focus = %d, want first invalid field", f.focus)
	}

	// Editing a field clears only its own error.
	m = typeText(t, m, "x")
	f = topForm(m)
	if f.form.Error(validation.FieldEmail) != "" {
		t.Error("typing should clear the email error")
	}
	if f.form.Error(validation.FieldPassword) == "" {
		t.Error("password error should remain")
	}
}

func TestApp_LoginSwitchesToMain(t *testing.T) {
	m := newTestApp(t, auth.NewMockAuthenticator(0))

	m, req := submitLogin(t, m, "a@b.com", "123456")
	m, cmd := stepCmd(t, m, req)
	result := findMsg[authResultMsg](t, collect(cmd))
	if result.err != nil {
		t.Fatalf("login failed: %v", result.err)
	}

	m = step(t, m, result)
	if m.gate.Current() != navigation.SubtreeMain {
		t.Fatalf("subtree = %v, want main", m.gate.Current())
	}
	if len(m.forms) != 0 {
		t.Errorf("auth forms should be unmounted, got %d", len(m.forms))
	}
	if view := m.View(); !strings.Contains(view, "Welcome to Zipporder") {
		t.Errorf("home view missing welcome:\n%s", view)
	}
}

func TestApp_SubmitAuthenticatesOnce(t *testing.T) {
	authn := newCountingAuthenticator()
	m := newTestApp(t, authn)

	m, req := submitLogin(t, m, "a@b.com", "123456")

	// A second enter while the form is busy is swallowed.
	m, cmd := stepCmd(t, m, key(tea.KeyEnter))
	for _, msg := range collect(cmd) {
		if _, ok := msg.(submitFormMsg); ok {
			t.Fatal("busy form sent a second submit request")
		}
	}

	m, cmd = stepCmd(t, m, req)
	m = step(t, m, findMsg[authResultMsg](t, collect(cmd)))

	if diff := cmp.Diff(map[string]int{"authenticate": 1}, authn.Calls()); diff != "" {
		t.Errorf("exchanges mismatch (-want +got):\n%s", diff)
	}
	if m.gate.Current() != navigation.SubtreeMain {
		t.Errorf("subtree = %v, want main", m.gate.Current())
	}
}

func TestApp_RejectedLoginShowsAlert(t *testing.T) {
	m := newTestApp(t, rejectingAuthenticator{})

	m, req := submitLogin(t, m, "a@b.com", "123456")
	m, cmd := stepCmd(t, m, req)
	m = step(t, m, findMsg[authResultMsg](t, collect(cmd)))

	f := topForm(m)
	if f.busy {
		t.Error("form should unlock after the result")
	}
	if f.alert != "Login failed. Please try again." {
		t.Errorf("alert = %q", f.alert)
	}
	if m.gate.Current() != navigation.SubtreeAuth {
		t.Error("rejected login must stay in auth")
	}

	// The alert is transient.
	m = typeText(t, m, "x")
	if topForm(m).alert != "" {
		t.Error("alert should clear on the next key press")
	}
}

func TestApp_UnmountCancelsPendingTransition(t *testing.T) {
	authn := blockingAuthenticator{started: make(chan struct{}, 1)}
	m := newTestApp(t, authn)

	m = step(t, m, navigateAuthMsg{route: navigation.RouteRegister})
	if topForm(m).route != navigation.RouteRegister {
		t.Fatalf("top route = %v, want Register", topForm(m).route)
	}
	registerID := topForm(m).mountID

	m, cmd := stepCmd(t, m, submitFormMsg{
		mountID: registerID,
		route:   navigation.RouteRegister,
		values: map[string]string{
			validation.FieldName:     "Jane",
			validation.FieldEmail:    "jane@example.com",
			validation.FieldPassword: "123456",
		},
	})

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case <-authn.started:
	case <-time.After(2 * time.Second):
		t.Fatal("register exchange never started")
	}

	// Leaving the screen unmounts it and abandons the exchange.
	m = step(t, m, navigateBackMsg{})
	if topForm(m).route != navigation.RouteLogin {
		t.Fatalf("top route = %v, want Login", topForm(m).route)
	}

	var result authResultMsg
	select {
	case msg := <-done:
		result = msg.(authResultMsg)
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled exchange did not return")
	}
	if !errors.Is(result.err, context.Canceled) {
		t.Errorf("result err = %v, want context.Canceled", result.err)
	}

	m = step(t, m, result)
	if m.formIndex(registerID) != -1 {
		t.Error("unmounted form came back")
	}
	if topForm(m).alert != "" {
		t.Errorf("dropped result must not alert, got %q", topForm(m).alert)
	}
	if m.deps.Session.State().IsAuthenticated {
		t.Error("abandoned register must not sign in")
	}
}

func TestApp_StaleResultIsDropped(t *testing.T) {
	m := newTestApp(t, auth.NewMockAuthenticator(0))
	before := len(m.forms)

	m = step(t, m, authResultMsg{mountID: 9999, route: navigation.RouteLogin, err: &domain.AuthError{Op: "login", Err: domain.ErrAuth}})
	if len(m.forms) != before || topForm(m).alert != "" {
		t.Error("result for an unknown mount must be ignored")
	}
}

func TestApp_AuthStackNavigation(t *testing.T) {
	m := newTestApp(t, auth.NewMockAuthenticator(0))
	loginID := topForm(m).mountID

	_, cmd := stepCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	m = step(t, m, findMsg[navigateAuthMsg](t, collect(cmd)))
	if topForm(m).route != navigation.RouteRegister || len(m.forms) != 2 {
		t.Fatalf("expected Register pushed, got %v with %d forms", topForm(m).route, len(m.forms))
	}

	// Login stays mounted underneath.
	if m.forms[0].mountID != loginID {
		t.Error("Login should keep its mount while Register is shown")
	}

	_, cmd = stepCmd(t, m, key(tea.KeyEsc))
	m = step(t, m, findMsg[navigateBackMsg](t, collect(cmd)))
	if topForm(m).route != navigation.RouteLogin || len(m.forms) != 1 {
		t.Fatalf("expected back on Login, got %v with %d forms", topForm(m).route, len(m.forms))
	}
}

func TestApp_ForgotPasswordPopsBackWithNotice(t *testing.T) {
	m := newTestApp(t, funcResetAuthenticator{})

	m = step(t, m, navigateAuthMsg{route: navigation.RouteForgotPassword})
	m = typeText(t, m, "a@b.com")
	m, cmd := stepCmd(t, m, key(tea.KeyEnter))
	req := findMsg[submitFormMsg](t, collect(cmd))

	m, cmd = stepCmd(t, m, req)
	m = step(t, m, findMsg[authResultMsg](t, collect(cmd)))

	f := topForm(m)
	if f.route != navigation.RouteLogin {
		t.Fatalf("top route = %v, want Login", f.route)
	}
	if f.notice != resetNotice {
		t.Errorf("notice = %q", f.notice)
	}
	if m.deps.Session.State().IsAuthenticated {
		t.Error("reset must not sign in")
	}
}

// funcResetAuthenticator accepts resets immediately.
type funcResetAuthenticator struct{ rejectingAuthenticator }

func (funcResetAuthenticator) RequestReset(context.Context, string) error { return nil }

func TestApp_SignOutReturnsToLogin(t *testing.T) {
	m := newTestApp(t, auth.NewMockAuthenticator(0))
	if err := m.deps.Session.Login(context.Background(), "a@b.com", "123456"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if m.gate.Current() != navigation.SubtreeMain {
		t.Fatalf("subtree = %v, want main", m.gate.Current())
	}

	// Open the drawer and pick Sign Out.
	m = typeText(t, m, "m")
	m = step(t, m, key(tea.KeyDown))
	m = step(t, m, key(tea.KeyDown))
	_, cmd := stepCmd(t, m, key(tea.KeyEnter))
	m = step(t, m, findMsg[signOutMsg](t, collect(cmd)))

	if m.gate.Current() != navigation.SubtreeAuth {
		t.Fatalf("subtree = %v, want auth", m.gate.Current())
	}
	if len(m.forms) != 1 || topForm(m).route != navigation.RouteLogin {
		t.Error("auth subtree should restart on Login")
	}
	if m.deps.Session.State().IsAuthenticated {
		t.Error("session should be signed out")
	}
}

func TestApp_ThemeToggle(t *testing.T) {
	m := newTestApp(t, auth.NewMockAuthenticator(0))
	if m.deps.Theme.IsDark() {
		t.Fatal("expected light start")
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if !m.deps.Theme.IsDark() {
		t.Error("ctrl+t should switch to dark")
	}
	if m.status != "Switched to Dark Mode" {
		t.Errorf("status = %q", m.status)
	}
	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if view := m.View(); !strings.Contains(view, "Switched to Dark Mode") {
		t.Errorf("status line missing from view:\n%s", view)
	}
	m = typeText(t, m, "x")
	if m.status != "" {
		t.Errorf("status should clear on the next key, got %q", m.status)
	}
	m = step(t, m, toggleThemeMsg{})
	if m.deps.Theme.IsDark() {
		t.Error("second toggle should switch back to light")
	}
}

func TestApp_DrawerThemeLabel(t *testing.T) {
	m := newTestApp(t, auth.NewMockAuthenticator(0))
	if err := m.deps.Session.Login(context.Background(), "a@b.com", "123456"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = typeText(t, m, "m")

	if view := m.View(); !strings.Contains(view, "Dark Mode") || !strings.Contains(view, "Sign Out") {
		t.Errorf("drawer should offer Dark Mode and Sign Out:\n%s", view)
	}
	m = step(t, m, toggleThemeMsg{})
	if view := m.View(); !strings.Contains(view, "Light Mode") {
		t.Errorf("drawer should offer Light Mode after toggling:\n%s", view)
	}
}

func TestApp_HostSchemeChangeRepaints(t *testing.T) {
	host := theme.NewManualHost(false)
	store := theme.NewStore(host)
	t.Cleanup(store.Close)
	session := auth.NewSession(auth.NewMockAuthenticator(0))
	if err := session.Login(context.Background(), "a@b.com", "123456"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	m := newAppModel(Deps{Session: session, Theme: store, Orders: orders.NewStaticRepository()})
	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = typeText(t, m, "m")
	if view := m.View(); !strings.Contains(view, "Dark Mode") {
		t.Fatalf("drawer should offer Dark Mode on a light host:\n%s", view)
	}

	// Forwarded the same way Run forwards host changes to the program.
	msgs := make(chan tea.Msg, 1)
	cancel := store.Subscribe(func(bool) { msgs <- themeChangedMsg{} })
	defer cancel()
	host.Set(true)

	var msg tea.Msg
	select {
	case msg = <-msgs:
	default:
		t.Fatal("host change was not forwarded")
	}
	m, cmd := stepCmd(t, m, msg)
	if cmd != nil {
		t.Error("repaint should not schedule work")
	}
	if view := m.View(); !strings.Contains(view, "Light Mode") {
		t.Errorf("drawer should offer Light Mode after the host went dark:\n%s", view)
	}
}

func TestApp_RestoredSessionStartsInMain(t *testing.T) {
	session := auth.NewSession(auth.NewMockAuthenticator(0))
	if err := session.Login(context.Background(), "a@b.com", "123456"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	store := theme.NewStore(theme.NewManualHost(true))
	defer store.Close()

	m := newAppModel(Deps{Session: session, Theme: store, Orders: orders.NewStaticRepository()})
	if m.gate.Current() != navigation.SubtreeMain {
		t.Fatalf("subtree = %v, want main", m.gate.Current())
	}
	if m.forms != nil {
		t.Error("no auth forms should be mounted")
	}
}

func TestMainModel_OrdersTab(t *testing.T) {
	m := newMainModel(orders.NewStaticRepository(), 1)
	msg := m.fetchOrders(false)()
	m, _ = m.Update(msg)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})

	if m.nav.Active() != navigation.TabOrders {
		t.Fatalf("active tab = %v, want Orders", m.nav.Active())
	}
	view := m.View(styles.New(theme.For(false)), nil, false, 100, 40)
	for _, want := range []string{"My Orders", "Order #1234", "$45.99", "DELIVERED", "PENDING"} {
		if !strings.Contains(view, want) {
			t.Errorf("orders view missing %q", want)
		}
	}
}

func TestMainModel_IgnoresStaleOrders(t *testing.T) {
	m := newMainModel(orders.NewStaticRepository(), 2)
	m, _ = m.Update(ordersLoadedMsg{mountID: 1, orders: orders.SampleOrders()})
	if !m.loading || m.orders != nil {
		t.Error("orders from another mount must be ignored")
	}
}

func TestPadToHeight(t *testing.T) {
	got := padToHeight("a\nb", 3, 4)
	if lines := strings.Split(got, "\n"); len(lines) != 4 {
		t.Errorf("expected 4 lines, got %d", len(lines))
	}
	if got := padToHeight("a", 3, 0); got != "a" {
		t.Errorf("zero height should leave the view alone, got %q", got)
	}
}

// invalidatingRepository records Invalidate calls.
type invalidatingRepository struct {
	orders.Repository
	invalidated int
}

func (r *invalidatingRepository) Invalidate() error {
	r.invalidated++
	return nil
}

func TestMainModel_RefreshDropsCache(t *testing.T) {
	repo := &invalidatingRepository{Repository: orders.NewStaticRepository()}
	m := newMainModel(repo, 1)
	m, _ = m.Update(m.fetchOrders(false)())
	if repo.invalidated != 0 {
		t.Fatalf("initial load must use the cache, got %d invalidations", repo.invalidated)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if !m.loading || cmd == nil {
		t.Fatal("refresh should start loading")
	}
	m, _ = m.Update(m.fetchOrders(true)())
	if repo.invalidated != 1 {
		t.Errorf("refresh should invalidate once, got %d", repo.invalidated)
	}
	if m.loading || len(m.orders) != 3 {
		t.Errorf("refresh did not reload orders: loading=%v orders=%d", m.loading, len(m.orders))
	}
}
