package tui

import (
	"context"
	"fmt"
	"strings"

	"bakehouse/zipporder/internal/domain"
	"bakehouse/zipporder/internal/navigation"
	"bakehouse/zipporder/internal/orders"
	"bakehouse/zipporder/internal/tui/components"
	"bakehouse/zipporder/internal/tui/styles"
	"bakehouse/zipporder/internal/util"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// drawerWidth is the width of the side drawer in cells.
const drawerWidth = 30

// --- Messages ---

type ordersLoadedMsg struct {
	mountID int
	orders  []domain.Order
	err     error
}

// toggleThemeMsg asks the app to flip the appearance.
type toggleThemeMsg struct{}

// signOutMsg asks the app to end the session.
type signOutMsg struct{}

// --- Main model ---

// mainModel is the signed-in half of the app: three tabs and a drawer.
type mainModel struct {
	mountID int
	nav     *navigation.MainNav
	repo    orders.Repository

	orders  []domain.Order
	err     error
	loading bool
	spinner spinner.Model

	drawerIdx int
}

func newMainModel(repo orders.Repository, mountID int) mainModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return mainModel{
		mountID: mountID,
		nav:     navigation.NewMainNav(),
		repo:    repo,
		loading: true,
		spinner: s,
	}
}

func (m mainModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchOrders(false))
}

// invalidator is implemented by repositories that cache.
type invalidator interface {
	Invalidate() error
}

// fetchOrders loads the order list. A refresh first drops any cached copy.
func (m mainModel) fetchOrders(refresh bool) tea.Cmd {
	repo, id := m.repo, m.mountID
	return func() tea.Msg {
		if repo == nil {
			return ordersLoadedMsg{mountID: id}
		}
		if inv, ok := repo.(invalidator); ok && refresh {
			if err := inv.Invalidate(); err != nil {
				return ordersLoadedMsg{mountID: id, err: err}
			}
		}
		list, err := repo.List(context.Background())
		return ordersLoadedMsg{mountID: id, orders: list, err: err}
	}
}

func (m mainModel) Update(msg tea.Msg) (mainModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ordersLoadedMsg:
		if msg.mountID != m.mountID {
			return m, nil
		}
		m.loading = false
		m.orders = msg.orders
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.nav.DrawerOpen() {
			return m.handleDrawerKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m mainModel) handleKey(msg tea.KeyMsg) (mainModel, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "m":
		m.nav.OpenDrawer()
		m.drawerIdx = 0
	case "tab", "right", "l":
		m.nav.NextTab()
	case "shift+tab", "left", "h":
		m.nav.PrevTab()
	case "1":
		m.nav.SelectTab(navigation.TabHome)
	case "2":
		m.nav.SelectTab(navigation.TabOrders)
	case "3":
		m.nav.SelectTab(navigation.TabProfile)
	case "t":
		return m, func() tea.Msg { return toggleThemeMsg{} }
	case "r":
		if m.nav.Active() == navigation.TabOrders && !m.loading {
			m.loading = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.fetchOrders(true))
		}
	}
	return m, nil
}

func (m mainModel) handleDrawerKey(msg tea.KeyMsg) (mainModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "m":
		m.nav.CloseDrawer()
	case "up", "k":
		if m.drawerIdx > 0 {
			m.drawerIdx--
		}
	case "down", "j":
		if m.drawerIdx < len(navigation.DrawerItems)-1 {
			m.drawerIdx++
		}
	case "enter":
		switch navigation.DrawerItems[m.drawerIdx] {
		case navigation.DrawerHome:
			m.nav.SelectTab(navigation.TabHome)
			m.nav.CloseDrawer()
		case navigation.DrawerTheme:
			return m, func() tea.Msg { return toggleThemeMsg{} }
		case navigation.DrawerSignOut:
			m.nav.CloseDrawer()
			return m, func() tea.Msg { return signOutMsg{} }
		}
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m mainModel) bindings() []components.KeyBinding {
	if m.nav.DrawerOpen() {
		return []components.KeyBinding{
			{Key: "↑/↓", Desc: "select"},
			{Key: "enter", Desc: "open"},
			{Key: "esc", Desc: "close menu"},
		}
	}
	b := []components.KeyBinding{
		{Key: "tab", Desc: "next tab"},
		{Key: "m", Desc: "menu"},
		{Key: "t", Desc: "theme"},
	}
	if m.nav.Active() == navigation.TabOrders {
		b = append(b, components.KeyBinding{Key: "r", Desc: "refresh"})
	}
	return append(b, components.KeyBinding{Key: "q", Desc: "quit"})
}

func (m mainModel) tabLabels() []string {
	labels := make([]string, len(navigation.Tabs))
	for i, t := range navigation.Tabs {
		labels[i] = t.String()
	}
	return labels
}

// View renders the active tab, with the drawer on the left when open.
func (m mainModel) View(st styles.Styles, user *domain.User, isDark bool, width, height int) string {
	contentW := width
	if m.nav.DrawerOpen() {
		contentW = max(width-drawerWidth, 0)
	}

	var content string
	switch m.nav.Active() {
	case navigation.TabOrders:
		content = m.renderOrders(st, contentW)
	case navigation.TabProfile:
		content = m.renderProfile(st, user, contentW)
	default:
		content = m.renderHome(st, isDark)
	}
	content = lipgloss.Place(contentW, height, lipgloss.Center, lipgloss.Center, content)

	if !m.nav.DrawerOpen() {
		return content
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderDrawer(st, user, isDark, height), content)
}

func (m mainModel) renderHome(st styles.Styles, isDark bool) string {
	icon, hint := "☾", "t: switch to Dark Mode"
	if isDark {
		icon, hint = "☀", "t: switch to Light Mode"
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		st.Title.Render(icon),
		st.MutedText.Render(hint),
		"",
		st.Title.Render("Welcome to Zipporder"),
		st.Subtitle.Render("Home Screen"),
		"",
		st.Button.Render("Get Started"),
	)
}

func (m mainModel) renderOrders(st styles.Styles, width int) string {
	title := st.Title.Render("My Orders")
	if m.loading {
		return lipgloss.JoinVertical(lipgloss.Left, title, "", m.spinner.View()+" "+st.MutedText.Render("Loading orders..."))
	}
	if m.err != nil {
		return lipgloss.JoinVertical(lipgloss.Left, title, "", st.ErrorText.Render("Could not load orders: "+m.err.Error()))
	}
	if len(m.orders) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, "", st.MutedText.Render("No orders yet."))
	}

	cardW := min(max(width-8, 24), 60)
	rows := []string{title, ""}
	for _, o := range m.orders {
		rows = append(rows, renderOrderCard(st, o, cardW))
	}
	rows = append(rows, "", components.SpendChart(st, "Spend per order", orders.Amounts(m.orders), cardW))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderOrderCard(st styles.Styles, o domain.Order, width int) string {
	inner := max(width-6, 10)

	amount := st.AccentText.Bold(true).Render(util.FormatCents(o.Amount))
	title := st.Title.Render(util.Truncate(o.Title, inner-lipgloss.Width(amount)-1))
	top := title + strings.Repeat(" ", max(inner-lipgloss.Width(title)-lipgloss.Width(amount), 1)) + amount

	badge := st.StatusBadge(o.Status)
	date := st.MutedText.Render(o.Date)
	bottom := date + strings.Repeat(" ", max(inner-lipgloss.Width(date)-lipgloss.Width(badge), 1)) + badge

	return st.Card.Padding(0, 2).Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, top, bottom))
}

func (m mainModel) renderProfile(st styles.Styles, user *domain.User, width int) string {
	name, email := "", ""
	if user != nil {
		name, email = user.Name, user.Email
	}
	summary := orders.Summarize(m.orders)

	stat := func(label, value string) string {
		return st.Card.Padding(0, 2).Render(lipgloss.JoinVertical(lipgloss.Center,
			st.Label.Render(label),
			st.Title.Render(value),
		))
	}
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		stat("Orders", fmt.Sprintf("%d", summary.Count)),
		" ",
		stat("Pending", fmt.Sprintf("%d", summary.Pending)),
		" ",
		stat("Spent", util.FormatCents(summary.TotalSpent)),
	)

	return lipgloss.JoinVertical(lipgloss.Center,
		st.Avatar.Render(user.Initials()),
		"",
		st.Title.Render(util.Truncate(name, max(width-4, 1))),
		st.Subtitle.Render(util.Truncate(email, max(width-4, 1))),
		"",
		stats,
	)
}

func (m mainModel) renderDrawer(st styles.Styles, user *domain.User, isDark bool, height int) string {
	inner := drawerWidth - 4
	name, email := "", ""
	if user != nil {
		name, email = user.Name, user.Email
	}

	rows := []string{
		st.Avatar.Render(user.Initials()),
		st.Title.Render(util.Truncate(name, inner)),
		st.MutedText.Render(util.Truncate(email, inner)),
		"",
	}
	for i, item := range navigation.DrawerItems {
		label := navigation.DrawerLabel(item, isDark)
		if i == m.drawerIdx {
			rows = append(rows, st.DrawerSelected.Render("› "+label))
		} else {
			rows = append(rows, st.DrawerItem.Render("  "+label))
		}
	}

	return lipgloss.NewStyle().
		Width(drawerWidth-1).
		Height(max(height-2, 1)).
		Padding(1, 1).
		BorderStyle(lipgloss.Border{Right: "│"}).
		BorderRight(true).
		BorderForeground(st.Rule).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
