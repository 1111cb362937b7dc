package styles

import (
	"strings"

	"bakehouse/zipporder/internal/domain"
	"bakehouse/zipporder/internal/theme"

	"github.com/charmbracelet/lipgloss"
)

// Styles is the full set of styles for one palette.
type Styles struct {
	Palette theme.Palette

	// --- Typography ---

	// Title is the main header text style.
	Title lipgloss.Style
	// Brand renders the app name in the primary color.
	Brand lipgloss.Style
	// Subtitle is used for secondary headings.
	Subtitle lipgloss.Style
	// Label is used for field names.
	Label lipgloss.Style
	// Value is used for field values.
	Value lipgloss.Style
	// MutedText is for help text and hints.
	MutedText   lipgloss.Style
	AccentText  lipgloss.Style
	ErrorText   lipgloss.Style
	SuccessText lipgloss.Style

	// --- Layout ---

	Card lipgloss.Style
	Rule lipgloss.Color

	// --- Key binding hints ---

	KeyStyle     lipgloss.Style
	KeyDescStyle lipgloss.Style
	KeySepStyle  lipgloss.Style

	// --- Inputs and buttons ---

	InputFocused lipgloss.Style
	InputBlurred lipgloss.Style
	Button       lipgloss.Style
	ButtonBusy   lipgloss.Style

	// --- Navigation ---

	TabActive      lipgloss.Style
	TabInactive    lipgloss.Style
	DrawerItem     lipgloss.Style
	DrawerSelected lipgloss.Style
	Avatar         lipgloss.Style
}

// New derives every style from p.
func New(p theme.Palette) Styles {
	border := lipgloss.RoundedBorder()

	return Styles{
		Palette: p,

		Title:       lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		Brand:       lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Subtitle:    lipgloss.NewStyle().Foreground(p.TextSecondary),
		Label:       lipgloss.NewStyle().Bold(true).Foreground(p.TextSecondary),
		Value:       lipgloss.NewStyle().Foreground(p.Text),
		MutedText:   lipgloss.NewStyle().Foreground(p.Placeholder),
		AccentText:  lipgloss.NewStyle().Foreground(p.Primary),
		ErrorText:   lipgloss.NewStyle().Bold(true).Foreground(p.Error),
		SuccessText: lipgloss.NewStyle().Bold(true).Foreground(p.Success),

		Card: lipgloss.NewStyle().
			Border(border).
			BorderForeground(p.Border).
			Padding(1, 2),
		Rule: p.Border,

		KeyStyle:     lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		KeyDescStyle: lipgloss.NewStyle().Foreground(p.TextSecondary),
		KeySepStyle:  lipgloss.NewStyle().Foreground(p.Border),

		InputFocused: lipgloss.NewStyle().
			Border(border).
			BorderForeground(p.Primary).
			Padding(0, 1),
		InputBlurred: lipgloss.NewStyle().
			Border(border).
			BorderForeground(p.Border).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Bold(true).
			Foreground(OnPrimary).
			Background(p.Primary).
			Padding(0, 3),
		ButtonBusy: lipgloss.NewStyle().
			Foreground(OnPrimary).
			Background(p.PrimaryDark).
			Padding(0, 3),

		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.Placeholder).
			Padding(0, 2),
		DrawerItem: lipgloss.NewStyle().
			Foreground(p.Text).
			Padding(0, 1),
		DrawerSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			Padding(0, 1),
		Avatar: lipgloss.NewStyle().
			Bold(true).
			Foreground(OnPrimary).
			Background(p.Primary).
			Padding(0, 1),
	}
}

// StatusBadge renders an order status in upper case on its status color.
func (s Styles) StatusBadge(status domain.OrderStatus) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(OnPrimary).
		Background(StatusColor(status)).
		Padding(0, 1).
		Render(strings.ToUpper(string(status)))
}

// FormatKeyBinding formats a single key binding for the footer.
func (s Styles) FormatKeyBinding(key, desc string) string {
	return s.KeyStyle.Render(key) + " " + s.KeyDescStyle.Render(desc)
}
