package theme

import "github.com/charmbracelet/lipgloss"

// Palette maps semantic color roles to concrete colors. Exactly two exist,
// Light and Dark.
type Palette struct {
	Background      lipgloss.Color
	Surface         lipgloss.Color
	Text            lipgloss.Color
	TextSecondary   lipgloss.Color
	Primary         lipgloss.Color
	PrimaryDark     lipgloss.Color
	Secondary       lipgloss.Color
	Accent          lipgloss.Color
	Border          lipgloss.Color
	InputBackground lipgloss.Color
	Placeholder     lipgloss.Color
	Error           lipgloss.Color
	Success         lipgloss.Color
	Warning         lipgloss.Color
	Info            lipgloss.Color
	Card            lipgloss.Color
}

// --- Brand colors ---

var (
	brandRose   = lipgloss.Color("#FF004D")
	brandIndigo = lipgloss.Color("#6366F1")
	indigoDeep  = lipgloss.Color("#4338CA")
	pink        = lipgloss.Color("#EC4899")
	emerald     = lipgloss.Color("#10B981")
	white       = lipgloss.Color("#FFFFFF")
	slate50     = lipgloss.Color("#F8FAFC")
	slate100    = lipgloss.Color("#F1F5F9")
	slate200    = lipgloss.Color("#E2E8F0")
	slate400    = lipgloss.Color("#94A3B8")
	slate500    = lipgloss.Color("#64748B")
	slate700    = lipgloss.Color("#334155")
	slate800    = lipgloss.Color("#1E293B")
	slate900    = lipgloss.Color("#0F172A")
	midnight    = lipgloss.Color("#0B1120")
	red500      = lipgloss.Color("#EF4444")
	amber500    = lipgloss.Color("#F59E0B")
	blue500     = lipgloss.Color("#3B82F6")
)

// Light is the palette used when the resolved appearance is light.
var Light = Palette{
	Background:      slate50,
	Surface:         white,
	Text:            slate900,
	TextSecondary:   slate500,
	Primary:         brandRose,
	PrimaryDark:     indigoDeep,
	Secondary:       pink,
	Accent:          emerald,
	Border:          slate200,
	InputBackground: slate100,
	Placeholder:     slate500,
	Error:           red500,
	Success:         emerald,
	Warning:         amber500,
	Info:            blue500,
	Card:            white,
}

// Dark is the palette used when the resolved appearance is dark.
var Dark = Palette{
	Background:      midnight,
	Surface:         slate800,
	Text:            slate50,
	TextSecondary:   slate400,
	Primary:         brandIndigo,
	PrimaryDark:     brandRose,
	Secondary:       pink,
	Accent:          emerald,
	Border:          slate700,
	InputBackground: slate800,
	Placeholder:     slate400,
	Error:           red500,
	Success:         emerald,
	Warning:         amber500,
	Info:            blue500,
	Card:            slate800,
}

// For returns Dark when isDark is true and Light otherwise.
func For(isDark bool) Palette {
	if isDark {
		return Dark
	}
	return Light
}
