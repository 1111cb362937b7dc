package components

import (
	"strings"

	"bakehouse/zipporder/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// TabBar renders the bottom tab strip with the active tab highlighted.
func TabBar(st styles.Styles, width int, tabs []string, active int) string {
	if width < 10 || len(tabs) == 0 {
		return ""
	}

	parts := make([]string, len(tabs))
	for i, t := range tabs {
		if i == active {
			parts[i] = st.TabActive.Render("● " + t)
		} else {
			parts[i] = st.TabInactive.Render("○ " + t)
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderTop(true).
		BorderForeground(st.Rule).
		Render(strings.Join(parts, ""))
}
