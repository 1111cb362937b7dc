// Package components provides reusable render helpers (not tea.Model) used
// by the ZippOrder views to compose full-window layouts.
package components

import (
	"strings"

	"bakehouse/zipporder/internal/tui/styles"
	"bakehouse/zipporder/internal/util"

	"github.com/charmbracelet/lipgloss"
)

// Header renders the application header bar.
//
//	┌──────────────────────────────────────────┐
//	│  ZippOrder > Orders            Jane Baker │
//	└──────────────────────────────────────────┘
func Header(st styles.Styles, width int, breadcrumb string, right string) string {
	if width < 10 {
		return ""
	}

	left := st.Brand.Render("ZippOrder")
	if breadcrumb != "" {
		left += st.MutedText.Render(" > ") + st.Title.Render(breadcrumb)
	}

	innerWidth := width - 4 // account for padding
	leftLen := lipgloss.Width(left)
	if right != "" {
		right = st.Subtitle.Render(util.Truncate(right, max(innerWidth-leftLen-1, 0)))
	}

	gap := max(innerWidth-leftLen-lipgloss.Width(right), 1)
	content := left + strings.Repeat(" ", gap) + right

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderBottom(true).
		BorderForeground(st.Rule).
		Render(content)
}
