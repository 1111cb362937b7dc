package components

import (
	"bakehouse/zipporder/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// StatusBar renders a status message line between the content and footer.
func StatusBar(st styles.Styles, width int, message string, isError bool) string {
	if message == "" {
		return ""
	}

	style := st.SuccessText
	if isError {
		style = st.ErrorText
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		Render(style.Render(message))
}
