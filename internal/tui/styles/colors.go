// Package styles builds the lipgloss styles of the ZippOrder TUI from the
// active theme palette. Views rebuild their Styles whenever the resolved
// appearance changes, so no color is hard-coded outside this package and
// internal/theme.
package styles

import (
	"bakehouse/zipporder/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

// --- Order status colors ---
//
// Status badges keep the same colors in both appearances.

var (
	StatusDelivered = lipgloss.Color("#4CAF50")
	StatusPending   = lipgloss.Color("#FF9800")
	StatusCancelled = lipgloss.Color("#F44336")
	StatusUnknown   = lipgloss.Color("#999999")

	// OnPrimary is the text color used on primary-colored surfaces.
	OnPrimary = lipgloss.Color("#FFFFFF")
)

// StatusColor returns the badge color for an order status.
func StatusColor(status domain.OrderStatus) lipgloss.Color {
	switch status {
	case domain.OrderDelivered:
		return StatusDelivered
	case domain.OrderPending:
		return StatusPending
	case domain.OrderCancelled:
		return StatusCancelled
	default:
		return StatusUnknown
	}
}
