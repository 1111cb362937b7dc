package components

import (
	"fmt"

	"bakehouse/zipporder/internal/tui/styles"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"
)

// chartHeight is the fixed height of the spend sparkline.
const chartHeight = 4

// SpendChart renders a sparkline of order amounts (in dollars) with a label
// header and a min/max/latest summary. Returns a muted placeholder when
// data is empty.
func SpendChart(st styles.Styles, label string, data []float64, width int) string {
	if len(data) == 0 {
		return st.MutedText.Render(label + ": no orders yet")
	}

	plotWidth := max(width, len(data))
	sl := sparkline.New(plotWidth, chartHeight,
		sparkline.WithStyle(lipgloss.NewStyle().Foreground(st.Palette.Primary)),
	)
	// Stretch each sample across an equal share of the width.
	per := max(plotWidth/len(data), 1)
	for _, v := range data {
		for range per {
			sl.Push(v)
		}
	}
	sl.Draw()

	lo, hi := minMax(data)
	summary := st.MutedText.Render(fmt.Sprintf("latest: $%.2f  min: $%.2f  max: $%.2f", data[len(data)-1], lo, hi))

	return lipgloss.JoinVertical(lipgloss.Left, st.Label.Render(label), sl.View(), summary)
}

// minMax returns the minimum and maximum values from a slice.
func minMax(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}
	lo, hi := data[0], data[0]
	for _, v := range data[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}
