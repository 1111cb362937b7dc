package util

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// NormalizeKey lowercases and trims a string for use as a consistent lookup key.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Truncate shortens s to at most width terminal cells, appending an
// ellipsis when something was cut. Styled (ANSI) input is handled.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// FormatCents renders an amount in cents as dollars, e.g. 4599 -> "$45.99".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
