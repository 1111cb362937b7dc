package styles

import (
	"testing"

	"bakehouse/zipporder/internal/domain"
	"bakehouse/zipporder/internal/theme"

	"github.com/charmbracelet/lipgloss"
)

func TestNew_UsesPalette(t *testing.T) {
	for _, dark := range []bool{false, true} {
		p := theme.For(dark)
		s := New(p)

		if got := s.Title.GetForeground(); got != p.Text {
			t.Errorf("dark=%v: Title foreground = %v, want %v", dark, got, p.Text)
		}
		if got := s.ErrorText.GetForeground(); got != p.Error {
			t.Errorf("dark=%v: ErrorText foreground = %v, want %v", dark, got, p.Error)
		}
		if got := s.Button.GetBackground(); got != p.Primary {
			t.Errorf("dark=%v: Button background = %v, want %v", dark, got, p.Primary)
		}
	}
}

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status domain.OrderStatus
		want   lipgloss.Color
	}{
		{domain.OrderDelivered, StatusDelivered},
		{domain.OrderPending, StatusPending},
		{domain.OrderCancelled, StatusCancelled},
		{domain.OrderStatus("lost"), StatusUnknown},
	}
	for _, tt := range tests {
		if got := StatusColor(tt.status); got != tt.want {
			t.Errorf("StatusColor(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
