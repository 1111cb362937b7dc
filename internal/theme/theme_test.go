package theme

import (
	"errors"
	"testing"

	"bakehouse/zipporder/internal/kvstore"

	"github.com/google/go-cmp/cmp"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		mode     Mode
		hostDark bool
		want     bool
	}{
		{ModeSystem, true, true},
		{ModeSystem, false, false},
		{ModeDark, true, true},
		{ModeDark, false, true},
		{ModeLight, true, false},
		{ModeLight, false, false},
	}
	for _, tt := range tests {
		if got := Resolve(tt.mode, tt.hostDark); got != tt.want {
			t.Errorf("Resolve(%s, %v) = %v, want %v", tt.mode, tt.hostDark, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeLight, ModeDark, ModeSystem} {
		got, err := ParseMode(m.String())
		if err != nil {
			t.Fatalf("ParseMode(%q) failed: %v", m, err)
		}
		if got != m {
			t.Errorf("ParseMode(%q) = %v", m, got)
		}
	}
	if got, err := ParseMode(" DARK "); err != nil || got != ModeDark {
		t.Errorf("ParseMode(\" DARK \") = %v, %v", got, err)
	}
	if _, err := ParseMode("sepia"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestStore_DefaultsToSystem(t *testing.T) {
	s := NewStore(NewManualHost(true))
	defer s.Close()

	if s.Mode() != ModeSystem {
		t.Errorf("Mode = %s, want system", s.Mode())
	}
	if !s.IsDark() {
		t.Error("expected system mode on a dark host to resolve dark")
	}
	if diff := cmp.Diff(Dark, s.Palette()); diff != "" {
		t.Errorf("palette mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_FollowsHostInSystemMode(t *testing.T) {
	host := NewManualHost(false)
	s := NewStore(host)
	defer s.Close()

	if s.IsDark() {
		t.Fatal("expected light before host change")
	}
	host.Set(true)
	if !s.IsDark() {
		t.Error("expected dark after host switched to dark")
	}
}

func TestStore_ExplicitModeIgnoresHost(t *testing.T) {
	host := NewManualHost(true)
	s := NewStore(host, WithMode(ModeLight))
	defer s.Close()

	host.Set(false)
	host.Set(true)
	if s.IsDark() {
		t.Error("explicit light mode must not follow the host")
	}
}

func TestStore_SubscribeReportsResolvedFlips(t *testing.T) {
	host := NewManualHost(false)
	s := NewStore(host)
	defer s.Close()

	var got []bool
	cancel := s.Subscribe(func(dark bool) { got = append(got, dark) })

	host.Set(true)
	host.Set(false)
	s.SetMode(ModeLight)
	host.Set(true) // explicit light hides the host
	cancel()
	s.SetMode(ModeSystem)
	host.Set(false)

	if diff := cmp.Diff([]bool{true, false}, got); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_Toggle(t *testing.T) {
	tests := []struct {
		name     string
		start    Mode
		hostDark bool
		want     Mode
	}{
		{"system on light host", ModeSystem, false, ModeDark},
		{"system on dark host", ModeSystem, true, ModeLight},
		{"explicit light", ModeLight, true, ModeDark},
		{"explicit dark", ModeDark, false, ModeLight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(NewManualHost(tt.hostDark), WithMode(tt.start))
			defer s.Close()

			if got := s.Toggle(); got != tt.want {
				t.Errorf("Toggle() = %s, want %s", got, tt.want)
			}
			if s.Mode() != tt.want {
				t.Errorf("Mode = %s, want %s", s.Mode(), tt.want)
			}
		})
	}
}

func TestStore_ToggleNeverReturnsToSystem(t *testing.T) {
	s := NewStore(NewManualHost(true))
	defer s.Close()

	for i := 0; i < 10; i++ {
		if s.Toggle() == ModeSystem {
			t.Fatalf("toggle %d landed on system mode", i)
		}
	}
}

func TestStore_CloseStopsFollowingHost(t *testing.T) {
	host := NewManualHost(false)
	s := NewStore(host)
	s.Close()

	host.Set(true)
	if s.IsDark() {
		t.Error("closed store should not observe host changes")
	}
}

func TestStore_PersistAndRestore(t *testing.T) {
	kv := kvstore.NewMemoryStore()

	first := NewStore(NewManualHost(false), WithPersistence(kv))
	first.SetMode(ModeDark)
	first.Close()

	second := NewStore(NewManualHost(false), WithPersistence(kv))
	defer second.Close()
	if err := second.Restore(); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if second.Mode() != ModeDark {
		t.Errorf("restored mode = %s, want dark", second.Mode())
	}
}

func TestStore_RestoreMissingKeepsMode(t *testing.T) {
	s := NewStore(NewManualHost(false), WithPersistence(kvstore.NewMemoryStore()), WithMode(ModeLight))
	defer s.Close()

	if err := s.Restore(); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if s.Mode() != ModeLight {
		t.Errorf("Mode = %s, want light", s.Mode())
	}
}

type failingKV struct{ kvstore.MemoryStore }

func (f *failingKV) Set(string, string) error { return errors.New("disk full") }

func TestStore_PersistFailureKeepsMemoryState(t *testing.T) {
	s := NewStore(NewManualHost(false), WithPersistence(&failingKV{}))
	defer s.Close()

	s.SetMode(ModeDark)
	if s.Mode() != ModeDark {
		t.Errorf("Mode = %s, want dark even when persistence fails", s.Mode())
	}
}

func TestFor(t *testing.T) {
	if For(true).Background != Dark.Background {
		t.Error("For(true) should return the dark palette")
	}
	if For(false).Background != Light.Background {
		t.Error("For(false) should return the light palette")
	}
}
