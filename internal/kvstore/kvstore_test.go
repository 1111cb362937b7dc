package kvstore

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/zalando/go-keyring"
)

func tempSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "zipporder.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// backends returns a fresh instance of every Store implementation.
func backends(t *testing.T) map[string]Store {
	t.Helper()
	keyring.MockInit()
	return map[string]Store{
		"memory":  NewMemoryStore(),
		"keyring": NewKeyringStore("zipporder-test"),
		"sqlite":  tempSQLite(t),
	}
}

func TestStore_GetMissing(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get("absent")
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestStore_SetGetOverwrite(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Set("theme.mode", "dark"); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := s.Set("theme.mode", "light"); err != nil {
				t.Fatalf("second Set failed: %v", err)
			}
			got, err := s.Get("theme.mode")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got != "light" {
				t.Errorf("Get = %q, want light", got)
			}
		})
	}
}

func TestStore_RemoveIsIdempotent(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Set("session.user", "{}"); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := s.Remove("session.user"); err != nil {
				t.Fatalf("Remove failed: %v", err)
			}
			if err := s.Remove("session.user"); err != nil {
				t.Fatalf("second Remove failed: %v", err)
			}
			if _, err := s.Get("session.user"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound after Remove, got %v", err)
			}
		})
	}
}

func TestStore_Clear(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, k := range []string{"a", "b", "c"} {
				if err := s.Set(k, "v"); err != nil {
					t.Fatalf("Set(%q) failed: %v", k, err)
				}
			}
			if err := s.Clear(); err != nil {
				t.Fatalf("Clear failed: %v", err)
			}
			for _, k := range []string{"a", "b", "c"} {
				if _, err := s.Get(k); !errors.Is(err, ErrNotFound) {
					t.Errorf("key %q survived Clear: %v", k, err)
				}
			}
		})
	}
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zipporder.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	if err := s.Set("theme.mode", "dark"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	s.Close()

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get("theme.mode")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "dark" {
		t.Errorf("Get = %q, want dark", got)
	}
}

func TestOpen_Backends(t *testing.T) {
	keyring.MockInit()
	t.Cleanup(ResetPath)
	SetPath(filepath.Join(t.TempDir(), "zipporder.db"))

	for _, backend := range []string{"memory", "Keyring", " sqlite ", ""} {
		s, err := Open(backend, "")
		if err != nil {
			t.Fatalf("Open(%q) failed: %v", backend, err)
		}
		if err := Close(s); err != nil {
			t.Errorf("Close(%q) failed: %v", backend, err)
		}
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	if _, err := Open("redis", ""); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestDefaultPathOverride(t *testing.T) {
	t.Cleanup(ResetPath)

	path := filepath.Join(t.TempDir(), "zipporder.db")
	SetPath(path)

	got, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath error: %v", err)
	}
	if got != path {
		t.Fatalf("DefaultPath = %q, want %q", got, path)
	}
}
