package theme

import (
	"fmt"

	"bakehouse/zipporder/internal/util"
)

// Mode is the user's appearance preference.
type Mode int

const (
	ModeSystem Mode = iota
	ModeLight
	ModeDark
)

func (m Mode) String() string {
	switch m {
	case ModeLight:
		return "light"
	case ModeDark:
		return "dark"
	default:
		return "system"
	}
}

// ParseMode parses "light", "dark" or "system" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch util.NormalizeKey(s) {
	case "light":
		return ModeLight, nil
	case "dark":
		return ModeDark, nil
	case "system":
		return ModeSystem, nil
	default:
		return ModeSystem, fmt.Errorf("unknown theme mode %q (valid: light, dark, system)", s)
	}
}

// Resolve reports whether mode renders dark given the host's scheme.
func Resolve(mode Mode, hostIsDark bool) bool {
	if mode == ModeSystem {
		return hostIsDark
	}
	return mode == ModeDark
}
