package reconcile

import "fmt"

// Pass identifies which reconciliation pass produced an entry.
type Pass int

const (
	PassDirect Pass = iota
	PassFallback
)

func (p Pass) String() string {
	switch p {
	case PassDirect:
		return "direct"
	case PassFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// MarshalText renders the pass name in JSON and TOML output.
func (p Pass) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a pass name written by MarshalText.
func (p *Pass) UnmarshalText(text []byte) error {
	switch string(text) {
	case "direct":
		*p = PassDirect
	case "fallback":
		*p = PassFallback
	default:
		return fmt.Errorf("unknown pass %q", text)
	}
	return nil
}
