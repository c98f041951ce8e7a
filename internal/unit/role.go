// Package unit provides the battle unit record, its read-only view and the
// mutation routines the resolution driver uses.
package unit

import "fmt"

// Role represents a unit's battlefield role.
type Role int

const (
	RoleCommander Role = iota
	RoleVanguard
	RoleStriker
	RoleSupport
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleCommander:
		return "Commander"
	case RoleVanguard:
		return "Vanguard"
	case RoleStriker:
		return "Striker"
	case RoleSupport:
		return "Support"
	default:
		return "Unknown"
	}
}

// ID returns the role identifier for data lookup.
func (r Role) ID() string {
	switch r {
	case RoleCommander:
		return "commander"
	case RoleVanguard:
		return "vanguard"
	case RoleStriker:
		return "striker"
	case RoleSupport:
		return "support"
	default:
		return "unknown"
	}
}

// Symbol returns the default display symbol for a role.
func (r Role) Symbol() rune {
	switch r {
	case RoleCommander:
		return 'C'
	case RoleVanguard:
		return 'V'
	case RoleStriker:
		return 'S'
	case RoleSupport:
		return 'P'
	default:
		return '?'
	}
}

// Roles lists every role in declaration order.
func Roles() []Role {
	return []Role{RoleCommander, RoleVanguard, RoleStriker, RoleSupport}
}

// ParseRole converts a role identifier to a Role.
func ParseRole(id string) (Role, error) {
	for _, r := range Roles() {
		if r.ID() == id {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", id)
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.ID()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
