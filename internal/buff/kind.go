// Package buff provides the per-unit status effect engine: timed buffs and
// debuffs, the shield pool and non-expiring auras.
package buff

import "fmt"

// Kind identifies what a buff does.
type Kind int

const (
	AttackValueUp Kind = iota
	AttackValueDown
	AttackPercentUp
	AttackPercentDown
	DefenseValueUp
	DefenseValueDown
	DefensePercentUp
	DefensePercentDown
	Shield
	HealOverTime
	DamageOverTime
	Stun
)

var kindNames = [...]string{
	AttackValueUp:      "attack_value_up",
	AttackValueDown:    "attack_value_down",
	AttackPercentUp:    "attack_percent_up",
	AttackPercentDown:  "attack_percent_down",
	DefenseValueUp:     "defense_value_up",
	DefenseValueDown:   "defense_value_down",
	DefensePercentUp:   "defense_percent_up",
	DefensePercentDown: "defense_percent_down",
	Shield:             "shield",
	HealOverTime:       "heal_over_time",
	DamageOverTime:     "damage_over_time",
	Stun:               "stun",
}

// String returns the snake_case name used in data files.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsPercent returns true for kinds whose magnitude is a fraction (0.2 = 20%).
func (k Kind) IsPercent() bool {
	switch k {
	case AttackPercentUp, AttackPercentDown, DefensePercentUp, DefensePercentDown:
		return true
	}
	return false
}

// IsOverTime returns true for kinds that act on life every tick.
func (k Kind) IsOverTime() bool {
	return k == HealOverTime || k == DamageOverTime
}

// ParseKind converts a data-file name to a Kind.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown buff kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
