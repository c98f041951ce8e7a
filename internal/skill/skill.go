// Package skill provides skill definitions and the effect pipeline that
// executes them against resolved targets.
package skill

import (
	"fmt"

	"github.com/samdwyer/battlecore/internal/world"
)

// Kind categorizes how a skill is used.
type Kind int

const (
	KindActive Kind = iota
	KindPassive
	KindCommanderActive
	KindCommanderPassive
)

var kindNames = [...]string{
	KindActive:           "active",
	KindPassive:          "passive",
	KindCommanderActive:  "commander_active",
	KindCommanderPassive: "commander_passive",
}

// String returns the data-file name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown skill kind %q", text)
}

// TargetMode says how a skill picks its targets.
type TargetMode int

const (
	TargetNone TargetMode = iota
	TargetSelf
	TargetEnemySingle
	TargetEnemyLine // every enemy in the target's row, front to back
	TargetEnemyAll
	TargetAllySingle
	TargetAllyAll
	TargetPassiveOwner
	TargetPassiveAllAllies
)

var targetNames = [...]string{
	TargetNone:             "none",
	TargetSelf:             "self",
	TargetEnemySingle:      "enemy_single",
	TargetEnemyLine:        "enemy_line",
	TargetEnemyAll:         "enemy_all",
	TargetAllySingle:       "ally_single",
	TargetAllyAll:          "ally_all",
	TargetPassiveOwner:     "passive_owner",
	TargetPassiveAllAllies: "passive_all_allies",
}

// String returns the data-file name of the mode.
func (m TargetMode) String() string {
	if m < 0 || int(m) >= len(targetNames) {
		return "unknown"
	}
	return targetNames[m]
}

// MarshalText implements encoding.TextMarshaler.
func (m TargetMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *TargetMode) UnmarshalText(text []byte) error {
	for i, name := range targetNames {
		if name == string(text) {
			*m = TargetMode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown target mode %q", text)
}

// NeedsTarget returns true if the mode requires the player to pick a unit.
func (m TargetMode) NeedsTarget() bool {
	return m == TargetEnemySingle || m == TargetEnemyLine || m == TargetAllySingle
}

// IsOffensive returns true if the mode targets enemies.
func (m TargetMode) IsOffensive() bool {
	return m == TargetEnemySingle || m == TargetEnemyLine || m == TargetEnemyAll
}

// Data is the static definition of a skill.
type Data struct {
	ID          string
	Name        string
	Description string
	Kind        Kind
	Target      TargetMode
	StaminaCost int
	OneTime     bool // Commander skills usable once per battle
	MaxRange    int  // 0 = unlimited
	Effects     []Effect
}

// IsPassive returns true for skills that apply as auras rather than being cast.
func (d *Data) IsPassive() bool {
	return d.Kind == KindPassive || d.Kind == KindCommanderPassive
}

// IsCommander returns true for commander skills.
func (d *Data) IsCommander() bool {
	return d.Kind == KindCommanderActive || d.Kind == KindCommanderPassive
}

// InRange returns true if a target slot is within the skill's range.
// Unresolved positions are out of range unless the range is unlimited.
func (d *Data) InRange(from, to world.Position) bool {
	if d.MaxRange <= 0 {
		return true
	}
	dist := from.Distance(to)
	return dist >= 0 && dist <= d.MaxRange
}

// Item is a consumable executed through the same effect pipeline as skills.
type Item struct {
	ID          string
	Name        string
	Description string
	Target      TargetMode
	Effects     []Effect
}
