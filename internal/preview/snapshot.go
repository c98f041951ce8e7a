// Package preview projects "what if" views of the battlefield from turn
// snapshots without touching authoritative unit state.
package preview

import (
	"github.com/samdwyer/battlecore/internal/unit"
	"github.com/samdwyer/battlecore/internal/world"
)

// Entry is a point-in-time copy of one unit's previewable state. The unit is
// referenced by ID only.
type Entry struct {
	UnitID   string
	Position world.Position
	Stamina  int
	Role     unit.Role
}

// Snapshot is an ordered list of entries taken at the start of a turn.
type Snapshot struct {
	Turn    int
	Entries []Entry
}

// Capture copies the previewable state of the given units.
func Capture(turn int, units []unit.ReadOnly) Snapshot {
	entries := make([]Entry, 0, len(units))
	for _, u := range units {
		if u == nil {
			continue
		}
		entries = append(entries, Entry{
			UnitID:   u.ID(),
			Position: u.Position(),
			Stamina:  u.Stamina(),
			Role:     u.Role(),
		})
	}
	return Snapshot{Turn: turn, Entries: entries}
}

// Find returns the entry for a unit.
func (s Snapshot) Find(unitID string) (Entry, bool) {
	for _, e := range s.Entries {
		if e.UnitID == unitID {
			return e, true
		}
	}
	return Entry{}, false
}

// SnapshotSource is the turn-state authority holding the latest snapshot.
// The second result is false until a turn has been planned.
type SnapshotSource interface {
	LatestSnapshot() (Snapshot, bool)
}

// UnitSource lists the units currently on the battlefield.
type UnitSource interface {
	LiveUnits() []unit.ReadOnly
}
