// Package battle is the turn-state authority: it owns the units and the
// field, validates declared plans, resolves committed turns and records the
// snapshot the preview simulator reads.
package battle

import (
	"fmt"

	"github.com/samdwyer/battlecore/internal/battlelog"
	"github.com/samdwyer/battlecore/internal/combat"
	"github.com/samdwyer/battlecore/internal/preview"
	"github.com/samdwyer/battlecore/internal/skill"
	"github.com/samdwyer/battlecore/internal/unit"
	"github.com/samdwyer/battlecore/internal/world"
)

// SkillLookup finds skill data by ID. *gamedata.SkillRegistry implements it.
type SkillLookup interface {
	GetByID(id string) *skill.Data
}

// Options tunes the rules of a battle.
type Options struct {
	RestStamina int
}

// Battle holds all state for one engagement.
type Battle struct {
	field    *world.Field
	skills   SkillLookup
	log      *battlelog.Log
	resolver *combat.Resolver

	units []*unit.Unit
	byID  map[string]*unit.Unit

	phase   Phase
	turn    int
	latest  *preview.Snapshot
	outcome Outcome
}

// New creates an empty battle on the given field.
func New(field *world.Field, skills SkillLookup, log *battlelog.Log, opts Options) *Battle {
	return &Battle{
		field:    field,
		skills:   skills,
		log:      log,
		resolver: combat.NewResolver(opts.RestStamina, log),
		byID:     make(map[string]*unit.Unit),
		phase:    PhaseSetup,
	}
}

// AddUnit places a unit on its own side of the field.
func (b *Battle) AddUnit(u *unit.Unit, pos world.Position) error {
	if u == nil {
		return fmt.Errorf("add unit: nil unit")
	}
	if _, dup := b.byID[u.ID()]; dup {
		return fmt.Errorf("add unit %s: duplicate id", u.ID())
	}
	if side, ok := b.field.SideOf(pos); !ok || side != u.Side() {
		return fmt.Errorf("add unit %s: %s is not on the %s side", u.ID(), pos, u.Side())
	}
	if err := b.field.Place(u.ID(), pos); err != nil {
		return fmt.Errorf("add unit %s: %w", u.ID(), err)
	}
	u.SetPosition(pos)
	b.units = append(b.units, u)
	b.byID[u.ID()] = u
	return nil
}

// Unit returns the unit with the given ID, or nil.
func (b *Battle) Unit(id string) *unit.Unit {
	return b.byID[id]
}

// Units returns every unit in placement order, defeated ones included.
func (b *Battle) Units() []*unit.Unit {
	return b.units
}

// LiveUnits returns read-only views of the units still standing.
func (b *Battle) LiveUnits() []unit.ReadOnly {
	out := make([]unit.ReadOnly, 0, len(b.units))
	for _, u := range b.units {
		if !u.IsDead() {
			out = append(out, u)
		}
	}
	return out
}

// AliveCount returns the number of units standing on a side.
func (b *Battle) AliveCount(side world.Side) int {
	count := 0
	for _, u := range b.units {
		if u.Side() == side && !u.IsDead() {
			count++
		}
	}
	return count
}

// LatestSnapshot returns the snapshot recorded at the start of the current
// planning phase. The second result is false before the first turn is planned.
func (b *Battle) LatestSnapshot() (preview.Snapshot, bool) {
	if b.latest == nil {
		return preview.Snapshot{}, false
	}
	return *b.latest, true
}

// Field returns the battlefield grid.
func (b *Battle) Field() *world.Field { return b.field }

// Log returns the battle log.
func (b *Battle) Log() *battlelog.Log { return b.log }

// Phase returns the current phase.
func (b *Battle) Phase() Phase { return b.phase }

// Turn returns the number of turns resolved so far.
func (b *Battle) Turn() int { return b.turn }

// Outcome reports whether a side has won.
func (b *Battle) Outcome() Outcome { return b.outcome }

func (b *Battle) recordSnapshot() {
	snap := preview.Capture(b.turn, b.LiveUnits())
	b.latest = &snap
}

func (b *Battle) updateOutcome() Outcome {
	left := b.AliveCount(world.SideLeft)
	right := b.AliveCount(world.SideRight)
	switch {
	case left == 0 && right == 0:
		b.outcome = OutcomeDraw
	case right == 0:
		b.outcome = OutcomeLeftWins
	case left == 0:
		b.outcome = OutcomeRightWins
	default:
		b.outcome = OutcomeOngoing
	}
	if b.outcome != OutcomeOngoing {
		b.phase = PhaseFinished
	}
	return b.outcome
}

var (
	_ skill.Roster           = (*Battle)(nil)
	_ preview.UnitSource     = (*Battle)(nil)
	_ preview.SnapshotSource = (*Battle)(nil)
)
