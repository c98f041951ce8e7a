package skill

import (
	"cmp"
	"context"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/battlecore/internal/telemetry"
	"github.com/samdwyer/battlecore/internal/unit"
)

// Roster gives the pipeline access to the units on the battlefield.
type Roster interface {
	Unit(id string) *unit.Unit
	Units() []*unit.Unit
}

// Execute runs a skill's effects in declared order against the targets.
// Later effects see the state left by earlier ones; there is no rollback.
func Execute(ctx context.Context, data *Data, source unit.ReadOnly, targets []*unit.Unit, bc *Context) {
	if data == nil {
		bc.log().Debugf("skill execution skipped: no skill data")
		return
	}

	_, span := telemetry.Tracer("skill").Start(ctx, "skill.execute")
	span.SetAttributes(
		attribute.String("skill", data.ID),
		attribute.String("source", nameOf(source)),
		attribute.Int("targets", len(targets)),
		attribute.Int("effects", len(data.Effects)),
	)
	defer span.End()

	ExecuteEffects(data.Effects, source, targets, bc)
}

// ExecuteEffects runs a list of effects in order. Items use this directly.
func ExecuteEffects(effects []Effect, source unit.ReadOnly, targets []*unit.Unit, bc *Context) {
	for _, effect := range effects {
		if effect == nil {
			continue
		}
		effect.Execute(source, targets, bc)
	}
}

// ResolveTargets expands a target mode into the concrete units it affects.
// primary is the unit the player picked and may be nil for modes that need
// no pick. Defeated units are never returned.
func ResolveTargets(mode TargetMode, source unit.ReadOnly, primary unit.ReadOnly, roster Roster) []*unit.Unit {
	if source == nil || roster == nil {
		return nil
	}

	switch mode {
	case TargetSelf, TargetPassiveOwner:
		return alive(roster.Unit(source.ID()))

	case TargetEnemySingle, TargetAllySingle:
		if primary == nil {
			return nil
		}
		return alive(roster.Unit(primary.ID()))

	case TargetEnemyLine:
		row := source.Position().Row
		if primary != nil {
			row = primary.Position().Row
		}
		var line []*unit.Unit
		for _, u := range roster.Units() {
			if !u.IsDead() && u.Side() != source.Side() && u.Position().Row == row {
				line = append(line, u)
			}
		}
		// Front to back: closest to the caster first. The line shares one
		// row, so distance orders by column.
		from := source.Position()
		slices.SortStableFunc(line, func(a, b *unit.Unit) int {
			return cmp.Compare(a.Position().Distance(from), b.Position().Distance(from))
		})
		return line

	case TargetEnemyAll:
		return filter(roster.Units(), func(u *unit.Unit) bool { return u.Side() != source.Side() })

	case TargetAllyAll, TargetPassiveAllAllies:
		return filter(roster.Units(), func(u *unit.Unit) bool { return u.Side() == source.Side() })

	default:
		return nil
	}
}

// ValidTarget reports whether target is a legal pick for the mode.
// Modes that need no pick accept a nil target.
func ValidTarget(mode TargetMode, source, target unit.ReadOnly) bool {
	if source == nil {
		return false
	}
	switch mode {
	case TargetEnemySingle, TargetEnemyLine:
		return target != nil && !target.IsDead() && target.Side() != source.Side()
	case TargetAllySingle:
		return target != nil && !target.IsDead() && target.Side() == source.Side()
	case TargetSelf:
		return target == nil || target.ID() == source.ID()
	default:
		return true
	}
}

func alive(u *unit.Unit) []*unit.Unit {
	if u == nil || u.IsDead() {
		return nil
	}
	return []*unit.Unit{u}
}

func filter(units []*unit.Unit, keep func(*unit.Unit) bool) []*unit.Unit {
	out := make([]*unit.Unit, 0, len(units))
	for _, u := range units {
		if !u.IsDead() && keep(u) {
			out = append(out, u)
		}
	}
	return out
}

