package battle

import (
	"cmp"
	"context"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/battlecore/internal/action"
	"github.com/samdwyer/battlecore/internal/buff"
	"github.com/samdwyer/battlecore/internal/combat"
	"github.com/samdwyer/battlecore/internal/skill"
	"github.com/samdwyer/battlecore/internal/telemetry"
	"github.com/samdwyer/battlecore/internal/unit"
	"github.com/samdwyer/battlecore/internal/world"
)

// BeginPlanning opens a planning phase: shields and auras from the previous
// turn are cleared, passive skills re-apply their auras and a snapshot of
// the battlefield is recorded for the preview simulator.
func (b *Battle) BeginPlanning(ctx context.Context) {
	_, span := telemetry.Tracer("battle").Start(ctx, "battle.begin_planning")
	defer span.End()

	b.log.SetTurn(b.turn)
	for _, u := range b.units {
		u.Buffs().ClearShield()
		u.Buffs().ClearAllAuras()
	}

	passives := 0
	for _, u := range b.units {
		if u.IsDead() {
			continue
		}
		for _, id := range u.SkillIDs() {
			data := b.lookupSkill(id)
			if data == nil || !data.IsPassive() {
				continue
			}
			if data.IsCommander() && u.Role() != unit.RoleCommander {
				continue
			}
			targets := skill.ResolveTargets(data.Target, u, nil, b)
			skill.ExecuteEffects(data.Effects, u, targets, b.effectContext())
			passives++
		}
	}

	b.recordSnapshot()
	if b.updateOutcome() == OutcomeOngoing {
		b.phase = PhasePlanning
	}

	span.SetAttributes(
		attribute.Int("turn", b.turn),
		attribute.Int("passives", passives),
		attribute.Int("live_units", len(b.latest.Entries)),
	)
}

// ResolveTurn executes the committed plans. Plans run by phase, then by
// source speed (fastest first); equal keys keep queue order. Plans whose
// source is defeated or stunned are skipped. Resolution stops early once a
// side has fallen. Afterwards every standing unit's buffs tick once, the
// turn counter advances and a new snapshot is recorded.
func (b *Battle) ResolveTurn(ctx context.Context, q *action.Queue) Outcome {
	if b.phase == PhaseFinished {
		return b.outcome
	}

	ctx, span := telemetry.Tracer("battle").Start(ctx, "battle.resolve_turn")
	defer span.End()

	if q == nil {
		b.log.Debugf("turn %d resolved without a plan queue", b.turn)
	}
	b.phase = PhaseResolving
	plans := b.order(q.Plans())
	span.SetAttributes(
		attribute.Int("turn", b.turn),
		attribute.Int("plans", len(plans)),
	)

	for _, p := range plans {
		b.resolvePlan(ctx, span, p)
		if b.updateOutcome() != OutcomeOngoing {
			break
		}
	}

	if b.outcome == OutcomeOngoing {
		for _, u := range b.units {
			if !u.IsDead() {
				u.Buffs().TickAllBuffs()
			}
		}
	}
	b.removeFallen()

	b.turn++
	b.log.SetTurn(b.turn)
	b.recordSnapshot()

	outcome := b.updateOutcome()
	span.SetAttributes(attribute.String("outcome", outcome.String()))
	switch outcome {
	case OutcomeLeftWins:
		b.log.Addf("Victory for the %s side!", world.SideLeft)
	case OutcomeRightWins:
		b.log.Addf("Victory for the %s side!", world.SideRight)
	case OutcomeDraw:
		b.log.Addf("Both sides have fallen")
	}
	return outcome
}

// order sorts plans by phase, then by source speed descending.
func (b *Battle) order(plans []action.Plan) []action.Plan {
	sorted := slices.Clone(plans)
	slices.SortStableFunc(sorted, func(x, y action.Plan) int {
		if c := cmp.Compare(x.Phase(), y.Phase()); c != 0 {
			return c
		}
		return cmp.Compare(b.speedOf(y), b.speedOf(x))
	})
	return sorted
}

func (b *Battle) speedOf(p action.Plan) int {
	if p.IsEmpty() {
		return 0
	}
	if u := b.Unit(p.Source().ID()); u != nil {
		return u.Speed()
	}
	return 0
}

func (b *Battle) resolvePlan(ctx context.Context, span trace.Span, p action.Plan) {
	if p.IsEmpty() || p.Kind() == action.KindSkip {
		return
	}

	src := b.Unit(p.Source().ID())
	if src == nil || src.IsDead() {
		b.log.Debugf("%s plan skipped: %s is not standing", p.Kind(), p.Source().Name())
		return
	}
	if src.HasBuff(buff.Stun) {
		b.log.Addf("%s is stunned and cannot act", src.Name())
		return
	}

	span.AddEvent("plan", trace.WithAttributes(
		attribute.String("source", src.ID()),
		attribute.String("kind", p.Kind().String()),
		attribute.Int("phase", p.Phase()),
	))

	target := b.primary(p)
	switch p.Kind() {
	case action.KindAttack:
		result := b.resolver.Attack(src, combatant(target))
		if result.Success {
			span.SetAttributes(attribute.Int("damage", result.Damage))
		}
	case action.KindDefend:
		b.resolver.Defend(src)
	case action.KindRest:
		b.resolver.Rest(src)
	case action.KindSkill:
		b.resolveSkill(ctx, src, p.Skill(), target)
	case action.KindItem:
		b.resolveItem(src, p.Item(), target)
	case action.KindExchange:
		b.resolveExchange(src, p.Position())
	}
}

func (b *Battle) resolveSkill(ctx context.Context, src *unit.Unit, data *skill.Data, target *unit.Unit) {
	if err := b.validateSkill(src, data, target, pending{}); err != nil {
		b.log.Addf("%s cannot act: %v", src.Name(), err)
		return
	}

	targets := skill.ResolveTargets(data.Target, src, readOnly(target), b)
	if data.Target.NeedsTarget() && len(targets) == 0 {
		b.log.Addf("%s's %s has no target", src.Name(), data.Name)
		return
	}

	src.SpendStamina(data.StaminaCost)
	if data.OneTime {
		src.MarkSkillUsed(data.ID)
	}
	b.log.Addf("%s uses %s", src.Name(), data.Name)
	skill.Execute(ctx, data, src, targets, b.effectContext())
}

func (b *Battle) resolveItem(src *unit.Unit, item *skill.Item, target *unit.Unit) {
	if item == nil {
		b.log.Debugf("item plan skipped: no item")
		return
	}
	targets := skill.ResolveTargets(item.Target, src, readOnly(target), b)
	if item.Target.NeedsTarget() && len(targets) == 0 {
		b.log.Addf("%s's %s has no target", src.Name(), item.Name)
		return
	}
	b.log.Addf("%s uses %s", src.Name(), item.Name)
	skill.ExecuteEffects(item.Effects, src, targets, b.effectContext())
}

// resolveExchange moves src into dest, swapping with whoever stands there.
// Roles belong to the slots: two units that trade places trade roles too.
// Moving into a free slot keeps the role.
func (b *Battle) resolveExchange(src *unit.Unit, dest world.Position) {
	from := src.Position()
	side, ok := b.field.SideOf(dest)
	if !ok || side != src.Side() || dest == from {
		b.log.Addf("%s cannot move to %s", src.Name(), dest)
		return
	}

	other := b.Unit(b.field.At(dest))
	if err := b.field.Swap(from, dest); err != nil {
		b.log.Debugf("exchange failed: %v", err)
		return
	}
	src.SetPosition(dest)
	if other != nil {
		other.SetPosition(from)
		srcRole, otherRole := src.Role(), other.Role()
		src.SetRole(otherRole)
		other.SetRole(srcRole)
		b.log.Addf("%s and %s exchange places", src.Name(), other.Name())
		if srcRole != otherRole {
			b.log.Addf("%s takes the %s role, %s takes the %s role", src.Name(), otherRole, other.Name(), srcRole)
		}
		return
	}
	b.log.Addf("%s moves to %s", src.Name(), dest)
}

// removeFallen frees the slots of defeated units.
func (b *Battle) removeFallen() {
	for _, u := range b.units {
		if u.IsDead() && u.Position().IsValid() {
			b.field.Clear(u.Position())
			u.SetPosition(world.NoPosition)
		}
	}
}

func (b *Battle) lookupSkill(id string) *skill.Data {
	if b.skills == nil {
		return nil
	}
	return b.skills.GetByID(id)
}

func (b *Battle) effectContext() *skill.Context {
	return &skill.Context{Log: b.log}
}

func combatant(u *unit.Unit) combat.Combatant {
	if u == nil {
		return nil
	}
	return u
}
