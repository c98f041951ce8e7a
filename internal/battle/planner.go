package battle

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samdwyer/battlecore/internal/action"
	"github.com/samdwyer/battlecore/internal/buff"
	"github.com/samdwyer/battlecore/internal/skill"
	"github.com/samdwyer/battlecore/internal/unit"
)

// Planner errors. Validate wraps them with details; test with errors.Is.
var (
	ErrNotPlanning         = errors.New("battle is not in the planning phase")
	ErrSourceUnavailable   = errors.New("source unit cannot act")
	ErrRoleMismatch        = errors.New("plan declared for another role")
	ErrInsufficientStamina = errors.New("insufficient stamina")
	ErrOutOfRange          = errors.New("target out of range")
	ErrSkillSpent          = errors.New("one-time skill already used")
	ErrIllegalTarget       = errors.New("illegal target")
	ErrNoQueue             = errors.New("no plan queue")
)

// pending is what the source's already-queued plans have committed.
type pending struct {
	stamina int
	skills  map[string]bool
}

// Validate checks a plan against the current battle state on its own.
// Placeholder plans are always valid.
func (b *Battle) Validate(p action.Plan) error {
	return b.validate(p, pending{})
}

// Declare validates p, taking into account the stamina and one-time skills
// the same source has already committed in q, and queues it on success.
func (b *Battle) Declare(q *action.Queue, p action.Plan) error {
	if b.phase != PhasePlanning {
		return ErrNotPlanning
	}
	if q == nil {
		return ErrNoQueue
	}
	if err := b.validate(p, committed(q, p)); err != nil {
		return err
	}
	q.Add(p)
	return nil
}

func committed(q *action.Queue, p action.Plan) pending {
	c := pending{skills: make(map[string]bool)}
	if p.IsEmpty() {
		return c
	}
	id := p.Source().ID()
	for _, other := range q.Plans() {
		if other.IsEmpty() || other.Source().ID() != id {
			continue
		}
		c.stamina += other.StaminaCost()
		if data := other.Skill(); data != nil && data.OneTime {
			c.skills[data.ID] = true
		}
	}
	return c
}

func (b *Battle) validate(p action.Plan, c pending) error {
	if p.IsEmpty() {
		return nil
	}

	src := b.Unit(p.Source().ID())
	if src == nil || src.IsDead() {
		return fmt.Errorf("%w: %s is not standing", ErrSourceUnavailable, p.Source().Name())
	}
	if src.HasBuff(buff.Stun) {
		return fmt.Errorf("%w: %s is stunned", ErrSourceUnavailable, src.Name())
	}
	if p.Role() != src.Role() {
		return fmt.Errorf("%w: %s is %s, plan is for %s", ErrRoleMismatch, src.Name(), src.Role(), p.Role())
	}

	target := b.primary(p)
	switch p.Kind() {
	case action.KindAttack:
		if !skill.ValidTarget(skill.TargetEnemySingle, src, readOnly(target)) {
			return fmt.Errorf("%w: %s cannot attack that", ErrIllegalTarget, src.Name())
		}
	case action.KindSkill:
		return b.validateSkill(src, p.Skill(), target, c)
	case action.KindItem:
		item := p.Item()
		if item == nil {
			return fmt.Errorf("%w: no item", ErrIllegalTarget)
		}
		if !skill.ValidTarget(item.Target, src, readOnly(target)) {
			return fmt.Errorf("%w: %s cannot be used on that", ErrIllegalTarget, item.Name)
		}
	case action.KindExchange:
		dest := p.Position()
		side, ok := b.field.SideOf(dest)
		if !ok || side != src.Side() || dest == src.Position() {
			return fmt.Errorf("%w: %s cannot move to %s", ErrIllegalTarget, src.Name(), dest)
		}
	}
	return nil
}

func (b *Battle) validateSkill(src *unit.Unit, data *skill.Data, target *unit.Unit, c pending) error {
	if data == nil {
		return fmt.Errorf("%w: no skill", ErrIllegalTarget)
	}
	if data.IsPassive() {
		return fmt.Errorf("%w: %s is passive", ErrIllegalTarget, data.Name)
	}
	if data.IsCommander() && src.Role() != unit.RoleCommander {
		return fmt.Errorf("%w: %s is a commander skill", ErrRoleMismatch, data.Name)
	}
	if !slices.Contains(src.SkillIDs(), data.ID) {
		return fmt.Errorf("%w: %s does not know %s", ErrIllegalTarget, src.Name(), data.Name)
	}
	if data.OneTime && (src.SkillUsed(data.ID) || c.skills[data.ID]) {
		return fmt.Errorf("%w: %s", ErrSkillSpent, data.Name)
	}
	if src.Stamina()-c.stamina < data.StaminaCost {
		return fmt.Errorf("%w: %s needs %d, %s has %d available",
			ErrInsufficientStamina, data.Name, data.StaminaCost, src.Name(), src.Stamina()-c.stamina)
	}
	if !skill.ValidTarget(data.Target, src, readOnly(target)) {
		return fmt.Errorf("%w: %s cannot target that", ErrIllegalTarget, data.Name)
	}
	if data.Target.NeedsTarget() && !data.InRange(src.Position(), target.Position()) {
		return fmt.Errorf("%w: %s reaches %d", ErrOutOfRange, data.Name, data.MaxRange)
	}
	return nil
}

// primary returns the unit a plan is aimed at: the declared target unit, or
// whoever occupies the declared slot.
func (b *Battle) primary(p action.Plan) *unit.Unit {
	if t := p.Target(); t != nil {
		return b.Unit(t.ID())
	}
	if pos := p.Position(); pos.IsValid() {
		return b.Unit(b.field.At(pos))
	}
	return nil
}

// readOnly converts without producing a non-nil interface around a nil pointer.
func readOnly(u *unit.Unit) unit.ReadOnly {
	if u == nil {
		return nil
	}
	return u
}
