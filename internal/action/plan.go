// Package action provides the immutable action plan model: one unit's
// declared intent for a phase of the turn.
package action

import (
	"github.com/google/uuid"

	"github.com/samdwyer/battlecore/internal/skill"
	"github.com/samdwyer/battlecore/internal/unit"
	"github.com/samdwyer/battlecore/internal/world"
)

// Kind is what a plan does.
type Kind int

const (
	KindAttack Kind = iota
	KindDefend
	KindRest
	KindSkill
	KindItem
	KindExchange
	KindSkip
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAttack:
		return "attack"
	case KindDefend:
		return "defend"
	case KindRest:
		return "rest"
	case KindSkill:
		return "skill"
	case KindItem:
		return "item"
	case KindExchange:
		return "exchange"
	case KindSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// Plan is a declared action. It is a value: construction copies what it
// needs and nothing mutates it afterwards. Construction never validates;
// legality is checked by the battle planner.
type Plan struct {
	source      unit.ReadOnly
	target      unit.ReadOnly
	kind        Kind
	phase       int
	role        unit.Role
	transaction string
	item        *skill.Item
	position    world.Position
	skill       *skill.Data
}

// NewTargeted declares a player action against a unit. The target's slot is
// copied at creation time.
func NewTargeted(source, target unit.ReadOnly, kind Kind, phase int, role unit.Role) Plan {
	return Plan{
		source:   source,
		target:   target,
		kind:     kind,
		phase:    phase,
		role:     role,
		position: positionOf(target),
	}
}

// NewAtPosition declares an action against a slot rather than a unit.
// AI planners use it.
func NewAtPosition(source unit.ReadOnly, pos world.Position, kind Kind, phase int, role unit.Role) Plan {
	return Plan{
		source:   source,
		kind:     kind,
		phase:    phase,
		role:     role,
		position: pos,
	}
}

// NewUntargeted declares an action with no target, such as rest, defend or skip.
func NewUntargeted(source unit.ReadOnly, kind Kind, phase int, role unit.Role) Plan {
	return Plan{
		source:   source,
		kind:     kind,
		phase:    phase,
		role:     role,
		position: world.NoPosition,
	}
}

// Empty returns a placeholder plan for an unfilled slot in the queue.
func Empty(phase int, role unit.Role) Plan {
	return Plan{
		kind:     KindSkip,
		phase:    phase,
		role:     role,
		position: world.NoPosition,
	}
}

// NewSkill declares a skill use. The target slot is taken from the target
// unit at creation time; target may be nil for untargeted skills.
func NewSkill(source, target unit.ReadOnly, data *skill.Data, phase int, role unit.Role) Plan {
	return Plan{
		source:   source,
		target:   target,
		kind:     KindSkill,
		phase:    phase,
		role:     role,
		position: positionOf(target),
		skill:    data,
	}
}

// WithTransaction returns a copy of the plan grouped under a transaction id.
func (p Plan) WithTransaction(id string) Plan {
	p.transaction = id
	return p
}

// WithItem returns a copy of the plan carrying an item.
func (p Plan) WithItem(item *skill.Item) Plan {
	p.item = item
	return p
}

// NewTransactionID returns a fresh id for grouping plans.
func NewTransactionID() string {
	return uuid.NewString()
}

func (p Plan) Source() unit.ReadOnly    { return p.source }
func (p Plan) Target() unit.ReadOnly    { return p.target }
func (p Plan) Kind() Kind               { return p.kind }
func (p Plan) Phase() int               { return p.phase }
func (p Plan) Role() unit.Role          { return p.role }
func (p Plan) Transaction() string      { return p.transaction }
func (p Plan) Item() *skill.Item        { return p.item }
func (p Plan) Position() world.Position { return p.position }
func (p Plan) Skill() *skill.Data       { return p.skill }

// IsEmpty returns true for placeholder plans with no source.
func (p Plan) IsEmpty() bool { return p.source == nil }

// IsGrouped returns true if the plan belongs to a transaction.
func (p Plan) IsGrouped() bool { return p.transaction != "" }

// StaminaCost returns the stamina the plan will spend when it resolves.
func (p Plan) StaminaCost() int {
	if p.kind == KindSkill && p.skill != nil {
		return p.skill.StaminaCost
	}
	return 0
}

func positionOf(u unit.ReadOnly) world.Position {
	if u == nil {
		return world.NoPosition
	}
	return u.Position()
}
