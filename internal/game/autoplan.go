package game

import (
	"math/rand"
	"slices"

	"github.com/samdwyer/battlecore/internal/action"
	"github.com/samdwyer/battlecore/internal/battle"
	"github.com/samdwyer/battlecore/internal/gamedata"
	"github.com/samdwyer/battlecore/internal/skill"
	"github.com/samdwyer/battlecore/internal/unit"
	"github.com/samdwyer/battlecore/internal/world"
)

// Stamina below which a unit rests instead of attacking.
const restThreshold = 2

// AutoPlanner declares plans for units without a player. Choices are drawn
// from a seeded rng so a run can be replayed.
type AutoPlanner struct {
	battle    *battle.Battle
	skills    *gamedata.SkillRegistry
	items     *gamedata.ItemRegistry
	inventory Inventory
	rng       *rand.Rand
}

// NewAutoPlanner creates a planner drawing from the given inventory.
func NewAutoPlanner(b *battle.Battle, skills *gamedata.SkillRegistry, items *gamedata.ItemRegistry, inv Inventory, rng *rand.Rand) *AutoPlanner {
	if inv == nil {
		inv = make(Inventory)
	}
	return &AutoPlanner{
		battle:    b,
		skills:    skills,
		items:     items,
		inventory: inv,
		rng:       rng,
	}
}

// Plan declares u's plans for this turn into q and returns them. A stunned
// unit gets a placeholder so its slot in the queue is still filled.
func (p *AutoPlanner) Plan(u unit.ReadOnly, q *action.Queue) []action.Plan {
	if u == nil || u.IsDead() {
		return nil
	}
	role := u.Role()

	rest := action.NewUntargeted(u, action.KindRest, 0, role)
	if err := p.battle.Validate(rest); err != nil {
		placeholder := action.Empty(0, role)
		q.Add(placeholder)
		return []action.Plan{placeholder}
	}

	if plan, ok := p.planExchange(u, q); ok {
		return []action.Plan{plan}
	}
	if plan, ok := p.planItem(u, q); ok {
		return []action.Plan{plan}
	}
	if plans := p.planSkill(u, q); len(plans) > 0 {
		return plans
	}

	if role == unit.RoleVanguard && hurt(u) {
		defend := action.NewUntargeted(u, action.KindDefend, 0, role)
		if p.battle.Declare(q, defend) == nil {
			return []action.Plan{defend}
		}
	}
	if u.Stamina() >= restThreshold {
		if target := p.pickEnemy(u, nil); target != nil {
			attack := action.NewTargeted(u, target, action.KindAttack, 0, role)
			if p.battle.Declare(q, attack) == nil {
				return []action.Plan{attack}
			}
		}
	}
	if p.battle.Declare(q, rest) == nil {
		return []action.Plan{rest}
	}
	return nil
}

// planSkill tries the unit's skills in random order. A skill that leaves the
// unit drained is grouped with a follow-up rest; if the rest cannot be
// declared the whole transaction is withdrawn.
func (p *AutoPlanner) planSkill(u unit.ReadOnly, q *action.Queue) []action.Plan {
	ids := u.SkillIDs()
	for _, idx := range p.rng.Perm(len(ids)) {
		data := p.skills.GetByID(ids[idx])
		if data == nil || data.IsPassive() || data.StaminaCost > u.Stamina() {
			continue
		}
		target, ok := p.pickSkillTarget(u, data)
		if !ok {
			continue
		}

		tx := action.NewTransactionID()
		plan := action.NewSkill(u, target, data, 0, u.Role()).WithTransaction(tx)
		if p.battle.Declare(q, plan) != nil {
			continue
		}
		if u.Stamina()-data.StaminaCost >= restThreshold {
			return []action.Plan{plan}
		}

		rest := action.NewUntargeted(u, action.KindRest, 1, u.Role()).WithTransaction(tx)
		if p.battle.Declare(q, rest) != nil {
			q.RemoveTransaction(tx)
			continue
		}
		return []action.Plan{plan, rest}
	}
	return nil
}

// pickSkillTarget returns the unit to aim a skill at. ok is false when the
// skill would be wasted this turn.
func (p *AutoPlanner) pickSkillTarget(u unit.ReadOnly, data *skill.Data) (unit.ReadOnly, bool) {
	switch data.Target {
	case skill.TargetEnemySingle, skill.TargetEnemyLine:
		target := p.pickEnemy(u, data)
		return target, target != nil
	case skill.TargetAllySingle:
		target := p.weakestAlly(u)
		return target, target != nil
	case skill.TargetSelf:
		if heals(data.Effects) && u.Life() == u.MaxLife() {
			return nil, false
		}
		return nil, true
	default:
		return nil, true
	}
}

// planItem uses a carried item when the situation calls for it: healing a
// hurt ally, shielding a hurt self, or an opening volley on the first turn.
func (p *AutoPlanner) planItem(u unit.ReadOnly, q *action.Queue) (action.Plan, bool) {
	for _, id := range slices.Clone(p.inventory[u.ID()]) {
		item := p.items.GetByID(id)
		if item == nil {
			continue
		}

		var plan action.Plan
		switch item.Target {
		case skill.TargetAllySingle:
			target := p.weakestAlly(u)
			if target == nil {
				continue
			}
			plan = action.NewTargeted(u, target, action.KindItem, 0, u.Role())
		case skill.TargetSelf:
			if !hurt(u) {
				continue
			}
			plan = action.NewUntargeted(u, action.KindItem, 0, u.Role())
		case skill.TargetEnemyAll:
			if p.battle.Turn() > 0 {
				continue
			}
			plan = action.NewUntargeted(u, action.KindItem, 0, u.Role())
		default:
			continue
		}

		plan = plan.WithItem(item)
		if p.battle.Declare(q, plan) == nil {
			p.inventory.Take(u.ID(), id)
			return plan, true
		}
	}
	return action.Plan{}, false
}

// planExchange pulls a badly hurt front-liner back behind a healthier ally
// on the same row.
func (p *AutoPlanner) planExchange(u unit.ReadOnly, q *action.Queue) (action.Plan, bool) {
	if u.Life()*3 >= u.MaxLife() {
		return action.Plan{}, false
	}
	field := p.battle.Field()
	row := field.Row(u.Side(), u.Position().Row)
	if len(row) < 2 || row[0] != u.Position() {
		return action.Plan{}, false
	}
	behind := p.battle.Unit(field.At(row[1]))
	if behind == nil || behind.IsDead() || ratio(behind) <= ratio(u) {
		return action.Plan{}, false
	}

	plan := action.NewAtPosition(u, row[1], action.KindExchange, 0, u.Role())
	if p.battle.Declare(q, plan) != nil {
		return action.Plan{}, false
	}
	return plan, true
}

// pickEnemy returns a random live enemy, within the skill's range when data
// is set.
func (p *AutoPlanner) pickEnemy(u unit.ReadOnly, data *skill.Data) unit.ReadOnly {
	enemies := p.sideUnits(u.Side().Opponent())
	for _, idx := range p.rng.Perm(len(enemies)) {
		e := enemies[idx]
		if data == nil || data.InRange(u.Position(), e.Position()) {
			return e
		}
	}
	return nil
}

// weakestAlly returns the live ally (or u itself) with the lowest life
// ratio, or nil if nobody is below half life.
func (p *AutoPlanner) weakestAlly(u unit.ReadOnly) unit.ReadOnly {
	var weakest unit.ReadOnly
	for _, ally := range p.sideUnits(u.Side()) {
		if !hurt(ally) {
			continue
		}
		if weakest == nil || ratio(ally) < ratio(weakest) {
			weakest = ally
		}
	}
	return weakest
}

func (p *AutoPlanner) sideUnits(side world.Side) []unit.ReadOnly {
	var out []unit.ReadOnly
	for _, u := range p.battle.LiveUnits() {
		if u.Side() == side {
			out = append(out, u)
		}
	}
	return out
}

func hurt(u unit.ReadOnly) bool {
	return u.Life()*2 < u.MaxLife()
}

func ratio(u unit.ReadOnly) float64 {
	if u.MaxLife() == 0 {
		return 0
	}
	return float64(u.Life()) / float64(u.MaxLife())
}

func heals(effects []skill.Effect) bool {
	for _, e := range effects {
		if _, ok := e.(skill.Heal); ok {
			return true
		}
	}
	return false
}
