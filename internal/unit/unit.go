package unit

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/samdwyer/battlecore/internal/battlelog"
	"github.com/samdwyer/battlecore/internal/buff"
	"github.com/samdwyer/battlecore/internal/world"
)

// ReadOnly is the view of a unit that planners, previews and skill effects
// may read. It exposes no mutators.
type ReadOnly interface {
	ID() string
	Name() string
	Side() world.Side
	Role() Role
	Position() world.Position
	Life() int
	MaxLife() int
	Stamina() int
	MaxStamina() int
	Attack() int
	Defense() int
	Speed() int
	Shield() float64
	IsDead() bool
	HasBuff(kind buff.Kind) bool
	BuffValue(kind buff.Kind) float64
	SkillIDs() []string
	SkillUsed(skillID string) bool
}

// Stats holds a unit's base numbers.
type Stats struct {
	Life    int
	Stamina int
	Attack  int
	Defense int
	Speed   int
}

// Unit is the owned, mutable record of a battle unit.
// Only the resolution driver and skill effects mutate it.
type Unit struct {
	id   string
	name string
	side world.Side
	role Role
	pos  world.Position

	life, maxLife       int
	stamina, maxStamina int
	attack              int
	defense             int
	speed               int

	skillIDs   []string
	usedSkills map[string]bool
	buffs      *buff.Engine
}

// New creates a unit at full life and stamina. log receives the unit's
// status effect messages and may be nil.
func New(id, name string, side world.Side, role Role, stats Stats, log *battlelog.Log) *Unit {
	u := &Unit{
		id:         id,
		name:       name,
		side:       side,
		role:       role,
		pos:        world.NoPosition,
		life:       stats.Life,
		maxLife:    stats.Life,
		stamina:    stats.Stamina,
		maxStamina: stats.Stamina,
		attack:     stats.Attack,
		defense:    stats.Defense,
		speed:      stats.Speed,
		usedSkills: make(map[string]bool),
	}
	u.buffs = buff.NewEngine(u, log)
	return u
}

// SetSkills replaces the unit's skill list.
func (u *Unit) SetSkills(ids []string) {
	u.skillIDs = make([]string, len(ids))
	copy(u.skillIDs, ids)
}

// =============================================================================
// ReadOnly implementation
// =============================================================================

func (u *Unit) ID() string               { return u.id }
func (u *Unit) Name() string             { return u.name }
func (u *Unit) Side() world.Side         { return u.side }
func (u *Unit) Role() Role               { return u.role }
func (u *Unit) Position() world.Position { return u.pos }
func (u *Unit) Life() int                { return u.life }
func (u *Unit) MaxLife() int             { return u.maxLife }
func (u *Unit) Stamina() int             { return u.stamina }
func (u *Unit) MaxStamina() int          { return u.maxStamina }
func (u *Unit) Speed() int               { return u.speed }
func (u *Unit) Shield() float64          { return u.buffs.Shield() }
func (u *Unit) IsDead() bool             { return u.life <= 0 }
func (u *Unit) SkillIDs() []string       { return u.skillIDs }

// BaseAttack returns attack without modifiers.
func (u *Unit) BaseAttack() int { return u.attack }

// BaseDefense returns defense without modifiers.
func (u *Unit) BaseDefense() int { return u.defense }

// Attack returns attack with every active modifier applied.
func (u *Unit) Attack() int {
	return u.modified(u.attack,
		buff.AttackValueUp, buff.AttackValueDown,
		buff.AttackPercentUp, buff.AttackPercentDown)
}

// Defense returns defense with every active modifier applied.
func (u *Unit) Defense() int {
	return u.modified(u.defense,
		buff.DefenseValueUp, buff.DefenseValueDown,
		buff.DefensePercentUp, buff.DefensePercentDown)
}

// modified computes (base + up - down) * (1 + pctUp - pctDown), rounded and
// floored at zero.
func (u *Unit) modified(base int, up, down, pctUp, pctDown buff.Kind) int {
	flat := float64(base) + u.buffs.BuffValue(up) - u.buffs.BuffValue(down)
	scale := 1 + u.buffs.BuffValue(pctUp) - u.buffs.BuffValue(pctDown)
	return clamp(int(math.Round(flat*scale)), 0, math.MaxInt)
}

// HasBuff reports whether a timed buff or aura of the kind is active.
func (u *Unit) HasBuff(kind buff.Kind) bool { return u.buffs.HasBuff(kind) }

// BuffValue returns the summed magnitude of the kind.
func (u *Unit) BuffValue(kind buff.Kind) float64 { return u.buffs.BuffValue(kind) }

// SkillUsed returns true if a one-time skill has already been spent.
func (u *Unit) SkillUsed(skillID string) bool { return u.usedSkills[skillID] }

// =============================================================================
// Mutations
// =============================================================================

// Buffs returns the unit's status effect engine.
func (u *Unit) Buffs() *buff.Engine { return u.buffs }

// TakeDamage runs incoming damage through the shield first and removes the
// remainder from life. The absorbed share is rounded to whole life points.
// Returns the life actually lost.
func (u *Unit) TakeDamage(amount int) int {
	if amount <= 0 || u.IsDead() {
		return 0
	}
	absorbed := int(math.Round(u.buffs.AbsorbDamage(float64(amount))))
	return u.LoseLife(clamp(amount-absorbed, 0, amount))
}

// LoseLife removes life directly, bypassing the shield.
// Returns the life actually lost.
func (u *Unit) LoseLife(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, u.life)
	u.life -= actual
	return actual
}

// Heal restores life up to the maximum and returns the amount healed.
func (u *Unit) Heal(amount int) int {
	if amount <= 0 || u.IsDead() {
		return 0
	}
	actual := clamp(amount, 0, u.maxLife-u.life)
	u.life += actual
	return actual
}

// SpendStamina reduces stamina and returns false if insufficient.
func (u *Unit) SpendStamina(amount int) bool {
	if amount <= 0 {
		return true
	}
	if u.stamina < amount {
		return false
	}
	u.stamina -= amount
	return true
}

// RestoreStamina restores stamina up to the maximum and returns the amount restored.
func (u *Unit) RestoreStamina(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := clamp(amount, 0, u.maxStamina-u.stamina)
	u.stamina += actual
	return actual
}

// SetPosition moves the unit to a slot.
func (u *Unit) SetPosition(p world.Position) { u.pos = p }

// SetRole changes the unit's battlefield role. Exchange uses it when two
// units trade slots.
func (u *Unit) SetRole(r Role) { u.role = r }

// MarkSkillUsed records that a one-time skill has been spent.
func (u *Unit) MarkSkillUsed(skillID string) { u.usedSkills[skillID] = true }

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Ensure Unit satisfies both views.
var (
	_ ReadOnly   = (*Unit)(nil)
	_ buff.Owner = (*Unit)(nil)
)
