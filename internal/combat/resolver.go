// Package combat resolves the basic actions every unit has regardless of its
// skills: attack, defend and rest.
package combat

import (
	"strconv"

	"github.com/samdwyer/battlecore/internal/battlelog"
	"github.com/samdwyer/battlecore/internal/buff"
	"github.com/samdwyer/battlecore/internal/unit"
)

// Combatant is the mutable unit view the basic actions need.
type Combatant interface {
	Name() string
	IsDead() bool
	Attack() int
	Defense() int
	BaseDefense() int
	TakeDamage(amount int) int
	RestoreStamina(amount int) int
	Buffs() *buff.Engine
}

var _ Combatant = (*unit.Unit)(nil)

// GuardName labels the defense buff granted by the Defend action.
const GuardName = "Guard"

// Result contains the outcome of a basic action.
type Result struct {
	Success     bool
	Damage      int       // Life lost by the target
	Absorbed    float64   // Damage soaked by the target's shield
	Restored    int       // Stamina regained by Rest
	StatusAdded buff.Kind // Valid when Guarded is true
	Guarded     bool
	Message     string // Human-readable description, also written to the log
}

// Resolver applies basic actions and writes their messages to the battle log.
type Resolver struct {
	restStamina int
	log         *battlelog.Log
}

// NewResolver creates a resolver. restStamina is the stamina a Rest action restores.
func NewResolver(restStamina int, log *battlelog.Log) *Resolver {
	return &Resolver{
		restStamina: restStamina,
		log:         log,
	}
}

// Attack deals max(1, attack - defense) to the target through its shield.
func (r *Resolver) Attack(user, target Combatant) Result {
	if user == nil || target == nil || target.IsDead() {
		return r.fail(nameOf(user) + "'s attack finds no target")
	}

	damage := CalculateAttackDamage(user, target)
	shieldBefore := target.Buffs().Shield()
	lost := target.TakeDamage(damage)
	result := Result{
		Success:  true,
		Damage:   lost,
		Absorbed: shieldBefore - target.Buffs().Shield(),
		Message:  user.Name() + " attacks " + target.Name() + " for " + strconv.Itoa(damage) + " damage",
	}
	r.log.Addf("%s", result.Message)
	if target.IsDead() {
		r.log.Addf("%s is defeated", target.Name())
	}
	return result
}

// Defend raises the user's defense by its base defense until the end of the turn.
func (r *Resolver) Defend(user Combatant) Result {
	if user == nil {
		return r.fail("Nobody defends")
	}
	result := Result{
		Success:     true,
		StatusAdded: buff.DefenseValueUp,
		Guarded:     true,
		Message:     user.Name() + " takes a defensive stance",
	}
	r.log.Addf("%s", result.Message)
	user.Buffs().Apply(buff.Definition{
		Name:      GuardName,
		Kind:      buff.DefenseValueUp,
		Magnitude: float64(user.BaseDefense()),
		Duration:  1,
	}, user)
	return result
}

// Rest restores the configured amount of stamina.
func (r *Resolver) Rest(user Combatant) Result {
	if user == nil {
		return r.fail("Nobody rests")
	}
	restored := user.RestoreStamina(r.restStamina)
	result := Result{
		Success:  true,
		Restored: restored,
		Message:  user.Name() + " rests and recovers " + strconv.Itoa(restored) + " stamina",
	}
	r.log.Addf("%s", result.Message)
	return result
}

func (r *Resolver) fail(msg string) Result {
	r.log.Addf("%s", msg)
	return Result{Success: false, Message: msg}
}

// CalculateAttackDamage returns basic attack damage without applying it.
func CalculateAttackDamage(user, target Combatant) int {
	if user == nil || target == nil {
		return 0
	}
	return max(1, user.Attack()-target.Defense())
}

func nameOf(c Combatant) string {
	if c == nil {
		return "Someone"
	}
	return c.Name()
}
