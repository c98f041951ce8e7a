package buff

import (
	"math"

	"github.com/samdwyer/battlecore/internal/battlelog"
)

// Owner is the unit an Engine belongs to. Over-time effects change its life
// directly, bypassing the shield.
type Owner interface {
	Name() string
	Heal(amount int) int     // Returns actual amount healed
	LoseLife(amount int) int // Returns actual life lost
}

// Engine tracks the timed buffs, auras and shield of a single unit.
// It is owned by that unit and is not safe for concurrent use.
type Engine struct {
	owner  Owner
	log    *battlelog.Log
	active []*Instance
	auras  []*Instance
	shield float64
}

// NewEngine creates an engine for the given owner. log may be nil.
func NewEngine(owner Owner, log *battlelog.Log) *Engine {
	return &Engine{
		owner:  owner,
		log:    log,
		active: make([]*Instance, 0, 8),
	}
}

// Apply applies a buff definition. Shields add to the shield pool and are
// not tracked as instances; every other kind becomes a new timed instance.
// Applications of the same kind stack additively.
func (e *Engine) Apply(def Definition, source Source) {
	if def.Kind == Shield {
		e.shield += def.Magnitude
		e.log.Addf("%s gains %g shield from %s (total %g)",
			e.ownerName(), def.Magnitude, sourceName(source), e.shield)
		return
	}

	e.active = append(e.active, NewInstance(def, source))
	e.log.Addf("%s receives %s from %s for %d turn(s)",
		e.ownerName(), def.describe(), sourceName(source), def.Duration)
}

// ApplyAura adds a non-ticking contribution that lasts until ClearAllAuras.
func (e *Engine) ApplyAura(def Definition, source Source) {
	e.auras = append(e.auras, NewInstance(def, source))
	e.log.Debugf("%s aura %s from %s", e.ownerName(), def.describe(), sourceName(source))
}

// ClearAllAuras removes every aura.
func (e *Engine) ClearAllAuras() {
	e.auras = nil
}

// ClearShield empties the shield pool.
func (e *Engine) ClearShield() {
	e.shield = 0
}

// AbsorbDamage consumes shield against incoming damage and returns the
// absorbed portion: min(shield, amount), never negative.
func (e *Engine) AbsorbDamage(amount float64) float64 {
	if e.shield <= 0 || amount <= 0 {
		return 0
	}
	absorbed := math.Min(e.shield, amount)
	e.shield -= absorbed
	return absorbed
}

// TickAllBuffs advances every timed buff by one turn.
//
// Over-time effects of all unexpired buffs fire first; only then are
// durations decremented and expired buffs removed. An over-time buff
// therefore fires on the tick that expires it.
func (e *Engine) TickAllBuffs() {
	for _, inst := range e.active {
		if inst.Expired() || e.owner == nil {
			continue
		}
		amount := int(math.Round(inst.Def.Magnitude))
		switch inst.Def.Kind {
		case HealOverTime:
			healed := e.owner.Heal(amount)
			e.log.Addf("%s recovers %d life from %s", e.ownerName(), healed, inst.Def.Label())
		case DamageOverTime:
			lost := e.owner.LoseLife(amount)
			e.log.Addf("%s suffers %d damage from %s", e.ownerName(), lost, inst.Def.Label())
		}
	}

	n := 0
	for _, inst := range e.active {
		inst.Tick()
		if inst.Expired() {
			e.log.Addf("%s on %s wears off", inst.Def.Label(), e.ownerName())
			continue
		}
		e.active[n] = inst
		n++
	}
	clear(e.active[n:])
	e.active = e.active[:n]
}

// BuffValue returns the summed magnitude of every unexpired timed buff and
// every aura of the given kind.
func (e *Engine) BuffValue(kind Kind) float64 {
	total := 0.0
	for _, inst := range e.active {
		if inst.Def.Kind == kind && !inst.Expired() {
			total += inst.Def.Magnitude
		}
	}
	for _, inst := range e.auras {
		if inst.Def.Kind == kind {
			total += inst.Def.Magnitude
		}
	}
	return total
}

// HasBuff returns true if an unexpired timed buff or an aura of the kind exists.
func (e *Engine) HasBuff(kind Kind) bool {
	for _, inst := range e.active {
		if inst.Def.Kind == kind && !inst.Expired() {
			return true
		}
	}
	for _, inst := range e.auras {
		if inst.Def.Kind == kind {
			return true
		}
	}
	return false
}

// Shield returns the current shield pool.
func (e *Engine) Shield() float64 {
	return e.shield
}

// Active returns a copy of the timed buff list.
func (e *Engine) Active() []Instance {
	out := make([]Instance, len(e.active))
	for i, inst := range e.active {
		out[i] = *inst
	}
	return out
}

// Auras returns a copy of the aura list.
func (e *Engine) Auras() []Instance {
	out := make([]Instance, len(e.auras))
	for i, inst := range e.auras {
		out[i] = *inst
	}
	return out
}

// Len returns the number of timed buffs.
func (e *Engine) Len() int {
	return len(e.active)
}

func (e *Engine) ownerName() string {
	if e.owner == nil {
		return "unknown"
	}
	return e.owner.Name()
}
