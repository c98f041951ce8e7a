package skill

import (
	"math"

	"github.com/samdwyer/battlecore/internal/battlelog"
	"github.com/samdwyer/battlecore/internal/buff"
	"github.com/samdwyer/battlecore/internal/unit"
)

// Context carries the battle-scoped collaborators effects need.
type Context struct {
	Log *battlelog.Log
}

// Effect is one step of a skill. The set of variants is closed:
// Damage, Heal and ApplyBuff.
//
// Execute mutates each live target in order. Nil and defeated targets are
// skipped without logging.
type Effect interface {
	Execute(source unit.ReadOnly, targets []*unit.Unit, bc *Context)
	effectName() string
}

// Damage deals base damage plus an optional share of the source's attack.
type Damage struct {
	Base            int
	Scaling         float64
	ScaleWithAttack bool
}

// Total returns the damage this effect deals when cast by source.
func (d Damage) Total(source unit.ReadOnly) int {
	total := d.Base
	if d.ScaleWithAttack && source != nil {
		total += int(math.Round(float64(source.Attack()) * d.Scaling))
	}
	return total
}

// Execute implements Effect.
func (d Damage) Execute(source unit.ReadOnly, targets []*unit.Unit, bc *Context) {
	total := d.Total(source)
	for _, t := range targets {
		if t == nil || t.IsDead() {
			continue
		}
		shieldBefore := t.Shield()
		lost := t.TakeDamage(total)
		absorbed := shieldBefore - t.Shield()

		if absorbed > 0 {
			bc.log().Addf("%s deals %d damage to %s (%g absorbed, %d life lost)",
				nameOf(source), total, t.Name(), absorbed, lost)
		} else {
			bc.log().Addf("%s deals %d damage to %s", nameOf(source), total, t.Name())
		}
		if t.IsDead() {
			bc.log().Addf("%s is defeated", t.Name())
		}
	}
}

func (Damage) effectName() string { return "damage" }

// Heal restores a fixed amount of life.
type Heal struct {
	Amount int
}

// Execute implements Effect.
func (h Heal) Execute(source unit.ReadOnly, targets []*unit.Unit, bc *Context) {
	for _, t := range targets {
		if t == nil || t.IsDead() {
			continue
		}
		healed := t.Heal(h.Amount)
		bc.log().Addf("%s heals %s for %d", nameOf(source), t.Name(), healed)
	}
}

func (Heal) effectName() string { return "heal" }

// ApplyBuff applies every buff definition to every target. When Aura is set
// the buffs go to the non-ticking aura list instead.
type ApplyBuff struct {
	Buffs []buff.Definition
	Aura  bool
}

// Execute implements Effect.
func (a ApplyBuff) Execute(source unit.ReadOnly, targets []*unit.Unit, bc *Context) {
	var src buff.Source
	if source != nil {
		src = source
	}
	for _, t := range targets {
		if t == nil || t.IsDead() {
			continue
		}
		for _, def := range a.Buffs {
			if a.Aura {
				t.Buffs().ApplyAura(def, src)
			} else {
				t.Buffs().Apply(def, src)
			}
		}
	}
}

func (ApplyBuff) effectName() string { return "apply_buff" }

func (bc *Context) log() *battlelog.Log {
	if bc == nil {
		return nil
	}
	return bc.Log
}

func nameOf(u unit.ReadOnly) string {
	if u == nil {
		return "Someone"
	}
	return u.Name()
}

// Ensure the variants implement Effect.
var (
	_ Effect = Damage{}
	_ Effect = Heal{}
	_ Effect = ApplyBuff{}
)
