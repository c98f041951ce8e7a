package gamedata

// =============================================================================
// SKILL DATA
// =============================================================================
//
// Skills are data-driven: each one is an ordered list of effects run against
// the targets its target mode resolves to. They are defined in skills.json and
// loaded at startup.
//
// Effect types:
// -------------
//   - damage:     base + round(attack * scaling) when scaleWithAttack is set
//   - heal:       fixed amount, capped at max life
//   - apply_buff: every listed buff goes to every target
//
// Buff kinds (magnitude, duration in turns):
//   - attack/defense _value_ up/down:   flat modifier
//   - attack/defense _percent_ up/down: 0.2 = 20%
//   - shield:           adds to the shield pool, duration ignored
//   - heal_over_time:   heals magnitude every tick
//   - damage_over_time: removes magnitude life every tick
//   - stun:             the unit's plans are skipped
//
// Passive and commander_passive skills are never cast. Their apply_buff
// effects are re-applied as auras at the start of every planning phase.
//
// JSON Schema:
// ------------
// {
//   "id": "piercing_shot",
//   "name": "Piercing Shot",
//   "kind": "active",
//   "target": "enemy_line",
//   "staminaCost": 4,
//   "oneTime": false,
//   "maxRange": 0,
//   "effects": [
//     {"type": "damage", "base": 8, "scaling": 0.5, "scaleWithAttack": true}
//   ]
// }

import (
	"fmt"

	"github.com/samdwyer/battlecore/internal/buff"
	"github.com/samdwyer/battlecore/internal/skill"
)

// Effect type names used in data files.
const (
	EffectDamage    = "damage"
	EffectHeal      = "heal"
	EffectApplyBuff = "apply_buff"
)

// EffectDef is the data-file form of a skill effect.
type EffectDef struct {
	Type            string            `json:"type"`
	Base            int               `json:"base,omitempty"`
	Scaling         float64           `json:"scaling,omitempty"`
	ScaleWithAttack bool              `json:"scaleWithAttack,omitempty"`
	Amount          int               `json:"amount,omitempty"`
	Buffs           []buff.Definition `json:"buffs,omitempty"`
	Aura            bool              `json:"aura,omitempty"`
}

// Build converts the definition into an executable effect.
func (e EffectDef) Build() (skill.Effect, error) {
	switch e.Type {
	case EffectDamage:
		return skill.Damage{Base: e.Base, Scaling: e.Scaling, ScaleWithAttack: e.ScaleWithAttack}, nil
	case EffectHeal:
		return skill.Heal{Amount: e.Amount}, nil
	case EffectApplyBuff:
		if len(e.Buffs) == 0 {
			return nil, fmt.Errorf("apply_buff effect has no buffs")
		}
		buffs := make([]buff.Definition, len(e.Buffs))
		copy(buffs, e.Buffs)
		return skill.ApplyBuff{Buffs: buffs, Aura: e.Aura}, nil
	default:
		return nil, fmt.Errorf("unknown effect type %q", e.Type)
	}
}

// SkillDef defines a skill loaded from JSON.
type SkillDef struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Kind        skill.Kind       `json:"kind"`
	Target      skill.TargetMode `json:"target"`
	StaminaCost int              `json:"staminaCost"`
	OneTime     bool             `json:"oneTime,omitempty"`
	MaxRange    int              `json:"maxRange,omitempty"`
	Effects     []EffectDef      `json:"effects"`
}

// Build converts the definition into skill data. Passive skills have their
// apply_buff effects forced onto the aura path.
func (d *SkillDef) Build() (*skill.Data, error) {
	if d.ID == "" {
		return nil, fmt.Errorf("skill %q: missing id", d.Name)
	}
	effects, err := buildEffects(d.Effects)
	if err != nil {
		return nil, fmt.Errorf("skill %s: %w", d.ID, err)
	}
	data := &skill.Data{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Kind:        d.Kind,
		Target:      d.Target,
		StaminaCost: d.StaminaCost,
		OneTime:     d.OneTime,
		MaxRange:    d.MaxRange,
		Effects:     effects,
	}
	if data.IsPassive() {
		for i, e := range data.Effects {
			if ab, ok := e.(skill.ApplyBuff); ok {
				ab.Aura = true
				data.Effects[i] = ab
			}
		}
	}
	return data, nil
}

func buildEffects(defs []EffectDef) ([]skill.Effect, error) {
	effects := make([]skill.Effect, 0, len(defs))
	for i, def := range defs {
		effect, err := def.Build()
		if err != nil {
			return nil, fmt.Errorf("effect %d: %w", i, err)
		}
		effects = append(effects, effect)
	}
	return effects, nil
}

// SkillsFile represents the structure of skills.json.
type SkillsFile struct {
	Skills []SkillDef `json:"skills"`
}

// LoadSkills loads and builds skill definitions from the embedded skills.json file.
func LoadSkills() ([]*skill.Data, error) {
	file, err := Load[SkillsFile]("skills.json")
	if err != nil {
		return nil, err
	}
	out := make([]*skill.Data, 0, len(file.Skills))
	for i := range file.Skills {
		data, err := file.Skills[i].Build()
		if err != nil {
			return nil, fmt.Errorf("skills.json: %w", err)
		}
		out = append(out, data)
	}
	return out, nil
}
