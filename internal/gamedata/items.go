package gamedata

import (
	"fmt"

	"github.com/samdwyer/battlecore/internal/skill"
)

// ItemDef defines a consumable item loaded from JSON. Items use the same
// effect types as skills.
type ItemDef struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Target      skill.TargetMode `json:"target"`
	Effects     []EffectDef      `json:"effects"`
}

// Build converts the definition into an executable item.
func (d *ItemDef) Build() (*skill.Item, error) {
	if d.ID == "" {
		return nil, fmt.Errorf("item %q: missing id", d.Name)
	}
	effects, err := buildEffects(d.Effects)
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", d.ID, err)
	}
	return &skill.Item{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Target:      d.Target,
		Effects:     effects,
	}, nil
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items"`
}

// LoadItems loads and builds item definitions from the embedded items.json file.
func LoadItems() ([]*skill.Item, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	out := make([]*skill.Item, 0, len(file.Items))
	for i := range file.Items {
		item, err := file.Items[i].Build()
		if err != nil {
			return nil, fmt.Errorf("items.json: %w", err)
		}
		out = append(out, item)
	}
	return out, nil
}
