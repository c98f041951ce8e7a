package gamedata

import (
	"errors"

	"github.com/samdwyer/battlecore/internal/skill"
)

// Registry holds loaded definitions keyed by ID, keeping file order for All.
type Registry[T any] struct {
	byID map[string]*T
	all  []*T
}

func newRegistry[T any](defs []*T, id func(*T) string) *Registry[T] {
	r := &Registry[T]{
		byID: make(map[string]*T, len(defs)),
		all:  defs,
	}
	for _, d := range defs {
		r.byID[id(d)] = d
	}
	return r
}

// GetByID returns the definition with the given ID, or nil if not found.
func (r *Registry[T]) GetByID(id string) *T {
	if r == nil {
		return nil
	}
	return r.byID[id]
}

// GetMultiple returns definitions for a list of IDs.
// Missing IDs are silently skipped.
func (r *Registry[T]) GetMultiple(ids []string) []*T {
	result := make([]*T, 0, len(ids))
	for _, id := range ids {
		if d := r.GetByID(id); d != nil {
			result = append(result, d)
		}
	}
	return result
}

// All returns all definitions in file order.
func (r *Registry[T]) All() []*T {
	return r.all
}

// Count returns the number of definitions in the registry.
func (r *Registry[T]) Count() int {
	return len(r.all)
}

// =============================================================================
// Skills
// =============================================================================

// SkillRegistry looks up skill data by ID.
type SkillRegistry = Registry[skill.Data]

// NewSkillRegistry creates a registry from built skill data.
func NewSkillRegistry(skills []*skill.Data) *SkillRegistry {
	return newRegistry(skills, func(d *skill.Data) string { return d.ID })
}

// LoadSkillRegistry loads and creates a registry from the embedded skills.json.
func LoadSkillRegistry() (*SkillRegistry, error) {
	skills, err := LoadSkills()
	if err != nil {
		return nil, err
	}
	if len(skills) == 0 {
		return nil, errors.New("no skills loaded from skills.json")
	}
	return NewSkillRegistry(skills), nil
}

// MustLoadSkillRegistry loads a registry, panicking on error.
func MustLoadSkillRegistry() *SkillRegistry {
	registry, err := LoadSkillRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// =============================================================================
// Items
// =============================================================================

// ItemRegistry looks up items by ID.
type ItemRegistry = Registry[skill.Item]

// NewItemRegistry creates a registry from built items.
func NewItemRegistry(items []*skill.Item) *ItemRegistry {
	return newRegistry(items, func(i *skill.Item) string { return i.ID })
}

// LoadItemRegistry loads and creates a registry from the embedded items.json.
func LoadItemRegistry() (*ItemRegistry, error) {
	items, err := LoadItems()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("no items loaded from items.json")
	}
	return NewItemRegistry(items), nil
}

// MustLoadItemRegistry loads a registry, panicking on error.
func MustLoadItemRegistry() *ItemRegistry {
	registry, err := LoadItemRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// =============================================================================
// Units
// =============================================================================

// UnitRegistry looks up unit templates by ID.
type UnitRegistry = Registry[UnitDef]

// NewUnitRegistry creates a registry from loaded unit templates.
func NewUnitRegistry(units []UnitDef) *UnitRegistry {
	defs := make([]*UnitDef, len(units))
	for i := range units {
		defs[i] = &units[i]
	}
	return newRegistry(defs, func(d *UnitDef) string { return d.ID })
}

// LoadUnitRegistry loads and creates a registry from the embedded units.json.
func LoadUnitRegistry() (*UnitRegistry, error) {
	units, err := LoadUnits()
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, errors.New("no units loaded from units.json")
	}
	return NewUnitRegistry(units), nil
}

// MustLoadUnitRegistry loads a registry, panicking on error.
func MustLoadUnitRegistry() *UnitRegistry {
	registry, err := LoadUnitRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}
