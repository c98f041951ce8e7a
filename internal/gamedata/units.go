package gamedata

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/battlecore/internal/battlelog"
	"github.com/samdwyer/battlecore/internal/unit"
	"github.com/samdwyer/battlecore/internal/world"
)

// UnitDef defines a unit template loaded from JSON.
type UnitDef struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Role       unit.Role `json:"role"`
	Glyph      string    `json:"glyph"`
	Color      string    `json:"color"`
	Life       int       `json:"life"`
	Stamina    int       `json:"stamina"`
	Attack     int       `json:"attack"`
	Defense    int       `json:"defense"`
	Speed      int       `json:"speed"`
	Skills     []string  `json:"skills"`
	StartItems []string  `json:"startItems,omitempty"`
}

// Stats returns the template's base stats.
func (d *UnitDef) Stats() unit.Stats {
	return unit.Stats{
		Life:    d.Life,
		Stamina: d.Stamina,
		Attack:  d.Attack,
		Defense: d.Defense,
		Speed:   d.Speed,
	}
}

// GlyphRune returns the first rune of the glyph string, or the role symbol.
func (d *UnitDef) GlyphRune() rune {
	for _, r := range d.Glyph {
		return r
	}
	return d.Role.Symbol()
}

// TCellColor returns the template color, falling back to the role color.
func (d *UnitDef) TCellColor() tcell.Color {
	if d.Color == "" {
		return RoleColor(d.Role)
	}
	color, err := ParseHexColor(d.Color)
	if err != nil {
		return RoleColor(d.Role)
	}
	return color
}

// Spawn creates a unit from the template. The unit carries the template's
// skill IDs and is not yet placed on a field.
func (d *UnitDef) Spawn(id, name string, side world.Side, log *battlelog.Log) *unit.Unit {
	if name == "" {
		name = d.Name
	}
	u := unit.New(id, name, side, d.Role, d.Stats(), log)
	skills := make([]string, len(d.Skills))
	copy(skills, d.Skills)
	u.SetSkills(skills)
	return u
}

// UnitsFile represents the structure of units.json.
type UnitsFile struct {
	Units []UnitDef `json:"units"`
}

// LoadUnits loads unit templates from the embedded units.json file.
func LoadUnits() ([]UnitDef, error) {
	file, err := Load[UnitsFile]("units.json")
	if err != nil {
		return nil, err
	}
	return file.Units, nil
}
