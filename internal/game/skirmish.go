package game

import (
	"fmt"
	"slices"

	"github.com/samdwyer/battlecore/internal/battle"
	"github.com/samdwyer/battlecore/internal/battlelog"
	"github.com/samdwyer/battlecore/internal/gamedata"
	"github.com/samdwyer/battlecore/internal/world"
)

// Slot places one unit template in a formation.
type Slot struct {
	Template string // Unit template ID from units.json
	Name     string // Display name; empty uses the template name
	Row      int
	Rank     int // 0 = front column, counting back toward the side's edge
}

// Lineup is the starting formation of both sides.
type Lineup struct {
	Left  []Slot
	Right []Slot
}

// DefaultLineup returns the demo formation: a commander, a vanguard, a
// striker and a support unit per side.
func DefaultLineup() Lineup {
	return Lineup{
		Left: []Slot{
			{Template: "warlord", Name: "Aldric", Row: 1, Rank: 1},
			{Template: "knight", Name: "Bera", Row: 1, Rank: 0},
			{Template: "ranger", Name: "Corin", Row: 0, Rank: 0},
			{Template: "cleric", Name: "Dela", Row: 2, Rank: 1},
		},
		Right: []Slot{
			{Template: "warlord", Name: "Morvane", Row: 1, Rank: 1},
			{Template: "knight", Name: "Nyx", Row: 1, Rank: 0},
			{Template: "mage", Name: "Oren", Row: 0, Rank: 1},
			{Template: "cleric", Name: "Pell", Row: 2, Rank: 1},
		},
	}
}

// Deployment is what Deploy hands back besides the units on the field.
type Deployment struct {
	Inventory Inventory
	Templates map[string]*gamedata.UnitDef // By unit ID
}

// Inventory maps unit IDs to the item IDs they still carry.
type Inventory map[string][]string

// Take removes one item from a unit's inventory and reports whether it was there.
func (inv Inventory) Take(unitID, itemID string) bool {
	items := inv[unitID]
	i := slices.Index(items, itemID)
	if i < 0 {
		return false
	}
	inv[unitID] = slices.Delete(items, i, i+1)
	return true
}

// Deploy spawns every slot of the lineup into the battle and returns the
// units' starting items and templates. Unit IDs are "<side>-<index>".
func Deploy(b *battle.Battle, units *gamedata.UnitRegistry, lineup Lineup, log *battlelog.Log) (Deployment, error) {
	dep := Deployment{
		Inventory: make(Inventory),
		Templates: make(map[string]*gamedata.UnitDef),
	}
	sides := []struct {
		side  world.Side
		slots []Slot
	}{
		{world.SideLeft, lineup.Left},
		{world.SideRight, lineup.Right},
	}

	for _, s := range sides {
		for i, slot := range s.slots {
			def := units.GetByID(slot.Template)
			if def == nil {
				return Deployment{}, fmt.Errorf("deploy %s slot %d: unknown unit template %q", s.side, i, slot.Template)
			}
			id := fmt.Sprintf("%s-%d", s.side, i)
			u := def.Spawn(id, slot.Name, s.side, log)
			if err := b.AddUnit(u, slotPosition(b.Field(), s.side, slot)); err != nil {
				return Deployment{}, fmt.Errorf("deploy %s: %w", id, err)
			}
			dep.Templates[id] = def
			if len(def.StartItems) > 0 {
				dep.Inventory[id] = slices.Clone(def.StartItems)
			}
		}
	}
	return dep, nil
}

func slotPosition(f *world.Field, side world.Side, slot Slot) world.Position {
	col := f.FrontColumn(side) - slot.Rank
	if side == world.SideRight {
		col = f.FrontColumn(side) + slot.Rank
	}
	return world.Position{Col: col, Row: slot.Row}
}
