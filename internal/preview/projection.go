package preview

import (
	"github.com/samdwyer/battlecore/internal/unit"
	"github.com/samdwyer/battlecore/internal/world"
)

// View is the render-only state of one unit.
type View struct {
	UnitID    string
	Name      string
	Side      world.Side
	Position  world.Position
	Stamina   int
	Role      unit.Role
	Life      int
	Dead      bool
	Previewed bool // true when a snapshot or overlay changes what the unit shows
}

// Projection is the render-only state of the whole battlefield.
type Projection struct {
	Turn  int
	Views []View
}

// View returns the view of a unit.
func (p Projection) View(unitID string) (View, bool) {
	for _, v := range p.Views {
		if v.UnitID == unitID {
			return v, true
		}
	}
	return View{}, false
}

// Overlay previews the stamina cost of a pending action on one unit.
type Overlay struct {
	UnitID      string
	StaminaCost int
}

// Project builds a projection. Every unit starts from its core state, then
// matching snapshot entries are laid over it, then the optional overlay.
// Units are never modified.
func Project(units []unit.ReadOnly, snap *Snapshot, overlay *Overlay) Projection {
	p := Projection{Views: make([]View, 0, len(units))}
	if snap != nil {
		p.Turn = snap.Turn
	}

	for _, u := range units {
		if u == nil {
			continue
		}
		v := View{
			UnitID:   u.ID(),
			Name:     u.Name(),
			Side:     u.Side(),
			Position: u.Position(),
			Stamina:  u.Stamina(),
			Role:     u.Role(),
			Life:     u.Life(),
			Dead:     u.IsDead(),
		}
		if snap != nil {
			if e, ok := snap.Find(v.UnitID); ok {
				v.Previewed = e.Position != v.Position || e.Stamina != v.Stamina || e.Role != v.Role
				v.Position = e.Position
				v.Stamina = e.Stamina
				v.Role = e.Role
			}
		}
		if overlay != nil && overlay.UnitID == v.UnitID && overlay.StaminaCost != 0 {
			v.Stamina -= overlay.StaminaCost
			v.Previewed = true
		}
		p.Views = append(p.Views, v)
	}
	return p
}
