package preview

import (
	"github.com/samdwyer/battlecore/internal/battlelog"
	"github.com/samdwyer/battlecore/internal/unit"
)

// Renderer receives every new projection. The terminal UI implements it.
type Renderer interface {
	RenderProjection(p Projection)
}

// Simulator keeps the current preview projection of the battlefield.
// Operations never fail into the caller; missing inputs are logged and ignored.
type Simulator struct {
	units    UnitSource
	source   SnapshotSource
	log      *battlelog.Log
	renderer Renderer
	current  Projection
}

// NewSimulator creates a simulator. source may be nil, in which case the
// temporary preview operations do nothing.
func NewSimulator(units UnitSource, source SnapshotSource, log *battlelog.Log) *Simulator {
	return &Simulator{
		units:  units,
		source: source,
		log:    log,
	}
}

// SetRenderer attaches a renderer that receives each new projection.
func (s *Simulator) SetRenderer(r Renderer) {
	s.renderer = r
}

// Projection returns the current projection.
func (s *Simulator) Projection() Projection {
	return s.current
}

// ShowStateFromSnapshot resets every unit to its core state and lays the
// snapshot over it. A nil snapshot is logged and ignored.
func (s *Simulator) ShowStateFromSnapshot(snap *Snapshot) {
	if snap == nil {
		s.log.Debugf("preview skipped: no snapshot")
		return
	}
	s.render(snap, nil)
}

// ShowTemporaryStaminaPreview re-renders the latest snapshot and previews u
// with cost subtracted from its stamina. No-op until a snapshot exists.
func (s *Simulator) ShowTemporaryStaminaPreview(u unit.ReadOnly, cost int) {
	snap, ok := s.latest()
	if !ok {
		return
	}
	if u == nil {
		s.log.Debugf("stamina preview skipped: no unit")
		s.render(&snap, nil)
		return
	}
	s.render(&snap, &Overlay{UnitID: u.ID(), StaminaCost: cost})
}

// ClearTemporaryPreviews re-renders the latest snapshot without overlays.
func (s *Simulator) ClearTemporaryPreviews() {
	snap, ok := s.latest()
	if !ok {
		return
	}
	s.render(&snap, nil)
}

func (s *Simulator) latest() (Snapshot, bool) {
	if s.source == nil {
		s.log.Debugf("preview skipped: no snapshot source")
		return Snapshot{}, false
	}
	return s.source.LatestSnapshot()
}

func (s *Simulator) render(snap *Snapshot, overlay *Overlay) {
	var units []unit.ReadOnly
	if s.units != nil {
		units = s.units.LiveUnits()
	}
	s.current = Project(units, snap, overlay)
	if s.renderer != nil {
		s.renderer.RenderProjection(s.current)
	}
}
