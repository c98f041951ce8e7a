package buff

import "fmt"

// Definition is the authoring-time template of a buff.
type Definition struct {
	Name      string  `json:"name,omitempty"` // Display name (optional)
	Kind      Kind    `json:"kind"`
	Magnitude float64 `json:"magnitude"` // Percent kinds read 0.2 as 20%
	Duration  int     `json:"duration"`  // Whole turns; 0 = instantaneous
}

// Label returns the display name, falling back to the kind name.
func (d Definition) Label() string {
	if d.Name != "" {
		return d.Name
	}
	return d.Kind.String()
}

// describe renders the magnitude the way the battle log shows it.
func (d Definition) describe() string {
	if d.Kind.IsPercent() {
		return fmt.Sprintf("%s %+.0f%%", d.Label(), d.Magnitude*100)
	}
	return fmt.Sprintf("%s %g", d.Label(), d.Magnitude)
}

// Source is the read-only view of whoever caused a buff.
type Source interface {
	Name() string
}

// Instance is one application of a Definition to a unit.
type Instance struct {
	Def       Definition
	Remaining int    // Turns left; expired at 0
	Source    Source // Attribution; may be nil
}

// NewInstance wraps a definition with a fresh remaining counter.
func NewInstance(def Definition, source Source) *Instance {
	return &Instance{
		Def:       def,
		Remaining: def.Duration,
		Source:    source,
	}
}

// Tick decrements the remaining duration, floored at zero.
func (i *Instance) Tick() {
	if i.Remaining > 0 {
		i.Remaining--
	}
}

// Expired returns true once the remaining duration has run out.
func (i *Instance) Expired() bool {
	return i.Remaining <= 0
}

// SourceName returns the attributed source name, or "unknown".
func (i *Instance) SourceName() string {
	return sourceName(i.Source)
}

func sourceName(s Source) string {
	if s == nil {
		return "unknown"
	}
	return s.Name()
}
