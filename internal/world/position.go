// Package world provides the battlefield slot grid.
package world

import "fmt"

// Position is a slot on the battlefield grid.
type Position struct {
	Col, Row int
}

// NoPosition is the sentinel for "no resolved slot".
var NoPosition = Position{Col: -1, Row: -1}

// IsValid returns true if the position is not the NoPosition sentinel
// and has non-negative coordinates.
func (p Position) IsValid() bool {
	return p.Col >= 0 && p.Row >= 0
}

// Distance returns the Manhattan distance between two slots.
// Distance involving NoPosition is -1.
func (p Position) Distance(o Position) int {
	if !p.IsValid() || !o.IsValid() {
		return -1
	}
	return abs(p.Col-o.Col) + abs(p.Row-o.Row)
}

// String returns a compact "(col,row)" form, or "none" for NoPosition.
func (p Position) String() string {
	if !p.IsValid() {
		return "none"
	}
	return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Side identifies which half of the battlefield a unit fights for.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// Opponent returns the opposing side.
func (s Side) Opponent() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}
