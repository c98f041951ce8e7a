package world

import (
	"errors"
	"fmt"
)

const (
	// Default battlefield dimensions. Each side gets half of the columns.
	DefaultColumns = 6
	DefaultRows    = 3
)

var (
	// ErrOutOfBounds is returned when a slot lies outside the field.
	ErrOutOfBounds = errors.New("slot out of bounds")
	// ErrOccupied is returned when placing into a slot that already holds a unit.
	ErrOccupied = errors.New("slot occupied")
)

// Field tracks which unit occupies each slot.
// Slots hold unit IDs; an empty string means the slot is free.
type Field struct {
	Columns int
	Rows    int
	Slots   [][]string
	areas   [2]Area
}

// NewField creates an empty field. The left side owns the first half of the
// columns and the right side owns the rest.
func NewField(columns, rows int) *Field {
	if columns < 2 {
		columns = 2
	}
	if rows < 1 {
		rows = 1
	}
	slots := make([][]string, rows)
	for y := range slots {
		slots[y] = make([]string, columns)
	}
	half := columns / 2
	return &Field{
		Columns: columns,
		Rows:    rows,
		Slots:   slots,
		areas: [2]Area{
			SideLeft:  {X: 0, Y: 0, Width: half, Height: rows},
			SideRight: {X: half, Y: 0, Width: columns - half, Height: rows},
		},
	}
}

// InBounds returns true if the slot lies on the field.
func (f *Field) InBounds(p Position) bool {
	return p.Col >= 0 && p.Col < f.Columns && p.Row >= 0 && p.Row < f.Rows
}

// Area returns the slot block owned by a side.
func (f *Field) Area(s Side) Area {
	return f.areas[s]
}

// SideOf returns the side owning a slot. The second result is false for
// out-of-bounds slots.
func (f *Field) SideOf(p Position) (Side, bool) {
	for _, s := range []Side{SideLeft, SideRight} {
		if f.areas[s].Contains(p) {
			return s, true
		}
	}
	return SideLeft, false
}

// FrontColumn returns the column closest to the opposing side.
func (f *Field) FrontColumn(s Side) int {
	a := f.areas[s]
	if s == SideLeft {
		return a.X + a.Width - 1
	}
	return a.X
}

// At returns the unit ID in a slot, or "" if empty or out of bounds.
func (f *Field) At(p Position) string {
	if !f.InBounds(p) {
		return ""
	}
	return f.Slots[p.Row][p.Col]
}

// IsFree returns true if the slot is on the field and unoccupied.
func (f *Field) IsFree(p Position) bool {
	return f.InBounds(p) && f.Slots[p.Row][p.Col] == ""
}

// Place puts a unit ID into a free slot.
func (f *Field) Place(id string, p Position) error {
	if !f.InBounds(p) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	if f.Slots[p.Row][p.Col] != "" {
		return fmt.Errorf("%w: %s holds %s", ErrOccupied, p, f.Slots[p.Row][p.Col])
	}
	f.Slots[p.Row][p.Col] = id
	return nil
}

// Clear frees a slot.
func (f *Field) Clear(p Position) {
	if f.InBounds(p) {
		f.Slots[p.Row][p.Col] = ""
	}
}

// Swap exchanges the contents of two slots. Either slot may be empty.
func (f *Field) Swap(a, b Position) error {
	if !f.InBounds(a) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, a)
	}
	if !f.InBounds(b) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, b)
	}
	f.Slots[a.Row][a.Col], f.Slots[b.Row][b.Col] = f.Slots[b.Row][b.Col], f.Slots[a.Row][a.Col]
	return nil
}

// Row returns the occupied slots of one side on a row, ordered front to back.
func (f *Field) Row(s Side, row int) []Position {
	if row < 0 || row >= f.Rows {
		return nil
	}
	a := f.areas[s]
	out := make([]Position, 0, a.Width)
	front := f.FrontColumn(s)
	for i := 0; i < a.Width; i++ {
		col := front - i
		if s == SideRight {
			col = front + i
		}
		p := Position{Col: col, Row: row}
		if f.At(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
