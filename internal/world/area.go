package world

// Area represents a rectangular block of slots owned by one side.
type Area struct {
	X, Y          int // Top-left slot
	Width, Height int // Dimensions in slots
}

// Contains returns true if the given slot is inside the area.
func (a Area) Contains(p Position) bool {
	return p.Col >= a.X && p.Col < a.X+a.Width && p.Row >= a.Y && p.Row < a.Y+a.Height
}

