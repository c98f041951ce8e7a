package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/battlecore/internal/battlelog"
	"github.com/samdwyer/battlecore/internal/gamedata"
	"github.com/samdwyer/battlecore/internal/preview"
	"github.com/samdwyer/battlecore/internal/world"
)

// Slot layout in terminal cells.
const (
	SlotWidth  = 14
	SlotHeight = 3
	SideGap    = 4
	GridTop    = 2
	GridLeft   = 1
)

// Appearance is how a unit is drawn: its template glyph and color.
type Appearance struct {
	Glyph rune
	Color tcell.Color
}

// Renderer draws preview projections and the battle log.
type Renderer struct {
	screen     *Screen
	columns    int
	rows       int
	log        *battlelog.Log
	appearance map[string]Appearance
}

// NewRenderer creates a renderer for a field of the given size. log may be
// nil, in which case no log lines are drawn.
func NewRenderer(screen *Screen, columns, rows int, log *battlelog.Log) *Renderer {
	return &Renderer{
		screen:     screen,
		columns:    columns,
		rows:       rows,
		log:        log,
		appearance: make(map[string]Appearance),
	}
}

// SetAppearance sets the glyph and color a unit is drawn with. Units without
// one are drawn with their role symbol and role color.
func (r *Renderer) SetAppearance(unitID string, a Appearance) {
	r.appearance[unitID] = a
}

// RenderProjection implements preview.Renderer.
func (r *Renderer) RenderProjection(p preview.Projection) {
	r.screen.Clear()

	r.drawText(GridLeft, 0, fmt.Sprintf("Turn %d", p.Turn), tcell.StyleDefault.Bold(true))

	for row := 0; row < r.rows; row++ {
		for col := 0; col < r.columns; col++ {
			r.drawSlotFrame(world.Position{Col: col, Row: row})
		}
	}
	for _, v := range p.Views {
		if v.Dead || !v.Position.IsValid() {
			continue
		}
		r.drawUnit(v)
	}

	r.drawLog(GridTop + r.rows*SlotHeight + 1)
	r.screen.Show()
}

// SlotOrigin returns the top-left cell of a slot.
func (r *Renderer) SlotOrigin(p world.Position) (x, y int) {
	x = GridLeft + p.Col*SlotWidth
	if p.Col >= r.columns/2 {
		x += SideGap
	}
	y = GridTop + p.Row*SlotHeight
	return x, y
}

func (r *Renderer) sideOf(col int) world.Side {
	if col < r.columns/2 {
		return world.SideLeft
	}
	return world.SideRight
}

func (r *Renderer) drawSlotFrame(p world.Position) {
	x, y := r.SlotOrigin(p)
	style := tcell.StyleDefault.Foreground(gamedata.SideColor(r.sideOf(p.Col)))
	for dy := 0; dy < SlotHeight-1; dy++ {
		r.screen.SetContent(x, y+dy, '[', style)
		r.screen.SetContent(x+SlotWidth-2, y+dy, ']', style)
	}
}

// drawUnit fills a slot: glyph and name on the first line, role symbol, life
// and stamina on the second. Previewed values are underlined.
func (r *Renderer) drawUnit(v preview.View) {
	x, y := r.SlotOrigin(v.Position)
	inner := SlotWidth - 4

	look, ok := r.appearance[v.UnitID]
	if !ok {
		look = Appearance{Glyph: v.Role.Symbol(), Color: gamedata.RoleColor(v.Role)}
	}
	r.screen.SetContent(x+1, y, look.Glyph, tcell.StyleDefault.Foreground(look.Color).Bold(true))
	r.drawText(x+3, y, truncate(v.Name, inner-1), tcell.StyleDefault)

	statStyle := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	roleStyle := tcell.StyleDefault.Foreground(gamedata.RoleColor(v.Role))
	if v.Previewed {
		statStyle = statStyle.Underline(true)
		roleStyle = roleStyle.Underline(true)
	}
	r.screen.SetContent(x+1, y+1, v.Role.Symbol(), roleStyle)
	stats := fmt.Sprintf("L%-3d S%-3d", v.Life, v.Stamina)
	r.drawText(x+3, y+1, truncate(stats, inner-1), statStyle)
}

func (r *Renderer) drawLog(top int) {
	if r.log == nil {
		return
	}
	_, height := r.screen.Size()
	lines := height - top
	if lines <= 0 {
		return
	}
	messages := r.log.Messages()
	if len(messages) > lines {
		messages = messages[len(messages)-lines:]
	}
	for i, msg := range messages {
		r.RenderMessage(msg, top+i)
	}
}

// RenderMessage displays a message on the given line.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.drawText(0, y, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

func (r *Renderer) drawText(x, y int, s string, style tcell.Style) {
	i := 0
	for _, ch := range s {
		r.screen.SetContent(x+i, y, ch, style)
		i++
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

var _ preview.Renderer = (*Renderer)(nil)
