package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/ajmoran/hexfray/internal/entity"
	"github.com/ajmoran/hexfray/internal/gamedata"
	"github.com/ajmoran/hexfray/internal/hexmap"
)

// Frame is one complete picture of the battle. The game layer fills
// it every frame; the renderer owns nothing but the projection.
type Frame struct {
	Grid    *hexmap.Grid
	Actors  []*entity.Actor
	Path    []hexmap.Axial
	Cursor  hexmap.Axial
	Goal    hexmap.Axial
	Round   int
	Mode    string
	Phase   string
	HP      int
	MaxHP   int
	Message string
	Banner  string
}

// Renderer handles drawing the game to the screen. Axial coordinates
// project to a staggered layout: every row shifts one column right, so
// the six hex neighbors stay visually adjacent.
type Renderer struct {
	screen  *Screen
	originX int
	originY int
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws one frame: terrain, goal, path overlay, actors, cursor
// and the status rows.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()

	width, height := r.screen.Size()
	r.originX = width / 2
	r.originY = (height - 2) / 2

	f.Grid.Each(func(c *hexmap.Cell) {
		x, y := r.project(c.Coord)
		r.screen.SetContent(x, y, c.Terrain.Rune(), r.terrainStyle(c.Terrain))
	})

	if f.Grid.Contains(f.Goal) {
		x, y := r.project(f.Goal)
		r.screen.SetContent(x, y, '⚑', tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true))
	}

	pathStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	for _, c := range f.Path {
		x, y := r.project(c)
		r.screen.SetContent(x, y, '·', pathStyle)
	}

	for _, a := range f.Actors {
		x, y := r.project(a.Pos)
		r.screen.SetContent(x, y, a.Glyph, r.actorStyle(a))
	}

	r.drawCursor(f)
	r.drawStatus(f, height)

	if f.Banner != "" {
		r.drawBanner(f.Banner, width)
	}

	r.screen.Show()
}

// CellAt maps a screen position back to the axial cell under it. The
// mapping is only meaningful after the first Render. Callers still
// check the cell against the grid.
func (r *Renderer) CellAt(x, y int) hexmap.Axial {
	rr := y - r.originY
	return hexmap.Axial{Q: floorDiv(x-r.originX-rr, 2), R: rr}
}

// project converts an axial coordinate to a screen position.
func (r *Renderer) project(c hexmap.Axial) (int, int) {
	return r.originX + 2*c.Q + c.R, r.originY + c.R
}

func (r *Renderer) terrainStyle(t hexmap.Terrain) tcell.Style {
	switch t {
	case hexmap.TerrainWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case hexmap.TerrainForest:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	case hexmap.TerrainPlain:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	default:
		return tcell.StyleDefault
	}
}

func (r *Renderer) actorStyle(a *entity.Actor) tcell.Style {
	color, err := gamedata.ParseHexColor(a.Color)
	if err != nil {
		color = tcell.ColorWhite
	}
	style := tcell.StyleDefault.Foreground(color)
	if a.Kind == entity.KindPlayer {
		style = style.Bold(true)
	}
	return style
}

// drawCursor redraws whatever sits under the cursor in reverse video.
func (r *Renderer) drawCursor(f Frame) {
	cell := f.Grid.Cell(f.Cursor)
	if cell == nil {
		return
	}

	glyph := cell.Terrain.Rune()
	style := r.terrainStyle(cell.Terrain)
	for _, a := range f.Actors {
		if a.Pos == f.Cursor {
			glyph = a.Glyph
			style = r.actorStyle(a)
			break
		}
	}

	x, y := r.project(f.Cursor)
	r.screen.SetContent(x, y, glyph, style.Reverse(true))
}

// drawStatus fills the two bottom rows: HP bar plus round state, then
// the transient message line.
func (r *Renderer) drawStatus(f Frame, height int) {
	row := height - 2
	x := r.drawText(0, row, "HP ", tcell.StyleDefault.Foreground(tcell.ColorWhite))
	x = r.drawBar(x, row, f.HP, f.MaxHP)
	x = r.drawText(x, row, fmt.Sprintf(" %d/%d", f.HP, f.MaxHP), tcell.StyleDefault.Foreground(tcell.ColorWhite))
	status := fmt.Sprintf("  round %d · %s · %s", f.Round, f.Mode, f.Phase)
	r.drawText(x, row, status, tcell.StyleDefault.Foreground(tcell.ColorTeal))

	if f.Message != "" {
		r.drawText(0, height-1, f.Message, tcell.StyleDefault.Foreground(tcell.ColorWhite).Italic(true))
	}
}

// drawBar renders a ten-segment HP gauge and returns the x after it.
func (r *Renderer) drawBar(x, y, cur, max int) int {
	const segments = 10
	filled := 0
	if max > 0 {
		filled = cur * segments / max
		if cur > 0 && filled == 0 {
			filled = 1
		}
	}

	color := tcell.ColorGreen
	switch {
	case cur*4 <= max:
		color = tcell.ColorRed
	case cur*2 <= max:
		color = tcell.ColorYellow
	}

	for i := 0; i < segments; i++ {
		glyph := '░'
		style := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
		if i < filled {
			glyph = '█'
			style = tcell.StyleDefault.Foreground(color)
		}
		r.screen.SetContent(x+i, y, glyph, style)
	}
	return x + segments
}

// drawBanner centers the end-of-battle banner over the map.
func (r *Renderer) drawBanner(banner string, width int) {
	text := " " + banner + " "
	style := tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true).Reverse(true)
	r.drawText((width-len(text))/2, r.originY, text, style)
}

// drawText writes msg starting at x,y and returns the x after it.
func (r *Renderer) drawText(x, y int, msg string, style tcell.Style) int {
	for i, ch := range []rune(msg) {
		r.screen.SetContent(x+i, y, ch, style)
	}
	return x + len([]rune(msg))
}

// floorDiv divides toward negative infinity, which the cell inverse
// needs for coordinates left of the origin.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
