package minesweeper

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/puzzle-arcade/internal/core"
	"github.com/vovakirdan/puzzle-arcade/internal/games/hud"
)

const (
	cellW = 3
	hudH  = 2
)

var numberColors = [...]core.Color{
	1: core.ColorBrightBlue,
	2: core.ColorGreen,
	3: core.ColorBrightRed,
	4: core.ColorMagenta,
	5: core.ColorYellow,
	6: core.ColorCyan,
	7: core.ColorWhite,
	8: core.ColorGray,
}

// glyph returns the character and colour for a cell.
func glyph(c Cell) (rune, core.Color) {
	switch {
	case c.Revealed && c.Mine:
		return '*', core.ColorBrightRed
	case c.Revealed && c.Adjacent == 0:
		return ' ', core.ColorDefault
	case c.Revealed:
		return rune('0' + c.Adjacent), numberColors[c.Adjacent]
	case c.Mark == MarkFlag:
		return 'F', core.ColorRed
	case c.Mark == MarkQuestion:
		return '?', core.ColorYellow
	default:
		return '·', core.ColorGray
	}
}

// Render draws the board, the HUD and the result overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}

	boardW := g.engine.Cols()*cellW + 2
	boardH := g.engine.Rows() + 2
	if hud.TooSmall(dst, boardW, boardH+hudH) {
		return
	}

	boardX := (dst.Width() - boardW) / 2
	boardY := hudH + max(0, (dst.Height()-hudH-boardH)/2)

	g.renderHUD(dst, boardX, boardW)

	dst.DrawBox(core.NewRect(boardX, boardY, boardW, boardH))
	for r := range g.engine.Rows() {
		for c := range g.engine.Cols() {
			p := core.Pos{Row: r, Col: c}
			ch, color := glyph(g.engine.Cell(p))
			x := boardX + 1 + c*cellW
			y := boardY + 1 + r
			dst.SetColor(x+1, y, ch, color)
			if p == g.cursor && !g.engine.Over() {
				dst.SetColor(x, y, '[', core.ColorBrightWhite)
				dst.SetColor(x+2, y, ']', core.ColorBrightWhite)
			}
		}
	}

	centerX, centerY := boardX+boardW/2, boardY+boardH/2
	switch {
	case g.paused:
		hud.Overlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.showResult && g.engine.Won():
		hud.OverlayColor(dst, centerX, centerY, core.ColorBrightGreen,
			append([]string{"YOU WIN!", "Time: " + hud.Clock(g.clock.Seconds())}, hud.Status("", g.finalScore)[1:]...)...)
	case g.showResult:
		hud.OverlayColor(dst, centerX, centerY, core.ColorRed, hud.Status("BOOM! Game over", 0)...)
	}
}

func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	dst.DrawTextCenteredColor(0, fmt.Sprintf("Minesweeper (%s)", g.engine.Difficulty()), core.ColorBrightCyan)

	dst.DrawText(boardX, 1, "Mines: "+strconv.Itoa(g.engine.MinesRemaining()))
	clock := hud.Clock(g.clock.Seconds())
	dst.DrawText(max(boardX, boardX+boardW-len(clock)), 1, clock)
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows: Move | Enter/Space: Reveal | F: Flag | P: Pause | R: New game | B: Menu"
}
