package sliding

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/puzzle-arcade/internal/core"
	"github.com/vovakirdan/puzzle-arcade/internal/games/hud"
)

const (
	tileW = 6
	tileH = 3
	hudH  = 2
)

// Render draws the tiles, HUD and overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}

	n := g.engine.Size()
	gridW, gridH := n*tileW, n*tileH
	if hud.TooSmall(dst, gridW+2, gridH+hudH+1) {
		return
	}

	dst.DrawTextCenteredColor(0, fmt.Sprintf("Sliding Puzzle %dx%d", n, n), core.ColorBrightBlue)
	dst.DrawTextCentered(1, fmt.Sprintf("Moves: %d  %s", g.engine.Moves(), hud.Clock(g.clock.Seconds())))

	originX := (dst.Width() - gridW) / 2
	originY := hudH + max(0, (dst.Height()-hudH-gridH)/2)

	for r := range n {
		for c := range n {
			p := core.Pos{Row: r, Col: c}
			x, y := originX+c*tileW, originY+r*tileH
			box := core.NewRect(x, y, tileW, tileH)

			tile := g.engine.Tile(p)
			selected := p == g.cursor && !g.engine.Solved()
			if tile == 0 {
				if selected {
					dst.DrawBoxColor(box, core.ColorGray)
				}
				continue
			}

			border := core.ColorBlue
			if selected {
				border = core.ColorBrightWhite
			}
			dst.DrawBoxColor(box, border)

			label := strconv.Itoa(tile)
			color := core.ColorWhite
			if tile == g.engine.index(p)+1 {
				color = core.ColorBrightGreen
			}
			dst.DrawTextColor(x+(tileW-len(label))/2, y+1, label, color)
		}
	}

	centerX, centerY := dst.Width()/2, originY+gridH/2
	switch {
	case g.paused:
		hud.Overlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.engine.Solved():
		lines := append([]string{
			"SOLVED!",
			fmt.Sprintf("Moves: %d  Time: %s", g.engine.Moves(), hud.Clock(g.clock.Seconds())),
		}, hud.Status("", g.finalScore)[1:]...)
		hud.OverlayColor(dst, centerX, centerY, core.ColorBrightGreen, lines...)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows: Move | Enter/Space: Slide tile | P: Pause | R: New game | B: Menu"
}
