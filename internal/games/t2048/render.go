package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/puzzle-arcade/internal/core"
	"github.com/vovakirdan/puzzle-arcade/internal/games/hud"
)

const (
	cellWidth  = 7 // Width of each cell (including the left border)
	cellHeight = 2 // Height of each cell (including the top border)

	boardW = BoardSize*cellWidth + 1
	boardH = BoardSize*cellHeight + 1
	hudH   = 3

	minW = boardW + 2
	minH = boardH + hudH + 2
)

// tileColor picks a colour per tile value.
func tileColor(v int) core.Color {
	switch {
	case v >= 2048:
		return core.ColorBrightYellow
	case v >= 1024:
		return core.ColorYellow
	case v >= 256:
		return core.ColorBrightMagenta
	case v >= 64:
		return core.ColorBrightRed
	case v >= 16:
		return core.ColorOrange
	case v >= 8:
		return core.ColorBrightCyan
	default:
		return core.ColorWhite
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil || hud.TooSmall(dst, minW, minH) {
		return
	}

	boardX := (dst.Width() - boardW) / 2
	boardY := hudH + (dst.Height()-hudH-boardH)/2

	g.renderHUD(dst, boardX)
	g.renderBoard(dst, boardX, boardY)
	g.renderOverlays(dst, boardX+boardW/2, boardY+boardH/2)
}

// renderHUD draws the score, best tile and clock.
func (g *Game) renderHUD(dst *core.Screen, boardX int) {
	dst.DrawTextCenteredColor(0, "2048", core.ColorBrightYellow)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.engine.Score()))

	info := fmt.Sprintf("Moves: %d  %s", g.engine.Moves(), hud.Clock(g.clock.Seconds()))
	infoX := max(boardX, boardX+boardW-len(info))
	dst.DrawText(infoX, 1, info)

	dst.DrawTextCentered(2, fmt.Sprintf("Max tile: %d", MaxTile(g.engine.Board())))
}

// renderBoard draws the 4x4 grid with tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	for y := range BoardSize + 1 {
		for x := range BoardSize + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == BoardSize:
				corner = '┐'
			case y == BoardSize && x == 0:
				corner = '└'
			case y == BoardSize && x == BoardSize:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == BoardSize:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == BoardSize:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.Set(px, py, corner)

			if x < BoardSize {
				for i := 1; i < cellWidth; i++ {
					dst.Set(px+i, py, '─')
				}
			}
			if y < BoardSize {
				for i := 1; i < cellHeight; i++ {
					dst.Set(px, py+i, '│')
				}
			}
		}
	}

	board := g.engine.Board()
	for y := range BoardSize {
		for x := range BoardSize {
			val := board[y][x]
			if val == 0 {
				continue
			}

			cellX := boardX + x*cellWidth + 1
			cellY := boardY + y*cellHeight + 1

			valStr := strconv.Itoa(val)
			padLeft := max(0, (cellWidth-1-len(valStr))/2)
			dst.DrawTextColor(cellX+padLeft, cellY, valStr, tileColor(val))
		}
	}
}

// renderOverlays draws pause, win and game over boxes.
func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	switch {
	case g.paused:
		hud.Overlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.engine.Over():
		lines := hud.Status("GAME OVER", g.finalScore)
		lines = append([]string{lines[0], fmt.Sprintf("Max tile: %d", MaxTile(g.engine.Board()))}, lines[1:]...)
		hud.OverlayColor(dst, centerX, centerY, core.ColorRed, lines...)
	case g.showWin:
		hud.OverlayColor(dst, centerX, centerY, core.ColorBrightYellow,
			fmt.Sprintf("%d reached!", g.engine.Target()),
			fmt.Sprintf("Score: %d", g.finalScore),
			"Enter: keep playing")
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | P: Pause | R: New game | B: Menu | Q: Quit"
}
