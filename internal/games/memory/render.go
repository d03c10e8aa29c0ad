package memory

import (
	"fmt"

	"github.com/vovakirdan/puzzle-arcade/internal/core"
	"github.com/vovakirdan/puzzle-arcade/internal/games/hud"
)

const (
	cardW = 5
	cardH = 3
	gapX  = 1
	hudH  = 2
)

var symbolColors = [...]core.Color{
	core.ColorBrightRed, core.ColorBrightGreen, core.ColorBrightYellow,
	core.ColorBrightBlue, core.ColorBrightMagenta, core.ColorBrightCyan,
	core.ColorOrange, core.ColorRed, core.ColorGreen, core.ColorYellow,
	core.ColorBlue, core.ColorMagenta,
}

func (g *Game) symbol(i int) string {
	s := g.engine.Card(i).Symbol
	if s < len(g.rules.Symbols) {
		return g.rules.Symbols[s]
	}
	return fmt.Sprint(s)
}

// Render draws the cards, HUD and overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}

	rows := (g.engine.Len() + g.cols - 1) / g.cols
	gridW := g.cols*(cardW+gapX) - gapX
	gridH := rows * cardH
	if hud.TooSmall(dst, gridW+2, gridH+hudH+1) {
		return
	}

	dst.DrawTextCenteredColor(0, fmt.Sprintf("Memory Match (%s)", g.engine.Difficulty()), core.ColorBrightMagenta)
	dst.DrawTextCentered(1, fmt.Sprintf("Pairs: %d/%d  Moves: %d  %s",
		g.engine.MatchedPairs(), g.engine.Pairs(), g.engine.Moves(), hud.Clock(g.clock.Seconds())))

	originX := (dst.Width() - gridW) / 2
	originY := hudH + max(0, (dst.Height()-hudH-gridH)/2)

	for i := range g.engine.Len() {
		card := g.engine.Card(i)
		x := originX + (i%g.cols)*(cardW+gapX)
		y := originY + (i/g.cols)*cardH
		box := core.NewRect(x, y, cardW, cardH)

		border := core.ColorGray
		switch {
		case i == g.cursor && !g.engine.Won():
			border = core.ColorBrightWhite
		case card.Matched:
			border = core.ColorGreen
		}
		dst.DrawBoxColor(box, border)

		face := "░"
		color := core.ColorGray
		if card.FaceUp || card.Matched {
			face = g.symbol(i)
			color = symbolColors[card.Symbol%len(symbolColors)]
		}
		dst.DrawTextColor(x+cardW/2, y+1, face, color)
	}

	centerX, centerY := dst.Width()/2, originY+gridH/2
	switch {
	case g.paused:
		hud.Overlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.engine.Won():
		lines := append([]string{
			"ALL PAIRS FOUND!",
			fmt.Sprintf("Moves: %d  Time: %s", g.engine.Moves(), hud.Clock(g.clock.Seconds())),
		}, hud.Status("", g.finalScore)[1:]...)
		hud.OverlayColor(dst, centerX, centerY, core.ColorBrightGreen, lines...)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows: Move | Enter/Space: Flip | P: Pause | R: New game | B: Menu"
}
