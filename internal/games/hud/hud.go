// Package hud holds the drawing helpers shared by the puzzle games:
// result overlays, the "window too small" notice and the status line.
package hud

import (
	"fmt"
	"time"

	"github.com/vovakirdan/puzzle-arcade/internal/core"
)

// Clock formats whole seconds as MM:SS.
func Clock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Ticks converts a delay to the nearest tick count at the given rate.
// Positive delays last at least one tick.
func Ticks(d time.Duration, tickRate int) int {
	if d <= 0 {
		return 0
	}
	step := core.TickDuration(tickRate)
	return max(1, int((d+step/2)/step))
}

// Overlay draws a boxed, centered block of lines, clearing what is behind it.
func Overlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	OverlayColor(dst, centerX, centerY, core.ColorDefault, lines...)
}

// OverlayColor is Overlay with a coloured border.
func OverlayColor(dst *core.Screen, centerX, centerY int, c core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBoxColor(box, c)

	for i, line := range lines {
		x := centerX - len([]rune(line))/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}

// TooSmall shows the resize notice and reports whether the screen is below
// the minimum size.
func TooSmall(dst *core.Screen, minW, minH int) bool {
	if dst.Width() >= minW && dst.Height() >= minH {
		return false
	}
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minW, minH))
	return true
}

// Status returns the result-screen lines for a finished game.
// A zero score is omitted, for endings that are not scored.
func Status(title string, score int) []string {
	lines := []string{title}
	if score > 0 {
		lines = append(lines, fmt.Sprintf("Score: %d", score))
	}
	return append(lines, "R: new game  B: menu")
}
