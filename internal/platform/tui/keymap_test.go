package tui

import (
	"testing"

	"github.com/vovakirdan/puzzle-arcade/internal/core"
)

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		want   core.Action
		isQuit bool
	}{
		{"w", core.ActionUp, false},
		{"k", core.ActionUp, false},
		{"up", core.ActionUp, false},
		{"j", core.ActionDown, false},
		{"h", core.ActionLeft, false},
		{"d", core.ActionRight, false},
		{"enter", core.ActionConfirm, false},
		{" ", core.ActionConfirm, false},
		{"f", core.ActionFlag, false},
		{"esc", core.ActionBack, false},
		{"r", core.ActionRestart, false},
		{"p", core.ActionPause, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, quit := km.MapKey(keyMsg(tt.key))
			if got != tt.want || quit != tt.isQuit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.key, got, quit, tt.want, tt.isQuit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()

	frame := core.NewInputFrame()
	if got := km.MapKeyToFrame(keyMsg("f"), &frame); got != core.ActionFlag {
		t.Errorf("MapKeyToFrame(f) = %v, want Flag", got)
	}
	if !frame.Has(core.ActionFlag) {
		t.Error("frame should carry Flag")
	}

	// Platform actions stay out of the frame.
	for _, k := range []string{"b", "r", "q"} {
		frame := core.NewInputFrame()
		km.MapKeyToFrame(keyMsg(k), &frame)
		for _, a := range []core.Action{core.ActionBack, core.ActionRestart, core.ActionQuit} {
			if frame.Has(a) {
				t.Errorf("key %q put %v into the frame", k, a)
			}
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := map[string]MenuAction{
		"up":    MenuActionUp,
		"j":     MenuActionDown,
		"enter": MenuActionSelect,
		"b":     MenuActionBack,
		"tab":   MenuActionScoreboard,
		"q":     MenuActionQuit,
		"z":     MenuActionNone,
	}
	for k, want := range tests {
		if got := km.MapKeyToMenuAction(keyMsg(k)); got != want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", k, got, want)
		}
	}
}
