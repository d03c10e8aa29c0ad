package core

import (
	"strings"
	"testing"
)

// lines joins rows the way Screen.String does.
func lines(rows ...string) string {
	return strings.Join(rows, "\n")
}

func TestScreenDrawing(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		draw func(s *Screen)
		want string
	}{
		{
			name: "blank",
			w:    3, h: 2,
			draw: func(*Screen) {},
			want: lines("   ", "   "),
		},
		{
			name: "set ignores out of bounds",
			w:    3, h: 2,
			draw: func(s *Screen) {
				s.Set(1, 1, 'X')
				s.Set(-1, 0, 'A')
				s.Set(3, 0, 'A')
				s.Set(0, 2, 'A')
			},
			want: lines("   ", " X "),
		},
		{
			name: "text clipped at the right edge",
			w:    6, h: 1,
			draw: func(s *Screen) { s.DrawText(3, 0, "Hello") },
			want: "   Hel",
		},
		{
			name: "centered text",
			w:    8, h: 1,
			draw: func(s *Screen) { s.DrawTextCentered(0, "2048") },
			want: "  2048  ",
		},
		{
			name: "centered text counts runes",
			w:    5, h: 1,
			draw: func(s *Screen) { s.DrawTextCentered(0, "★") },
			want: "  ★  ",
		},
		{
			name: "fill then rect",
			w:    4, h: 3,
			draw: func(s *Screen) {
				s.Fill('.')
				s.DrawRect(NewRect(1, 1, 2, 2), '#')
			},
			want: lines("....", ".##.", ".##."),
		},
		{
			name: "box",
			w:    5, h: 4,
			draw: func(s *Screen) { s.DrawBox(NewRect(0, 0, 5, 4)) },
			want: lines("┌───┐", "│   │", "│   │", "└───┘"),
		},
		{
			name: "clear",
			w:    2, h: 2,
			draw: func(s *Screen) {
				s.Fill('#')
				s.Clear()
			},
			want: lines("  ", "  "),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(tt.w, tt.h)
			tt.draw(s)
			if got := s.String(); got != tt.want {
				t.Errorf("screen =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestScreenOutOfBoundsReads(t *testing.T) {
	s := NewScreen(4, 2)
	s.Fill('#')

	if got := s.Get(-1, 0); got != ' ' {
		t.Errorf("Get(-1, 0) = %q, want space", got)
	}
	if got := s.GetCell(4, 0); got != blankCell {
		t.Errorf("GetCell(4, 0) = %+v, want blank", got)
	}
	if got := s.Row(5); got != "    " {
		t.Errorf("Row(5) = %q, want blanks", got)
	}
	if got := s.Row(1); got != "####" {
		t.Errorf("Row(1) = %q, want ####", got)
	}
}

func TestScreenColor(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawTextColor(1, 1, "ab", ColorRed)

	if c := s.GetCell(1, 1); c.Rune != 'a' || c.Color != ColorRed {
		t.Errorf("GetCell(1, 1) = %+v, want red 'a'", c)
	}
	if c := s.GetCell(3, 1); c.Color != ColorDefault {
		t.Errorf("GetCell(3, 1) colour = %v, want default", c.Color)
	}

	s.DrawBoxColor(NewRect(0, 0, 3, 3), ColorCyan)
	if c := s.GetCell(2, 2); c.Rune != '┘' || c.Color != ColorCyan {
		t.Errorf("box corner = %+v, want cyan '┘'", c)
	}

	s.Clear()
	if c := s.GetCell(1, 1); c.Rune != ' ' || c.Color != ColorDefault {
		t.Errorf("after Clear GetCell(1, 1) = %+v", c)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 6)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 5, "World")

	s.Resize(4, 3)
	if s.Width() != 4 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", s.Width(), s.Height())
	}
	if got := s.Row(0); got != "Hell" {
		t.Errorf("row 0 after shrink = %q, want Hell", got)
	}

	s.Resize(7, 6)
	if got := s.Row(0); got != "Hell   " {
		t.Errorf("row 0 after grow = %q, want the kept prefix", got)
	}
	if got := s.Row(5); got != "       " {
		t.Errorf("row 5 after grow = %q, cropped rows must not come back", got)
	}
}
