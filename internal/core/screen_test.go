package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Errorf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("new screen should be blank, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenEmpty(t *testing.T) {
	if !NewScreen(0, 10).Empty() {
		t.Error("zero-width screen should be empty")
	}
	if !NewScreen(-3, -3).Empty() {
		t.Error("negative dimensions should be clamped to an empty screen")
	}
	if NewScreen(1, 1).Empty() {
		t.Error("1x1 screen should not be empty")
	}
}

func TestScreenSetGetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorRed)
	if c := s.GetCell(5, 5); c.Rune != 'X' || c.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v", c)
	}

	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawText(0, 0, "hello")

	s.Resize(3, 2)
	if s.Row(0) != "hel" {
		t.Errorf("Row(0) after shrink = %q", s.Row(0))
	}

	s.Resize(6, 3)
	if s.Row(0) != "hel   " {
		t.Errorf("Row(0) after grow = %q", s.Row(0))
	}
}

func TestScreenDrawLine(t *testing.T) {
	s := NewScreen(5, 5)
	s.DrawLine(0, 0, 4, 4, '#', ColorGreen)

	for i := 0; i < 5; i++ {
		if s.Get(i, i) != '#' {
			t.Errorf("diagonal cell (%d, %d) not drawn", i, i)
		}
	}

	s.Clear()
	s.DrawLine(4, 2, 0, 2, '-', ColorDefault)
	if s.Row(2) != "-----" {
		t.Errorf("horizontal line = %q", s.Row(2))
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "ab")
	s.DrawText(0, 1, "cde")

	lines := strings.Split(s.String(), "\n")
	if len(lines) != 2 || lines[0] != "ab " || lines[1] != "cde" {
		t.Errorf("String() = %q", s.String())
	}
}

func TestScreenDrawMessage(t *testing.T) {
	s := NewScreen(40, 10)
	s.DrawMessage("PAUSED", "Press P to resume")

	if !strings.Contains(s.String(), "PAUSED") {
		t.Error("message title not drawn")
	}
	if !strings.Contains(s.String(), "Press P to resume") {
		t.Error("message subtitle not drawn")
	}
}
