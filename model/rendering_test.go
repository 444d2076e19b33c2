package model

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestRenderShape(t *testing.T) {
	g := NewGrid(7, 3)
	out := g.Render()

	if !strings.HasSuffix(out, "\n") {
		t.Fatal("render should end with a newline")
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if n := utf8.RuneCountInString(line); n != 7 {
			t.Errorf("line %d has %d glyphs, expected 7", i, n)
		}
		for _, r := range line {
			if r != AliveGlyph && r != DeadGlyph {
				t.Errorf("line %d contains unexpected glyph %q", i, r)
			}
		}
	}
}

func TestRenderMatchesCells(t *testing.T) {
	g := NewEmptyGrid(3, 2)
	g.Set(0, 0, true)
	g.Set(2, 1, true)

	want := "◼◻◻\n◻◻◼\n"
	if got := g.Render(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if g.String() != want {
		t.Error("String should match Render")
	}
	if g.Render() != want {
		t.Error("render should be repeatable")
	}
}

func TestTerminalRendererDisplay(t *testing.T) {
	var buf bytes.Buffer
	g := NewEmptyGrid(2, 2)
	g.Set(1, 1, true)

	NewTerminalRenderer(&buf).Display(g)

	if buf.String() != "◻◻\n◻◼\n" {
		t.Errorf("unexpected display output %q", buf.String())
	}
}
