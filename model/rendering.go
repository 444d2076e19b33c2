package model

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"
)

const (
	// AliveGlyph marks a living cell in rendered output
	AliveGlyph = '◼'
	// DeadGlyph marks a dead cell in rendered output
	DeadGlyph = '◻'

	clearCmd = "clear"
)

// Render returns height lines of width glyphs, each line ending in a newline
func (g *Grid) Render() string {
	var b strings.Builder
	b.Grow(int(g.Len())*3 + int(g.height))
	for y := range g.height {
		for x := range g.width {
			if g.cells.Test(g.Index(x, y)) {
				b.WriteRune(AliveGlyph)
			} else {
				b.WriteRune(DeadGlyph)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// String implements fmt.Stringer
func (g *Grid) String() string {
	return g.Render()
}

// TerminalRenderer implements basic terminal rendering
type TerminalRenderer struct {
	out io.Writer
}

// NewTerminalRenderer returns a renderer writing to out, or stdout if out is nil
func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	if out == nil {
		out = os.Stdout
	}
	return &TerminalRenderer{out: out}
}

// Display writes the rendered grid
func (r *TerminalRenderer) Display(g *Grid) {
	fmt.Fprint(r.out, g.Render())
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	cmd := exec.Command(clearCmd)
	cmd.Stdout = r.out
	if err := cmd.Run(); err != nil {
		log.Printf("Error clearing terminal: %v", err)
	}
}
