package model

import (
	"crypto/md5"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bits-and-blooms/bitset"

	"github.com/sheikhrachel/go-life/rules"
)

const (
	// DefaultWidth is used when a grid is constructed with a zero width
	DefaultWidth uint32 = 64
	// DefaultHeight is used when a grid is constructed with a zero height
	DefaultHeight uint32 = 64
)

// Grid is a fixed-size toroidal universe storing one bit per cell.
// Cell (x, y) lives at bit y*width + x.
type Grid struct {
	width  uint32
	height uint32
	cells  *bitset.BitSet
	next   *bitset.BitSet // scratch generation, swapped with cells on Tick
}

// NewGrid creates a grid seeded from the system's cryptographic random source
func NewGrid(width, height uint32) *Grid {
	return NewGridFromSource(width, height, rand.Reader)
}

// NewGridFromSource creates a grid seeded from src, one byte per cell
func NewGridFromSource(width, height uint32, src io.Reader) *Grid {
	g := NewEmptyGrid(width, height)
	g.Seed(src)
	return g
}

// NewEmptyGrid creates a grid with every cell dead
func NewEmptyGrid(width, height uint32) *Grid {
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}
	size := uint(width) * uint(height)
	return &Grid{
		width:  width,
		height: height,
		cells:  bitset.New(size),
		next:   bitset.New(size),
	}
}

// Seed overwrites every cell from src: a cell is alive iff its byte is even.
// A failing source never surfaces an error, see randomByte.
func (g *Grid) Seed(src io.Reader) {
	for i := uint(0); i < g.Len(); i++ {
		g.cells.SetTo(i, randomByte(src)%2 == 0)
	}
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() uint32 {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() uint32 {
	return g.height
}

// Len returns the number of cells, always width*height
func (g *Grid) Len() uint {
	return uint(g.width) * uint(g.height)
}

// Cells exposes the packed cell words without copying. Bit i of the view is
// cell i. The slice is only valid until the next Tick.
func (g *Grid) Cells() []uint64 {
	return g.cells.Bytes()
}

// Index returns the bit index of cell (x, y)
func (g *Grid) Index(x, y uint32) uint {
	return uint(y)*uint(g.width) + uint(x)
}

// Set sets a cell to alive (true) or dead (false)
func (g *Grid) Set(x, y uint32, alive bool) {
	if x < g.width && y < g.height {
		g.cells.SetTo(g.Index(x, y), alive)
	}
}

// Get returns the state of a cell
func (g *Grid) Get(x, y uint32) bool {
	if x >= g.width || y >= g.height {
		return false
	}
	return g.cells.Test(g.Index(x, y))
}

// Clear kills every cell
func (g *Grid) Clear() {
	g.cells.ClearAll()
}

// LiveNeighborCount counts the living cells among the 8 neighbors of (x, y),
// wrapping around the grid edges. Adding width-1 modulo width steps one
// column left without going negative; rows work the same way.
func (g *Grid) LiveNeighborCount(x, y uint32) uint8 {
	var count uint8
	for _, dy := range [3]uint32{g.height - 1, 0, 1} {
		for _, dx := range [3]uint32{g.width - 1, 0, 1} {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := uint32((uint64(x) + uint64(dx)) % uint64(g.width))
			ny := uint32((uint64(y) + uint64(dy)) % uint64(g.height))
			if g.cells.Test(g.Index(nx, ny)) {
				count++
			}
		}
	}
	return count
}

// Tick advances the grid by exactly one generation. Every cell of the
// scratch buffer is computed from the current generation only, then the
// buffers are swapped.
func (g *Grid) Tick() {
	for y := uint32(0); y < g.height; y++ {
		for x := uint32(0); x < g.width; x++ {
			idx := g.Index(x, y)
			g.next.SetTo(idx, rules.ApplyConwayRules(g.LiveNeighborCount(x, y), g.cells.Test(idx)))
		}
	}
	g.cells, g.next = g.next, g.cells
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() int {
	return int(g.cells.Count())
}

// GetGridHash returns an MD5 hash of the current grid state
func (g *Grid) GetGridHash() string {
	h := md5.New()
	var word [8]byte
	for _, w := range g.cells.Bytes() {
		binary.LittleEndian.PutUint64(word[:], w)
		h.Write(word[:])
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
