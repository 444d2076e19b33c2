package model

// Offset is a cell position relative to a pattern's origin
type Offset struct {
	Row, Col uint32
}

// Pattern is a named set of living cells
type Pattern struct {
	Name  string
	Cells []Offset
}

var (
	// Spaceship is the lightweight spaceship
	Spaceship = Pattern{
		Name: "spaceship",
		Cells: []Offset{
			{0, 0}, {1, 0}, {2, 0}, {3, 1},
			{0, 1}, {0, 2}, {0, 3}, {1, 4}, {3, 4},
		},
	}

	// Glider travels diagonally, one cell every four generations
	Glider = Pattern{
		Name:  "glider",
		Cells: []Offset{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}},
	}

	// Blinker is a period 2 oscillator
	Blinker = Pattern{
		Name:  "blinker",
		Cells: []Offset{{0, 0}, {0, 1}, {0, 2}},
	}

	// Block is a still life
	Block = Pattern{
		Name:  "block",
		Cells: []Offset{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	}
)

// Patterns indexes the built-in patterns by name
var Patterns = map[string]Pattern{
	Spaceship.Name: Spaceship,
	Glider.Name:    Glider,
	Blinker.Name:   Blinker,
	Block.Name:     Block,
}

// StampSpaceship turns on the lightweight spaceship cells whose row, taken
// relative to vOffset, matches the pattern. Columns are absolute. Rows above
// vOffset never match and cells outside the grid are skipped, so the stamp
// only ever sets cells alive inside its own footprint.
func (g *Grid) StampSpaceship(vOffset uint32) {
	for _, o := range Spaceship.Cells {
		row := uint64(vOffset) + uint64(o.Row)
		if row >= uint64(g.height) || o.Col >= g.width {
			continue
		}
		g.Set(o.Col, uint32(row), true)
	}
}

// Stamp turns on the cells of p with its origin at (x, y), wrapping
// around the grid edges
func (g *Grid) Stamp(p Pattern, x, y uint32) {
	for _, o := range p.Cells {
		nx := uint32((uint64(x) + uint64(o.Col)) % uint64(g.width))
		ny := uint32((uint64(y) + uint64(o.Row)) % uint64(g.height))
		g.Set(nx, ny, true)
	}
}
