package model

// defaultHistorySize keeps enough states to spot period 3 cycles
const defaultHistorySize = 5

// History stores recent grid states for cycle detection
type History struct {
	size   int
	hashes []string
}

// NewHistory creates a history holding up to size states
func NewHistory(size int) *History {
	if size <= 0 {
		size = defaultHistorySize
	}
	return &History{size: size}
}

// Update adds the grid's current state to history and maintains size
func (h *History) Update(g *Grid) {
	h.hashes = append(h.hashes, g.GetGridHash())
	if len(h.hashes) > h.size {
		h.hashes = h.hashes[1:]
	}
}

// IsStagnant checks if the grid repeats one of the last three recorded
// states, which covers still lifes and oscillators up to period 3
func (h *History) IsStagnant(g *Grid) bool {
	if len(h.hashes) < 3 {
		return false
	}

	current := g.GetGridHash()
	for i := 1; i <= 3; i++ {
		if h.hashes[len(h.hashes)-i] == current {
			return true
		}
	}
	return false
}

// Reset forgets every recorded state
func (h *History) Reset() {
	h.hashes = nil
}

// Len returns the number of recorded states
func (h *History) Len() int {
	return len(h.hashes)
}
