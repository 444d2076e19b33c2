package rules

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

	alive, neighbors < 2       -> dies (underpopulation)
	alive, neighbors == 2 or 3 -> lives on
	alive, neighbors > 3       -> dies (overpopulation)
	dead,  neighbors == 3      -> becomes alive (reproduction)
	anything else              -> unchanged
*/
func ApplyConwayRules(neighbors uint8, alive bool) bool {
	switch {
	case alive && neighbors < 2:
		return false
	case alive && (neighbors == 2 || neighbors == 3):
		return true
	case alive && neighbors > 3:
		return false
	case !alive && neighbors == 3:
		return true
	default:
		return alive
	}
}
