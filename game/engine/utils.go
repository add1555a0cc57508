package engine

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	return abs(from.X-to.X) + abs(from.Y-to.Y)
}

// CountWalls returns how many walls have been placed on the grid. Each wall
// closes exactly two edges.
func CountWalls(g *Grid) int {
	closed := 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			cell := g.CellAt(x, y)
			if x < g.Width-1 && !cell.Right {
				closed++
			}
			if y < g.Height-1 && !cell.Down {
				closed++
			}
		}
	}
	return closed / 2
}

// PathLengths returns both players' shortest path lengths for a state
func PathLengths(state *GameState) [2]int {
	one, two := state.Players[PlayerOne], state.Players[PlayerTwo]
	return [2]int{
		PathLength(state.Grid, one, two),
		PathLength(state.Grid, two, one),
	}
}
