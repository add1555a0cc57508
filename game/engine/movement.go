package engine

// ValidMoves returns every legal move for mover. For each open direction
// the mover steps into the neighbor cell, or, when the opponent stands
// there, jumps straight over them if the far edge is open and otherwise
// diagonally to either open side of the opponent.
func ValidMoves(g *Grid, mover, other Player) []Action {
	var moves []Action

	for _, d := range Directions {
		if !g.CanStep(mover.X, mover.Y, d) {
			continue
		}
		nx, ny := Step(mover.X, mover.Y, d)
		if !other.At(nx, ny) {
			moves = append(moves, MoveTo(nx, ny))
			continue
		}

		if g.CanStep(nx, ny, d) {
			jx, jy := Step(nx, ny, d)
			moves = append(moves, MoveTo(jx, jy))
			continue
		}

		for _, side := range sideDirections(d) {
			if g.CanStep(nx, ny, side) {
				sx, sy := Step(nx, ny, side)
				moves = append(moves, MoveTo(sx, sy))
			}
		}
	}

	return moves
}

// IsValidMove reports whether moving mover to (x, y) is legal
func IsValidMove(g *Grid, mover, other Player, x, y int) bool {
	for _, move := range ValidMoves(g, mover, other) {
		if move.To.X == x && move.To.Y == y {
			return true
		}
	}
	return false
}

// ValidActions returns all legal moves followed by all legal walls. Walls
// are only offered while self has walls left.
func ValidActions(g *Grid, self, opponent Player) []Action {
	actions := ValidMoves(g, self, opponent)
	if self.Walls <= 0 {
		return actions
	}
	for _, wall := range ValidWalls(g, self, opponent) {
		actions = append(actions, PlaceWall(wall.Orientation, wall.X, wall.Y))
	}
	return actions
}
