package engine

import "math"

// wallInBounds reports whether the wall's anchor lies in [0, W-2] x [0, H-2]
func wallInBounds(g *Grid, wall Wall) bool {
	return wall.X >= 0 && wall.X <= g.Width-2 && wall.Y >= 0 && wall.Y <= g.Height-2
}

// wallOverlaps reports whether wall collides with or crosses a placed wall.
// A crossing is detected from the anchor cell's own flags: two closed Down
// edges side by side mean a horizontal wall already spans the midpoint,
// two closed Right edges stacked mean a vertical one does.
func wallOverlaps(g *Grid, wall Wall) bool {
	one := g.CellAt(wall.X, wall.Y)
	two := g.CellAt(wall.X+1, wall.Y)
	three := g.CellAt(wall.X, wall.Y+1)

	if wall.Orientation == Vertical && (!one.Right || !three.Right) {
		return true
	}
	if wall.Orientation == Horizontal && (!one.Down || !two.Down) {
		return true
	}
	return (!one.Down && !two.Down) || (!one.Right && !three.Right)
}

// validOrientation rejects anything other than the two wall orientations
func validOrientation(o Orientation) bool {
	return o == Vertical || o == Horizontal
}

// CanPlaceWall reports whether wall may legally be placed: it must be in
// bounds, must not overlap or cross an existing wall, and must leave both
// players with a route to their goal rows. The grid is not modified.
func CanPlaceWall(g *Grid, playerOne, playerTwo Player, wall Wall) bool {
	if !validOrientation(wall.Orientation) || !wallInBounds(g, wall) || wallOverlaps(g, wall) {
		return false
	}
	return keepsBothConnected(g.Clone(), playerOne, playerTwo, wall)
}

// keepsBothConnected applies wall to scratch, runs the pathfinder for both
// players and reverts the two edges. scratch must not be a live game grid
// and wall must already have passed the overlap check.
func keepsBothConnected(scratch *Grid, playerOne, playerTwo Player, wall Wall) bool {
	scratch.setWall(wall, false)
	defer scratch.setWall(wall, true)

	return HasPath(scratch, playerOne, playerTwo) && HasPath(scratch, playerTwo, playerOne)
}

// ValidWalls enumerates every legal wall placement
func ValidWalls(g *Grid, playerOne, playerTwo Player) []Wall {
	scratch := g.Clone()
	var walls []Wall

	for y := 0; y < g.Height-1; y++ {
		for x := 0; x < g.Width-1; x++ {
			for _, orientation := range []Orientation{Vertical, Horizontal} {
				wall := Wall{Orientation: orientation, X: x, Y: y}
				if wallOverlaps(scratch, wall) {
					continue
				}
				if keepsBothConnected(scratch, playerOne, playerTwo, wall) {
					walls = append(walls, wall)
				}
			}
		}
	}

	return walls
}

// wallHeuristic returns the placer's and the opponent's path lengths after
// hypothetically placing wall on scratch
func wallHeuristic(scratch *Grid, placer, opponent Player, wall Wall) (int, int) {
	scratch.setWall(wall, false)
	defer scratch.setWall(wall, true)

	return PathLength(scratch, placer, opponent), PathLength(scratch, opponent, placer)
}

// BestMaxWalls returns the legal walls that make the opponent's shortest
// path as long as possible. Walls that would leave either player without a
// path are skipped.
func BestMaxWalls(g *Grid, placer, opponent Player) []Wall {
	scratch := g.Clone()
	var best []Wall
	longest := 0

	for _, wall := range ValidWalls(g, placer, opponent) {
		own, theirs := wallHeuristic(scratch, placer, opponent, wall)
		if own == 0 || theirs == 0 || theirs < longest {
			continue
		}
		if theirs > longest {
			longest = theirs
			best = best[:0]
		}
		best = append(best, wall)
	}

	return best
}

// BestMinmaxWalls returns the legal walls that maximize the opponent's
// path length minus the placer's own. Ties are all returned.
func BestMinmaxWalls(g *Grid, placer, opponent Player) []Wall {
	scratch := g.Clone()
	var best []Wall
	bestDiff := math.MinInt

	for _, wall := range ValidWalls(g, placer, opponent) {
		own, theirs := wallHeuristic(scratch, placer, opponent, wall)
		if own == 0 || theirs == 0 {
			continue
		}
		diff := theirs - own
		if diff < bestDiff {
			continue
		}
		if diff > bestDiff {
			bestDiff = diff
			best = best[:0]
		}
		best = append(best, wall)
	}

	return best
}
