package engine

import (
	"container/heap"
	"math"
)

// openNode is an entry in the A* open set. Entries are never updated in
// place; a better route pushes a fresh entry and stale ones are skipped.
type openNode struct {
	index int
	g     int
	f     int
	seq   int
}

type openSet []openNode

func (o openSet) Len() int { return len(o) }

func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	if o[i].g != o[j].g {
		return o[i].g > o[j].g
	}
	return o[i].seq < o[j].seq
}

func (o openSet) Swap(i, j int) { o[i], o[j] = o[j], o[i] }

func (o *openSet) Push(x any) { *o = append(*o, x.(openNode)) }

func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	node := old[n-1]
	*o = old[:n-1]
	return node
}

// PathToGoal returns the shortest route from seeker's cell to any cell on
// seeker's goal row, including both endpoints. Stepping onto the other
// player's cell is free and that cell is left out of the returned path.
// An empty result means the goal row is unreachable.
func PathToGoal(g *Grid, seeker, other Player) []Position {
	size := g.Size()
	root := g.Index(seeker.X, seeker.Y)
	otherIndex := g.Index(other.X, other.Y)

	cameFrom := make([]int, size)
	gScore := make([]int, size)
	for i := range gScore {
		cameFrom[i] = -1
		gScore[i] = math.MaxInt
	}

	open := &openSet{}
	seq := 0
	gScore[root] = 0
	heap.Push(open, openNode{index: root, g: 0, f: abs(seeker.Y - seeker.GoalY), seq: seq})

	for open.Len() > 0 {
		current := heap.Pop(open).(openNode)
		if current.g != gScore[current.index] {
			continue
		}

		x, y := g.Point(current.index)
		if y == seeker.GoalY {
			return reconstructPath(g, cameFrom, current.index, root, otherIndex)
		}

		for _, d := range Directions {
			if !g.CanStep(x, y, d) {
				continue
			}
			nx, ny := Step(x, y, d)
			next := g.Index(nx, ny)

			cost := 1
			if next == otherIndex {
				cost = 0
			}
			score := current.g + cost
			if score < gScore[next] {
				cameFrom[next] = current.index
				gScore[next] = score
				seq++
				heap.Push(open, openNode{index: next, g: score, f: score + abs(ny-seeker.GoalY), seq: seq})
			}
		}
	}

	return nil
}

// reconstructPath walks predecessor links from goal back to root
func reconstructPath(g *Grid, cameFrom []int, goal, root, skip int) []Position {
	var reversed []Position
	x, y := g.Point(goal)
	reversed = append(reversed, Position{X: x, Y: y})

	for current := goal; current != root; {
		current = cameFrom[current]
		if current != skip {
			x, y := g.Point(current)
			reversed = append(reversed, Position{X: x, Y: y})
		}
	}

	path := make([]Position, len(reversed))
	for i, p := range reversed {
		path[len(reversed)-1-i] = p
	}
	return path
}

// PathLength returns the number of cells on the shortest path, or 0 when
// the goal row is unreachable
func PathLength(g *Grid, seeker, other Player) int {
	return len(PathToGoal(g, seeker, other))
}

// HasPath reports whether seeker can still reach their goal row
func HasPath(g *Grid, seeker, other Player) bool {
	return len(PathToGoal(g, seeker, other)) > 0
}
