package engine

// Direction is one of the four orthogonal steps
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists the four steps in move-generation order
var Directions = []Direction{Up, Down, Left, Right}

// Cell carries the two edges a cell owns. Edges to the left and upper
// neighbors belong to those neighbors.
type Cell struct {
	Right bool `json:"r"`
	Down  bool `json:"d"`
}

// Grid is a Width x Height board stored in row-major order
type Grid struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cells  []Cell `json:"cells"`
}

// NewGrid creates a board with every interior edge open
func NewGrid(width, height int) *Grid {
	cells := make([]Cell, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cells = append(cells, Cell{
				Right: x != width-1,
				Down:  y != height-1,
			})
		}
	}
	return &Grid{Width: width, Height: height, Cells: cells}
}

// Size returns the number of cells
func (g *Grid) Size() int {
	return g.Width * g.Height
}

// Index converts a coordinate into a cell index
func (g *Grid) Index(x, y int) int {
	return y*g.Width + x
}

// Point converts a cell index back into a coordinate
func (g *Grid) Point(index int) (int, int) {
	y := index / g.Width
	return index - y*g.Width, y
}

// InBounds reports whether (x, y) lies on the board
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// CellAt returns the cell at (x, y)
func (g *Grid) CellAt(x, y int) Cell {
	return g.Cells[g.Index(x, y)]
}

// Clone returns an independent copy of the grid
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{Width: g.Width, Height: g.Height, Cells: cells}
}

// PlaceWall clears the two edges covered by wall. It performs no
// validation; callers must check CanPlaceWall first.
func (g *Grid) PlaceWall(wall Wall) {
	g.setWall(wall, false)
}

// setWall writes the two edges covered by wall. Passing open=true undoes a
// placement made on a grid where both edges were open.
func (g *Grid) setWall(wall Wall, open bool) {
	if wall.Orientation == Vertical {
		g.Cells[g.Index(wall.X, wall.Y)].Right = open
		g.Cells[g.Index(wall.X, wall.Y+1)].Right = open
		return
	}
	g.Cells[g.Index(wall.X, wall.Y)].Down = open
	g.Cells[g.Index(wall.X+1, wall.Y)].Down = open
}

// CanStep reports whether the edge from (x, y) in direction d is open.
// Board boundaries are always closed.
func (g *Grid) CanStep(x, y int, d Direction) bool {
	switch d {
	case Up:
		return y > 0 && g.Cells[g.Index(x, y-1)].Down
	case Down:
		return y < g.Height-1 && g.Cells[g.Index(x, y)].Down
	case Left:
		return x > 0 && g.Cells[g.Index(x-1, y)].Right
	case Right:
		return x < g.Width-1 && g.Cells[g.Index(x, y)].Right
	default:
		return false
	}
}

// Step returns the coordinate one cell away in direction d
func Step(x, y int, d Direction) (int, int) {
	switch d {
	case Up:
		return x, y - 1
	case Down:
		return x, y + 1
	case Left:
		return x - 1, y
	case Right:
		return x + 1, y
	}
	return x, y
}

// sideDirections returns the two directions perpendicular to d
func sideDirections(d Direction) [2]Direction {
	if d == Up || d == Down {
		return [2]Direction{Left, Right}
	}
	return [2]Direction{Up, Down}
}
