package engine

import (
	"io"
	"strings"
)

// Render draws the board with box-drawing characters. Player one is "x",
// player two is "o" and placed walls show as solid edges.
func Render(w io.Writer, g *Grid, playerOne, playerTwo Player) error {
	_, err := io.WriteString(w, RenderString(g, playerOne, playerTwo))
	return err
}

// RenderString returns the same drawing as Render
func RenderString(g *Grid, playerOne, playerTwo Player) string {
	var b strings.Builder

	border := func(left, mid, right string) {
		b.WriteString(left)
		for x := 0; x < g.Width; x++ {
			b.WriteString("───")
			if x != g.Width-1 {
				b.WriteString(mid)
			}
		}
		b.WriteString(right)
		b.WriteString("\n")
	}

	border("┌", "┬", "┐")
	for y := 0; y < g.Height; y++ {
		b.WriteString("│")
		for x := 0; x < g.Width; x++ {
			token := " "
			switch {
			case playerOne.At(x, y):
				token = "x"
			case playerTwo.At(x, y):
				token = "o"
			}
			b.WriteString(" " + token + " ")
			if x != g.Width-1 {
				if g.CellAt(x, y).Right {
					b.WriteString(" ")
				} else {
					b.WriteString("│")
				}
			}
		}
		b.WriteString("│\n")

		if y == g.Height-1 {
			continue
		}
		b.WriteString("├")
		for x := 0; x < g.Width; x++ {
			if g.CellAt(x, y).Down {
				b.WriteString("   ")
			} else {
				b.WriteString("───")
			}
			if x != g.Width-1 {
				b.WriteString("┼")
			}
		}
		b.WriteString("┤\n")
	}
	border("└", "┴", "┘")

	return b.String()
}
