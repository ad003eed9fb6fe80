package knowledge

import (
	"cmp"
	"fmt"
	"slices"
)

// Cell is a grid coordinate. Row grows downwards, Col grows to the right.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Index returns the row-major position of c in a grid of the given width.
func (c Cell) Index(width int) int {
	return c.Row*width + c.Col
}

func (c Cell) InBounds(height, width int) bool {
	return 0 <= c.Row && c.Row < height && 0 <= c.Col && c.Col < width
}

func compareCells(a, b Cell) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	return cmp.Compare(a.Col, b.Col)
}

func sortCells(cells []Cell) []Cell {
	slices.SortFunc(cells, compareCells)
	return cells
}

// Neighbors returns the up to eight cells adjacent to c, clipped to a
// height x width grid, in row-major order. c itself is never included.
func Neighbors(c Cell, height, width int) []Cell {
	ret := make([]Cell, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := Cell{Row: c.Row + dr, Col: c.Col + dc}
			if n.InBounds(height, width) {
				ret = append(ret, n)
			}
		}
	}
	return ret
}
