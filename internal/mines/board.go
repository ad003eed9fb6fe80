// Package mines simulates the hidden board the solver plays against: it
// places hazards and answers how many of them surround a cell.
package mines

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper-ai/internal/knowledge"
	"github.com/zyedidia/generic/mapset"
)

var Log = logrus.New()

var (
	ErrTooManyHazards = errors.New("too many hazards for the board")
	ErrInvalidLayout  = errors.New("invalid board layout")
)

type Board struct {
	height, width int
	grid          []bool /* true for a hazard */
	hazards       int
}

/*
Generate places p.Hazards hazards uniformly at random. When start is not
nil, no hazard is placed on start or any cell adjacent to it, so a player
opening start first sees a zero.
*/
func Generate(p Params, start *knowledge.Cell, r *rand.Rand) (*Board, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	height, width, n := p.Unpack()

	/*
	 * Write down the list of possible hazard locations.
	 */
	candidates := make([]int, 0, height*width)
	for row := range height {
		for col := range width {
			if start != nil &&
				absDiff(start.Row, row) <= 1 && absDiff(start.Col, col) <= 1 {
				continue
			}
			candidates = append(candidates, row*width+col)
		}
	}
	if n > len(candidates) {
		return nil, fmt.Errorf(
			"%w: %d hazards, %d free cells", ErrTooManyHazards, n, len(candidates),
		)
	}

	/*
	 * Now pick n off the list at random.
	 */
	grid := make([]bool, height*width)
	k := len(candidates)
	for range n {
		i := r.IntN(k)
		grid[candidates[i]] = true
		k--
		candidates[i] = candidates[k]
	}

	b := &Board{height: height, width: width, grid: grid, hazards: n}

	Log.WithFields(logrus.Fields{
		"params": p.String(), "start": start,
	}).Debug("generated board")

	return b, nil
}

// FromLayout builds a board from rows of '*' (hazard) and '.' (empty).
func FromLayout(rows ...string) (*Board, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalidLayout)
	}
	b := &Board{height: len(rows), width: len(rows[0])}
	b.grid = make([]bool, b.height*b.width)
	for row, line := range rows {
		if len(line) != b.width {
			return nil, fmt.Errorf(
				"%w: row %d has %d cells, want %d",
				ErrInvalidLayout, row, len(line), b.width,
			)
		}
		for col, ch := range line {
			switch ch {
			case '*':
				b.grid[row*b.width+col] = true
				b.hazards++
			case '.':
			default:
				return nil, fmt.Errorf(
					"%w: unexpected %q at %d:%d", ErrInvalidLayout, ch, row, col,
				)
			}
		}
	}
	return b, nil
}

func (b *Board) Height() int  { return b.height }
func (b *Board) Width() int   { return b.width }
func (b *Board) Hazards() int { return b.hazards }

func (b *Board) Params() Params {
	return Params{Height: b.height, Width: b.width, Hazards: b.hazards}
}

func (b *Board) InBounds(c knowledge.Cell) bool {
	return c.InBounds(b.height, b.width)
}

// IsHazard implements [knowledge.Oracle].
func (b *Board) IsHazard(c knowledge.Cell) bool {
	return b.InBounds(c) && b.grid[c.Index(b.width)]
}

// AdjacentHazards counts the hazards among the neighbours of c, not
// including c itself.
func (b *Board) AdjacentHazards(c knowledge.Cell) int {
	n := 0
	for _, nb := range knowledge.Neighbors(c, b.height, b.width) {
		if b.grid[nb.Index(b.width)] {
			n++
		}
	}
	return n
}

func (b *Board) HazardCells() []knowledge.Cell {
	ret := make([]knowledge.Cell, 0, b.hazards)
	for i, h := range b.grid {
		if h {
			ret = append(ret, knowledge.Cell{Row: i / b.width, Col: i % b.width})
		}
	}
	return ret
}

// Won reports whether flagged names exactly the hazards of the board.
func (b *Board) Won(flagged []knowledge.Cell) bool {
	seen := mapset.New[knowledge.Cell]()
	for _, c := range flagged {
		if !b.IsHazard(c) {
			return false
		}
		seen.Put(c)
	}
	return seen.Size() == b.hazards
}

// Board implements [fmt.Stringer]
func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.height {
		for col := range b.width {
			if b.grid[row*b.width+col] {
				sb.WriteString("* ")
			} else {
				sb.WriteString("- ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
