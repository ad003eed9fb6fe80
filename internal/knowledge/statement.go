package knowledge

import (
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// Statement asserts that exactly Count of its cells are hazards.
type Statement struct {
	cells mapset.Set[Cell]
	count int
}

// NewStatement builds a statement over the distinct members of cells.
// Duplicate cells collapse into one.
func NewStatement(cells []Cell, count int) (*Statement, error) {
	s := newStatement(cellSet(cells), count)
	if count < 0 || count > s.Len() {
		return nil, &InvalidStatementError{Size: s.Len(), Count: count}
	}
	return s, nil
}

func cellSet(cells []Cell) mapset.Set[Cell] {
	set := mapset.New[Cell]()
	for _, c := range cells {
		set.Put(c)
	}
	return set
}

func newStatement(cells mapset.Set[Cell], count int) *Statement {
	return &Statement{cells: cells, count: count}
}

func (s *Statement) Len() int {
	return s.cells.Size()
}

func (s *Statement) Count() int {
	return s.count
}

func (s *Statement) Has(c Cell) bool {
	return s.cells.Has(c)
}

// Cells returns the member cells in row-major order.
func (s *Statement) Cells() []Cell {
	ret := make([]Cell, 0, s.Len())
	s.cells.Each(func(c Cell) {
		ret = append(ret, c)
	})
	return sortCells(ret)
}

// KnownHazards returns every cell when the count covers the whole set.
func (s *Statement) KnownHazards() []Cell {
	if s.count >= s.Len() {
		return s.Cells()
	}
	return nil
}

// KnownSafe returns every cell when the count is zero.
func (s *Statement) KnownSafe() []Cell {
	if s.count == 0 {
		return s.Cells()
	}
	return nil
}

// resolvable reports whether the statement collapses into facts.
func (s *Statement) resolvable() bool {
	return s.Len() > 0 && (s.count == 0 || s.count >= s.Len())
}

func (s *Statement) ResolveAsHazard(c Cell) {
	if !s.cells.Has(c) {
		return
	}
	s.cells.Remove(c)
	s.count--
}

func (s *Statement) ResolveAsSafe(c Cell) {
	s.cells.Remove(c)
}

func (s *Statement) IsSubsetOf(other *Statement) bool {
	if s.Len() > other.Len() {
		return false
	}
	subset := true
	s.cells.Each(func(c Cell) {
		if subset && !other.cells.Has(c) {
			subset = false
		}
	})
	return subset
}

func (s *Statement) Equal(other *Statement) bool {
	return s.count == other.count && s.Len() == other.Len() && s.IsSubsetOf(other)
}

// minus returns the cells of s that are not in other.
func (s *Statement) minus(other *Statement) mapset.Set[Cell] {
	ret := mapset.New[Cell]()
	s.cells.Each(func(c Cell) {
		if !other.cells.Has(c) {
			ret.Put(c)
		}
	})
	return ret
}

func (s *Statement) clone() *Statement {
	cells := mapset.New[Cell]()
	s.cells.Each(cells.Put)
	return newStatement(cells, s.count)
}

// Statement implements [fmt.Stringer]
func (s *Statement) String() string {
	parts := make([]string, 0, s.Len())
	for _, c := range s.Cells() {
		parts = append(parts, c.String())
	}
	return fmt.Sprintf("{%s} = %d", strings.Join(parts, " "), s.count)
}
