package knowledge

import (
	"math/rand/v2"
)

/*
celltodo is a FIFO of cell indices threaded through a next-index array.
A cell is only ever added once because facts never change, so the array
needs one slot per grid cell.
*/
type celltodo struct {
	next       []int
	head, tail int
}

func newCellTodo(size int) *celltodo {
	return &celltodo{
		next: make([]int, size),
		head: -1,
		tail: -1,
	}
}

func (t *celltodo) add(i int) {
	if t.tail >= 0 {
		t.next[t.tail] = i
	} else {
		t.head = i
	}
	t.tail = i
	t.next[i] = -1
}

func (t *celltodo) pop() {
	if t.head < 0 {
		return
	}
	t.head = t.next[t.head]
	if t.head < 0 {
		t.tail = -1
	}
}

func (kb *KnowledgeBase) cellAt(i int) Cell {
	return Cell{Row: i / kb.width, Col: i % kb.width}
}

// PickKnownSafeMove returns the earliest discovered cell that is known to
// be safe and has not been moved yet.
func (kb *KnowledgeBase) PickKnownSafeMove() (Cell, bool) {
	for kb.frontier.head >= 0 {
		c := kb.cellAt(kb.frontier.head)
		if !kb.moves.Has(c) {
			return c, true
		}
		kb.frontier.pop()
	}
	return Cell{}, false
}

// PickFallbackMove samples the grid uniformly, rejecting known hazards and
// cells already moved. It fails with [ErrNoMovesAvailable] when no cell is
// left to choose.
func (kb *KnowledgeBase) PickFallbackMove(r *rand.Rand) (Cell, error) {
	if kb.height*kb.width-kb.moves.Size()-kb.hazards.Size() <= 0 {
		return Cell{}, ErrNoMovesAvailable
	}
	for {
		c := Cell{Row: r.IntN(kb.height), Col: r.IntN(kb.width)}
		if kb.hazards.Has(c) || kb.moves.Has(c) {
			continue
		}
		return c, nil
	}
}
