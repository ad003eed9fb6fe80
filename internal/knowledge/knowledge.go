// Package knowledge deduces which cells of a hidden grid are safe or
// hazardous from local observations of the form "cell C has N hazardous
// neighbours".
//
// A [KnowledgeBase] holds statements "exactly N of these cells are
// hazards" and the facts derived from them. Whenever a statement collapses
// into facts (N == 0, or N equals the number of cells) the facts are
// propagated through every other statement until nothing more follows.
// New observations are compared against stored statements: when one cell
// set contains another, the difference carries the difference of counts.
package knowledge

import (
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

var Log = logrus.New()

// Oracle knows the ground truth. It is only consulted to validate
// deductions, never to make them.
type Oracle interface {
	IsHazard(c Cell) bool
}

type Option func(*KnowledgeBase)

// WithOracle makes every derived fact be checked against o. A mismatch
// aborts the operation with an [UnsoundError].
func WithOracle(o Oracle) Option {
	return func(kb *KnowledgeBase) {
		kb.oracle = o
	}
}

// WithSaturation makes Ingest run [KnowledgeBase.Saturate] after the
// single subsumption pass over the new observation.
func WithSaturation() Option {
	return func(kb *KnowledgeBase) {
		kb.saturate = true
	}
}

// KnowledgeBase is owned by a single game session and is not safe for
// concurrent use.
type KnowledgeBase struct {
	height, width int

	moves   mapset.Set[Cell]
	safe    mapset.Set[Cell]
	hazards mapset.Set[Cell]

	statements []*Statement
	held       mapset.Set[*Statement]
	frontier   *celltodo

	oracle   Oracle
	saturate bool
}

func New(height, width int, opts ...Option) *KnowledgeBase {
	kb := &KnowledgeBase{
		height:   height,
		width:    width,
		moves:    mapset.New[Cell](),
		safe:     mapset.New[Cell](),
		hazards:  mapset.New[Cell](),
		held:     mapset.New[*Statement](),
		frontier: newCellTodo(height * width),
	}
	for _, opt := range opts {
		opt(kb)
	}
	return kb
}

func (kb *KnowledgeBase) Height() int { return kb.height }
func (kb *KnowledgeBase) Width() int  { return kb.width }

func (kb *KnowledgeBase) IsKnownSafe(c Cell) bool   { return kb.safe.Has(c) }
func (kb *KnowledgeBase) IsKnownHazard(c Cell) bool { return kb.hazards.Has(c) }
func (kb *KnowledgeBase) IsMoveMade(c Cell) bool    { return kb.moves.Has(c) }

func (kb *KnowledgeBase) KnownSafe() []Cell    { return setCells(kb.safe) }
func (kb *KnowledgeBase) KnownHazards() []Cell { return setCells(kb.hazards) }
func (kb *KnowledgeBase) MovesMade() []Cell    { return setCells(kb.moves) }

// Counts reports the sizes of the fact sets and of the statement store.
func (kb *KnowledgeBase) Counts() (safe, hazards, statements int) {
	return kb.safe.Size(), kb.hazards.Size(), len(kb.statements)
}

// Statements returns copies of the currently held statements in storage
// order.
func (kb *KnowledgeBase) Statements() []*Statement {
	ret := make([]*Statement, len(kb.statements))
	for i, s := range kb.statements {
		ret[i] = s.clone()
	}
	return ret
}

func (kb *KnowledgeBase) stored(s *Statement) bool {
	return kb.held.Has(s)
}

func (kb *KnowledgeBase) store(s *Statement) {
	kb.statements = append(kb.statements, s)
	kb.held.Put(s)
}

func (kb *KnowledgeBase) holdsEqual(s *Statement) bool {
	return slices.ContainsFunc(kb.statements, s.Equal)
}

// removeStatements drops every statement in ss from storage, matching by
// identity.
func (kb *KnowledgeBase) removeStatements(ss ...*Statement) {
	if len(ss) == 0 {
		return
	}
	for _, s := range ss {
		kb.held.Remove(s)
	}
	kb.statements = slices.DeleteFunc(kb.statements, func(s *Statement) bool {
		return !kb.held.Has(s)
	})
}

// reconcile removes already resolved cells from s, adjusting its count for
// every known hazard it loses.
func (kb *KnowledgeBase) reconcile(s *Statement) error {
	for _, c := range s.Cells() {
		if kb.hazards.Has(c) {
			s.ResolveAsHazard(c)
		} else if kb.safe.Has(c) {
			s.ResolveAsSafe(c)
		}
	}
	if s.count < 0 || s.count > s.Len() {
		return &InvalidStatementError{Size: s.Len(), Count: s.count}
	}
	return nil
}

func setCells(set mapset.Set[Cell]) []Cell {
	ret := make([]Cell, 0, set.Size())
	set.Each(func(c Cell) {
		ret = append(ret, c)
	})
	return sortCells(ret)
}
