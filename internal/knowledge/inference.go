package knowledge

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
)

type AdmitResult int8

const (
	Stored AdmitResult = iota
	Resolved
	Duplicate
	Vacuous
)

func (r AdmitResult) String() string {
	switch r {
	case Stored:
		return "stored"
	case Resolved:
		return "resolved"
	case Duplicate:
		return "duplicate"
	case Vacuous:
		return "vacuous"
	default:
		return "unknown"
	}
}

// Admit folds s into the knowledge base. Cells already resolved are first
// removed from s. A statement that collapses into facts is never stored:
// its facts are propagated instead. Empty statements and statements equal
// to a stored one are dropped.
//
// The knowledge base takes ownership of s.
func (kb *KnowledgeBase) Admit(s *Statement) (AdmitResult, error) {
	if err := kb.reconcile(s); err != nil {
		return Vacuous, err
	}

	var (
		result AdmitResult
		err    error
	)
	switch {
	case s.Len() == 0:
		result = Vacuous
	case s.resolvable():
		result = Resolved
		err = kb.propagate(conclusions(s))
	case kb.holdsEqual(s):
		result = Duplicate
	default:
		result = Stored
		kb.store(s)
	}

	admittedTotal.WithLabelValues(result.String()).Inc()
	Log.WithFields(logrus.Fields{
		"statement": s, "result": result,
	}).Debug("admitted statement")

	return result, err
}

// Ingest records that cell has been opened and that count of its
// neighbours are hazards.
func (kb *KnowledgeBase) Ingest(cell Cell, count int) error {
	if !cell.InBounds(kb.height, kb.width) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, cell)
	}

	if err := kb.propagate([]fact{{cell: cell}}); err != nil {
		return err
	}
	kb.moves.Put(cell)
	ingestsTotal.Inc()

	/*
	 * Build the statement over the neighbours we know nothing about.
	 * Known hazards among the neighbours are taken off the count.
	 */
	var neighbors []Cell
	for _, n := range Neighbors(cell, kb.height, kb.width) {
		switch {
		case kb.hazards.Has(n):
			count--
		case kb.moves.Has(n), kb.safe.Has(n):
		default:
			neighbors = append(neighbors, n)
		}
	}
	if len(neighbors) == 0 {
		if count != 0 {
			return fmt.Errorf("observation at %s: %w", cell,
				&InvalidStatementError{Size: 0, Count: count})
		}
		return nil
	}

	s, err := NewStatement(neighbors, count)
	if err != nil {
		return fmt.Errorf("observation at %s: %w", cell, err)
	}

	if s.resolvable() {
		_, err := kb.Admit(s)
		return err
	}

	if err := kb.subsume(s); err != nil {
		return err
	}

	if kb.saturate {
		return kb.Saturate()
	}
	return nil
}

// subsume compares s once against every statement stored when the pass
// starts. Statements derived along the way are admitted but not compared
// again until a later call.
func (kb *KnowledgeBase) subsume(s *Statement) error {
	keep := true
	for _, other := range slices.Clone(kb.statements) {
		if !kb.stored(other) {
			continue /* collapsed by an earlier inference */
		}
		if err := kb.reconcile(s); err != nil {
			return err
		}
		if s.Len() == 0 {
			return nil
		}

		var inferred *Statement
		switch {
		case s.Len() >= other.Len() && other.IsSubsetOf(s):
			keep = false
			inferred = newStatement(s.minus(other), absDiff(s.count, other.count))
		case s.IsSubsetOf(other):
			kb.removeStatements(other)
			inferred = newStatement(other.minus(s), absDiff(s.count, other.count))
		default:
			continue
		}

		inferencesTotal.Inc()
		Log.WithFields(logrus.Fields{
			"new": s, "stored": other, "inferred": inferred,
		}).Debug("subset inference")

		if _, err := kb.Admit(inferred); err != nil {
			return err
		}
	}

	if keep {
		_, err := kb.Admit(s)
		return err
	}
	return nil
}

// Saturate applies subset inference between every pair of stored
// statements until no statement contains another. Each step replaces the
// larger statement by its difference with the smaller one, so the total
// number of cells held strictly decreases and the loop terminates.
func (kb *KnowledgeBase) Saturate() error {
	for {
		a, b, ok := kb.nestedPair()
		if !ok {
			return nil
		}
		kb.removeStatements(b)
		inferred := newStatement(b.minus(a), b.count-a.count)

		inferencesTotal.Inc()
		Log.WithFields(logrus.Fields{
			"subset": a, "superset": b, "inferred": inferred,
		}).Debug("saturating inference")

		if _, err := kb.Admit(inferred); err != nil {
			return err
		}
	}
}

// nestedPair finds stored statements a and b, a != b, with a's cells
// contained in b's.
func (kb *KnowledgeBase) nestedPair() (a, b *Statement, ok bool) {
	for _, a := range kb.statements {
		for _, b := range kb.statements {
			if a != b && a.Len() <= b.Len() && a.IsSubsetOf(b) {
				return a, b, true
			}
		}
	}
	return nil, nil, false
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
