package knowledge

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type fact struct {
	cell   Cell
	hazard bool
}

func safeFacts(cells []Cell) []fact {
	ret := make([]fact, len(cells))
	for i, c := range cells {
		ret[i] = fact{cell: c}
	}
	return ret
}

func hazardFacts(cells []Cell) []fact {
	ret := make([]fact, len(cells))
	for i, c := range cells {
		ret[i] = fact{cell: c, hazard: true}
	}
	return ret
}

// conclusions returns the facts a resolvable statement collapses into.
func conclusions(s *Statement) []fact {
	if safe := s.KnownSafe(); len(safe) > 0 {
		return safeFacts(safe)
	}
	return hazardFacts(s.KnownHazards())
}

// propagate drains a worklist of facts. Every fact is recorded, removed
// from all stored statements, and any statement that collapses as a result
// is taken out of storage with its cells queued as new facts.
func (kb *KnowledgeBase) propagate(queue []fact) error {
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]

		if fresh, err := kb.record(f); err != nil {
			return err
		} else if !fresh {
			continue
		}

		var collapsed []*Statement
		for _, s := range kb.statements {
			if f.hazard {
				s.ResolveAsHazard(f.cell)
			} else {
				s.ResolveAsSafe(f.cell)
			}
			if s.Len() == 0 || s.resolvable() {
				collapsed = append(collapsed, s)
			}
		}
		kb.removeStatements(collapsed...)

		for _, s := range collapsed {
			if s.count < 0 || s.count > s.Len() {
				return fmt.Errorf(
					"%w: %s left with count %d", ErrContradiction, s, s.count,
				)
			}
			queue = append(queue, conclusions(s)...)
		}
	}
	return nil
}

// record adds f to the fact sets. It reports false when f was already
// known.
func (kb *KnowledgeBase) record(f fact) (bool, error) {
	known, opposite := kb.safe, kb.hazards
	if f.hazard {
		known, opposite = kb.hazards, kb.safe
	}
	if known.Has(f.cell) {
		return false, nil
	}
	if opposite.Has(f.cell) {
		return false, fmt.Errorf(
			"%w: %s is both safe and a hazard", ErrContradiction, f.cell,
		)
	}
	if kb.oracle != nil && kb.oracle.IsHazard(f.cell) != f.hazard {
		return false, &UnsoundError{Cell: f.cell, Hazard: f.hazard}
	}

	known.Put(f.cell)
	if f.hazard {
		factsTotal.WithLabelValues("hazard").Inc()
	} else {
		factsTotal.WithLabelValues("safe").Inc()
		if !kb.moves.Has(f.cell) {
			kb.frontier.add(f.cell.Index(kb.width))
		}
	}

	Log.WithFields(logrus.Fields{
		"cell": f.cell, "hazard": f.hazard,
	}).Debug("new fact")

	return true, nil
}
