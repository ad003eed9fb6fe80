package knowledge

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStatement = errors.New("invalid statement")
	ErrNoMovesAvailable = errors.New("no moves available")
	ErrContradiction    = errors.New("contradictory knowledge")
	ErrUnsound          = errors.New("deduction disagrees with oracle")
	ErrOutOfBounds      = errors.New("cell out of bounds")
)

// InvalidStatementError reports a statement whose hazard count does not fit
// its cell set. It indicates that observations and ground truth disagree.
type InvalidStatementError struct {
	Size  int
	Count int
}

// [InvalidStatementError] implements [error]
func (e *InvalidStatementError) Error() string {
	return fmt.Sprintf(
		"invalid statement: count %d outside [0, %d]", e.Count, e.Size,
	)
}

func (e *InvalidStatementError) Is(target error) bool {
	return target == ErrInvalidStatement
}

// UnsoundError is returned when an oracle is configured and a derived fact
// does not match it.
type UnsoundError struct {
	Cell   Cell
	Hazard bool
}

func (e *UnsoundError) Error() string {
	kind := "safe"
	if e.Hazard {
		kind = "hazard"
	}
	return fmt.Sprintf("%s derived as %s but oracle disagrees", e.Cell, kind)
}

func (e *UnsoundError) Is(target error) bool {
	return target == ErrUnsound
}
