package fungibility

import (
	"errors"
	"fmt"

	"github.com/contract-patterns/vmp-go-base/types"
)

var (
	ErrUnsatisfiableRing = errors.New("unsatisfiable fungibility ring")
	ErrBrokenRing        = errors.New("fungibility ring is broken")
	ErrInvalidSlot       = errors.New("invalid fungibility slot")
	ErrSpendIsNil        = errors.New("spend is nil")
)

/*
RingError is returned when no sibling carrying the type was found in the
batch within len(spends) steps.
*/
type RingError struct {
	Rule     string
	Launcher types.Bytes32 // launcher hash of the type
	Index    int           // index of the spend in the batch
	Forward  bool          // true when searching the next sibling
}

func (e *RingError) Error() string {
	dir := "previous"
	if e.Forward {
		dir = "next"
	}
	return fmt.Sprintf("%s: %s type with launcher %s of spend [%d] has no %s sibling", ErrUnsatisfiableRing, e.Rule, e.Launcher, e.Index, dir)
}

func (e *RingError) Unwrap() error {
	return ErrUnsatisfiableRing
}
