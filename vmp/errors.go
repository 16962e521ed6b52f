package vmp

import "errors"

// Construction errors, returned before anything is serialized.
var (
	ErrMissingCoin       = errors.New("spend has no coin")
	ErrMissingPuzzle     = errors.New("spend has no puzzle")
	ErrDuplicateType     = errors.New("duplicate type")
	ErrUnknownRemoval    = errors.New("removed type is not attached to the coin")
	ErrDuplicateRemoval  = errors.New("type is removed more than once")
	ErrSlotCountMismatch = errors.New("solution slots are not aligned with the types")
	ErrSlotOutOfRange    = errors.New("solution slot index out of range")

	ErrReservedAnnouncement = errors.New("announcement uses reserved namespace prefix")
)
