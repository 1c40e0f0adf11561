package region

import "errors"

var (
	// ErrNoSpace indicates that no contiguous free block was large enough.
	ErrNoSpace = errors.New("region: no contiguous free block large enough")

	// ErrBadFree indicates a release whose pointer and size do not match a
	// currently allocated range (foreign pointer, wrong size, double free).
	ErrBadFree = errors.New("region: pointer and size do not match an allocated range")

	// ErrShrink indicates a Resize below the current usable size.
	ErrShrink = errors.New("region: shrinking is not supported")

	// ErrExceedsReserve indicates a Resize beyond the range reserved at construction.
	ErrExceedsReserve = errors.New("region: size exceeds reserved range")

	// ErrSizeInvalid indicates a zero or negative size argument.
	ErrSizeInvalid = errors.New("region: size must be positive")

	// ErrClosed indicates use of a Region after Close.
	ErrClosed = errors.New("region: use after Close")
)
