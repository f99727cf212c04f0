package mem

import "errors"

var (
	// ErrOutstanding indicates a tracking allocator still owns live blocks.
	ErrOutstanding = errors.New("mem: outstanding allocations")

	// ErrUntrackedFree indicates a free of a block the tracking allocator
	// does not own - either a double free or a pointer from another
	// allocator.
	ErrUntrackedFree = errors.New("mem: free of untracked block")
)
