package mem

// Allocator is the minimal allocation capability: request a block, release
// a block.
//
// Implementations:
//   - HeapAllocator: Go-heap backed default allocator
//   - TrackingAllocator: instrumentation wrapper over any Reallocator
//
// A nil result from Alloc means the allocation failed; Free of a slice not
// returned by the same allocator is undefined behavior.
type Allocator interface {
	// Alloc returns a zeroed block of size bytes, or nil on exhaustion.
	// The base address must be aligned to at least NaturalAlignment; the
	// aligned emulation depends on it.
	Alloc(size int) []byte

	// Free releases a block previously returned by Alloc. Only the base
	// address of b matters; the slice may have been shortened.
	Free(b []byte)
}

// Reallocator extends Allocator with in-place or relocating resize.
type Reallocator interface {
	Allocator

	// Realloc resizes b to size bytes, relocating the block if needed.
	// The first min(len(b), size) bytes are preserved. A nil b behaves as
	// Alloc. Returns nil on exhaustion, leaving b intact.
	Realloc(b []byte, size int) []byte
}

// AlignedAllocator is the native aligned-allocation capability. Allocators
// implementing it are dispatched to directly by AllocAligned/FreeAligned
// instead of going through the offset-header emulation.
type AlignedAllocator interface {
	// AllocAligned returns a block of size bytes whose base address is a
	// multiple of align (a power of two), or nil on exhaustion.
	AllocAligned(size, align int) []byte

	// FreeAligned releases a block previously returned by AllocAligned.
	FreeAligned(b []byte)
}

// AlignedReallocator extends AlignedAllocator with aligned resize.
type AlignedReallocator interface {
	AlignedAllocator

	// ReallocAligned resizes b to size bytes keeping the base address
	// aligned to align. A nil b behaves as AllocAligned.
	ReallocAligned(b []byte, size, align int) []byte
}
