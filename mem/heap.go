package mem

// HeapAllocator allocates from the Go heap. It supports every capability:
// plain allocation, reallocation, and both aligned variants. The Go runtime
// has no native aligned-allocation entry point, so the aligned methods fall
// back to the offset-header emulation against the allocator itself.
//
// HeapAllocator is stateless and safe for concurrent use.
type HeapAllocator struct{}

// Default is the process-wide default allocator.
var Default = NewHeap()

// NewHeap returns a heap-backed allocator.
func NewHeap() *HeapAllocator {
	return &HeapAllocator{}
}

// minBlockCap keeps backing storage out of the runtime's tiny-allocator
// range: pointer-free allocations under 16 bytes may be aligned to as
// little as 1 byte, which would break the NaturalAlignment guarantee the
// aligned emulation relies on.
const minBlockCap = 16

// newBlock allocates zeroed backing storage for size bytes with a base
// address aligned to at least NaturalAlignment.
func newBlock(size int) []byte {
	if size < minBlockCap {
		return make([]byte, size, minBlockCap)
	}
	return make([]byte, size)
}

// Alloc returns a zeroed block of size bytes. The base address is aligned
// to at least NaturalAlignment.
func (*HeapAllocator) Alloc(size int) []byte {
	return newBlock(size)
}

// Free releases a block. The heap is garbage collected, so dropping the
// reference is all that is required.
func (*HeapAllocator) Free(b []byte) {
}

// Realloc resizes b. The block is extended in place when its capacity
// allows; otherwise a new block is allocated and the contents copied.
func (*HeapAllocator) Realloc(b []byte, size int) []byte {
	if b == nil {
		return newBlock(size)
	}
	if size <= cap(b) {
		return b[:size]
	}
	nb := newBlock(size)
	copy(nb, b)
	return nb
}

// AllocAligned returns a block of size bytes aligned to align.
func (h *HeapAllocator) AllocAligned(size, align int) []byte {
	return allocAligned(h, size, align)
}

// FreeAligned releases a block obtained from AllocAligned.
func (h *HeapAllocator) FreeAligned(b []byte) {
	freeAligned(h, b)
}

// ReallocAligned resizes a block obtained from AllocAligned.
func (h *HeapAllocator) ReallocAligned(b []byte, size, align int) []byte {
	return reallocAligned(h, b, size, align)
}

// Compile-time interface checks
var (
	_ Reallocator        = (*HeapAllocator)(nil)
	_ AlignedReallocator = (*HeapAllocator)(nil)
)
