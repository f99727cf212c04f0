package mem

// Package-level call surface. Generic code allocates through these
// functions so it works against any capability set; aligned operations are
// dispatched to the allocator's native entry points when it has them and
// emulated otherwise.

// Alloc requests a block of size bytes from a. Returns nil on exhaustion.
func Alloc(a Allocator, size int) []byte {
	return a.Alloc(size)
}

// Free releases a block obtained from Alloc. A nil b is a no-op.
func Free(a Allocator, b []byte) {
	if b == nil {
		return
	}
	a.Free(b)
}

// Realloc resizes a block obtained from Alloc, preserving the first
// min(len(b), size) bytes. A nil b behaves as Alloc; a nil result means
// exhaustion and leaves b intact.
func Realloc(r Reallocator, b []byte, size int) []byte {
	return r.Realloc(b, size)
}

// AllocAligned returns a block of size bytes whose base address is a
// multiple of align. align must be a power of two; it may exceed the
// natural alignment of the backing allocator.
func AllocAligned(a Allocator, size, align int) []byte {
	checkAligned(size, align)
	if aa, ok := a.(AlignedAllocator); ok {
		return aa.AllocAligned(size, align)
	}
	return allocAligned(a, size, align)
}

// FreeAligned releases a block obtained from AllocAligned. A nil b is a
// no-op. Passing a block that did not come from the aligned path is
// undefined behavior.
func FreeAligned(a Allocator, b []byte) {
	if b == nil {
		return
	}
	if aa, ok := a.(AlignedAllocator); ok {
		aa.FreeAligned(b)
		return
	}
	freeAligned(a, b)
}

// ReallocAligned resizes a block obtained from AllocAligned, preserving
// content and alignment. A nil b behaves as AllocAligned.
func ReallocAligned(r Reallocator, b []byte, size, align int) []byte {
	checkAligned(size, align)
	if ar, ok := r.(AlignedReallocator); ok {
		return ar.ReallocAligned(b, size, align)
	}
	return reallocAligned(r, b, size, align)
}

func checkAligned(size, align int) {
	if size < 0 {
		panic("mem: negative size")
	}
	if !IsPowerOfTwo(align) {
		panic("mem: alignment must be a power of two")
	}
}
