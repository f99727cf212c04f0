package mem

import "unsafe"

// Alignment utilities. All alignments in this package must be powers of two.

// NaturalAlignment is the minimum alignment assumed of every backing
// allocator. The Go heap aligns all non-tiny allocations at least this
// strictly, and the aligned emulation clamps requested alignments up to it
// so that the size+align over-allocation always has room for the offset
// header.
const NaturalAlignment = 8

// IsPowerOfTwo reports whether n is a power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// AlignUp returns n rounded up to the next multiple of align.
//
// Example:
//
//	AlignUp(1, 8)  = 8
//	AlignUp(8, 8)  = 8
//	AlignUp(9, 8)  = 16
func AlignUp(n, align int) int {
	mask := align - 1
	return (n + mask) &^ mask
}

// AlignPtr reserves extra bytes of header space after p, then rounds the
// address up to the next multiple of align. The caller is responsible for
// ensuring the returned address, and the extra bytes preceding it, stay
// inside the same allocation.
func AlignPtr(p unsafe.Pointer, extra, align uintptr) unsafe.Pointer {
	mask := align - 1
	aligned := (uintptr(p) + extra + mask) &^ mask
	return unsafe.Add(p, aligned-uintptr(p))
}

// IsPtrAligned reports whether p is aligned to align.
func IsPtrAligned(p unsafe.Pointer, align uintptr) bool {
	return uintptr(p)&(align-1) == 0
}
