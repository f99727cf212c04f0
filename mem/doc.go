// Package mem provides a pluggable memory-allocation abstraction with
// support for alignment beyond the natural alignment of the backing
// allocator.
//
// # Overview
//
// Memory blocks are plain byte slices. A block's identity is the address of
// its first byte: Free and Realloc must be handed the exact slice (or a
// reslice starting at the same base) that the allocator returned.
//
// # Capability Interfaces
//
// Concrete allocators declare what they can do by implementing one or more
// capability interfaces:
//
//   - Allocator: Alloc(size) / Free(b)
//   - Reallocator: Allocator + Realloc(b, size)
//   - AlignedAllocator: AllocAligned(size, align) / FreeAligned(b)
//   - AlignedReallocator: AlignedAllocator + ReallocAligned(b, size, align)
//
// Client code is written once against the package-level dispatch functions
// (Alloc, Free, Realloc, AllocAligned, FreeAligned, ReallocAligned). When
// the concrete allocator natively supports an aligned operation it is called
// directly; otherwise alignment is emulated on top of the plain allocation
// path.
//
// # Aligned Emulation
//
// The emulation over-allocates by the requested alignment, rounds the base
// address up, and stores the resulting offset as a 4-byte header in the
// bytes immediately preceding the payload. The header is read back on free
// and realloc to recover the original block. Passing a slice that did not
// come from the aligned path is undefined behavior; no marker validation is
// performed.
//
// # Allocation Failure
//
// Exhaustion is reported as a nil result from Alloc/Realloc and their
// aligned counterparts. Callers must check. Precondition violations
// (non-power-of-two alignment, negative size) panic.
//
// # Thread Safety
//
// The package-level functions add no locking of their own. HeapAllocator is
// safe for concurrent use; other allocators document their own guarantees.
// Concurrent aligned operations on the same block are a caller-level race.
package mem
