package mem

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"unsafe"
)

// TrackingAllocator wraps a Reallocator and records every outstanding block
// together with the call site that allocated it. It panics on a free of a
// block it does not own (double free or foreign pointer), and Check reports
// leaks at the end of a block's expected lifetime.
//
// The wrapper is a diagnostic layer, not part of the allocation contract:
// the recorded call sites are purely informational. The internal maps are
// mutex-protected, but concurrent operations on the same block remain a
// caller-level race, as with any allocator in this package.
type TrackingAllocator struct {
	mu     sync.Mutex
	inner  Reallocator
	blocks map[uintptr]blockInfo
	bytes  int
}

type blockInfo struct {
	size int
	site string
}

// NewTracking returns a tracking wrapper around inner.
func NewTracking(inner Reallocator) *TrackingAllocator {
	return &TrackingAllocator{
		inner:  inner,
		blocks: make(map[uintptr]blockInfo),
	}
}

// Alloc allocates through the inner allocator and records the block.
func (t *TrackingAllocator) Alloc(size int) []byte {
	b := t.inner.Alloc(size)
	if b == nil {
		return nil
	}
	t.record(b, size, callSite(1))
	return b
}

// Free verifies ownership, forgets the block, and frees it. Panics with
// ErrUntrackedFree when b is not an outstanding block of this allocator.
func (t *TrackingAllocator) Free(b []byte) {
	if b == nil {
		return
	}
	t.forget(b)
	t.inner.Free(b)
}

// Realloc resizes a tracked block, re-recording it under its new base
// address. A nil result means the inner allocator failed; the original
// block stays tracked and intact.
func (t *TrackingAllocator) Realloc(b []byte, size int) []byte {
	if b == nil {
		nb := t.inner.Realloc(nil, size)
		if nb == nil {
			return nil
		}
		t.record(nb, size, callSite(1))
		return nb
	}
	t.assertTracked(b)
	nb := t.inner.Realloc(b, size)
	if nb == nil {
		return nil
	}
	t.forget(b)
	t.record(nb, size, callSite(1))
	return nb
}

// Outstanding returns the number of live blocks.
func (t *TrackingAllocator) Outstanding() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.blocks)
}

// AllocatedBytes returns the total size of live blocks.
func (t *TrackingAllocator) AllocatedBytes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bytes
}

// Check returns nil when no blocks are outstanding, and an error wrapping
// ErrOutstanding that lists the leaked call sites otherwise.
func (t *TrackingAllocator) Check() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.blocks) == 0 {
		return nil
	}
	sites := make([]string, 0, len(t.blocks))
	for _, info := range t.blocks {
		sites = append(sites, fmt.Sprintf("%s (%d bytes)", info.site, info.size))
	}
	sort.Strings(sites)
	return fmt.Errorf("%w: %d blocks, %d bytes: %v",
		ErrOutstanding, len(t.blocks), t.bytes, sites)
}

func (t *TrackingAllocator) record(b []byte, size int, site string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.blocks[sliceBase(b)] = blockInfo{size: size, site: site}
	t.bytes += size
}

func (t *TrackingAllocator) forget(b []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	base := sliceBase(b)
	info, ok := t.blocks[base]
	if !ok {
		panic(fmt.Errorf("%w: %#x", ErrUntrackedFree, base))
	}
	delete(t.blocks, base)
	t.bytes -= info.size
}

func (t *TrackingAllocator) assertTracked(b []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	base := sliceBase(b)
	if _, ok := t.blocks[base]; !ok {
		panic(fmt.Errorf("%w: %#x", ErrUntrackedFree, base))
	}
}

func sliceBase(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

func callSite(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", file, line)
}

var _ Reallocator = (*TrackingAllocator)(nil)
