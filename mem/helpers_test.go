package mem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// relocAllocator relocates on every Realloc. While the old block is still
// referenced the new one cannot share its base address, which forces the
// payload-move path in reallocAligned.
type relocAllocator struct{}

func (relocAllocator) Alloc(size int) []byte { return newBlock(size) }

func (relocAllocator) Free(b []byte) {}

func (relocAllocator) Realloc(b []byte, size int) []byte {
	nb := newBlock(size)
	copy(nb, b)
	return nb
}

// limitAllocator fails every allocation past its budget. Used to exercise
// nil-result propagation.
type limitAllocator struct {
	remaining int
}

func (l *limitAllocator) Alloc(size int) []byte {
	if l.remaining <= 0 {
		return nil
	}
	l.remaining--
	return newBlock(size)
}

func (l *limitAllocator) Free(b []byte) {}

func (l *limitAllocator) Realloc(b []byte, size int) []byte {
	if l.remaining <= 0 {
		return nil
	}
	l.remaining--
	nb := newBlock(size)
	copy(nb, b)
	return nb
}

// fillPattern writes a deterministic byte pattern derived from seed.
func fillPattern(b []byte, seed byte) {
	for i := range b {
		b[i] = seed + byte(i)
	}
}

// requirePattern verifies the first n bytes of b still hold the pattern.
func requirePattern(t *testing.T, b []byte, seed byte, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.Equal(t, seed+byte(i), b[i], "payload byte %d corrupted", i)
	}
}

var (
	_ Reallocator = relocAllocator{}
	_ Reallocator = (*limitAllocator)(nil)
)
