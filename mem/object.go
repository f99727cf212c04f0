package mem

// Destroyer is implemented by objects whose lifetime is coupled to
// allocator-owned memory.
type Destroyer interface {
	// Destroy releases the object's internal state. DeleteObject calls it
	// exactly once, immediately before freeing the backing memory.
	Destroy()

	// Memory returns the allocator-owned block backing the object.
	Memory() []byte
}

// DeleteObject destroys obj and frees its backing memory through a. This is
// the only place object lifetime and block lifetime are coupled. A nil obj
// is a no-op.
func DeleteObject(a Allocator, obj Destroyer) {
	if obj == nil {
		return
	}
	obj.Destroy()
	Free(a, obj.Memory())
}
