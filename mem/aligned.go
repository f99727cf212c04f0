package mem

import (
	"encoding/binary"
	"unsafe"
)

// Aligned emulation over a plain allocator.
//
// The raw block is size+align bytes. The payload starts at the first
// address past a 4-byte header slot that is a multiple of align, and the
// distance from the raw base to the payload is stored in the header. The
// header is the only bookkeeping: free and realloc read it back to recover
// the raw block.
//
// Layout:
//
//	base                    base+off
//	| slack | 4-byte offset | payload (size bytes) | slack |
//	                        ^ aligned to align
//
// Invariant: headerSize <= off <= align, so size+align always has room.
// This holds because the backing allocator returns bases aligned to at
// least NaturalAlignment and align is clamped to NaturalAlignment or more.

const headerSize = 4

// payloadBase returns the address of the first payload byte.
func payloadBase(b []byte) unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(b))
}

// rawBlock recovers the backing block of an aligned payload by reading the
// offset header stored immediately before it. The returned slice begins at
// the raw base and covers the header and payload; trailing slack is not
// included, which is fine because block identity is the base address.
func rawBlock(b []byte) ([]byte, int) {
	p := payloadBase(b)
	hdr := unsafe.Slice((*byte)(unsafe.Add(p, -headerSize)), headerSize)
	off := int(binary.NativeEndian.Uint32(hdr))
	base := (*byte)(unsafe.Add(p, -off))
	return unsafe.Slice(base, off+len(b)), off
}

// allocAligned emulates aligned allocation on top of a plain allocator.
func allocAligned(a Allocator, size, align int) []byte {
	align = max(align, NaturalAlignment)
	raw := a.Alloc(size + align)
	if raw == nil {
		return nil
	}
	base := unsafe.Pointer(unsafe.SliceData(raw))
	aligned := AlignPtr(base, headerSize, uintptr(align))
	off := int(uintptr(aligned) - uintptr(base))
	binary.NativeEndian.PutUint32(raw[off-headerSize:off], uint32(off))
	return raw[off : off+size : off+size]
}

// freeAligned releases a block allocated by allocAligned.
func freeAligned(a Allocator, b []byte) {
	raw, _ := rawBlock(b)
	a.Free(raw)
}

// reallocAligned resizes a block allocated by allocAligned.
//
// The backing reallocator only guarantees natural alignment and may move
// the block on any call, so the aligned offset is re-derived every time.
// When the offset is unchanged the payload already sits at an aligned
// address inside the (possibly relocated) block and no bytes move. When it
// changes, the payload is shifted within the block; the regions may
// overlap, which copy handles.
func reallocAligned(r Reallocator, b []byte, size, align int) []byte {
	if b == nil {
		return allocAligned(r, size, align)
	}
	align = max(align, NaturalAlignment)
	raw, off := rawBlock(b)
	raw = r.Realloc(raw, size+align)
	if raw == nil {
		return nil
	}
	base := unsafe.Pointer(unsafe.SliceData(raw))
	aligned := AlignPtr(base, headerSize, uintptr(align))
	newOff := int(uintptr(aligned) - uintptr(base))
	if newOff != off {
		copy(raw[newOff:newOff+size], raw[off:min(off+size, len(raw))])
	}
	binary.NativeEndian.PutUint32(raw[newOff-headerSize:newOff], uint32(newOff))
	return raw[newOff : newOff+size : newOff+size]
}
