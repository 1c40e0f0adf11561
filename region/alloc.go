package region

import (
	"fmt"
	"os"
	"unsafe"
)

// allocAlign is the guaranteed alignment of returned pointers. Requested
// sizes are rounded up to a multiple of it, and the committed prefix is a
// page multiple, so every carved offset stays aligned.
const allocAlign = 16

// Allocation tracing - controlled by the REGIONKIT_LOG_ALLOC environment
// variable. Only failure paths log, never successful hot-path operations.
var logAlloc = os.Getenv("REGIONKIT_LOG_ALLOC") != ""

// Alloc carves size bytes out of the committed range and returns them as
// a sub-slice of the region. The returned memory is NOT zero-filled. The
// exact slice must later be passed to Free.
//
// When no contiguous free block is large enough Alloc fails with
// ErrNoSpace and mutates nothing; freeing other allocations or growing
// via Resize and retrying the identical request is a valid recovery.
func (r *Region) Alloc(size int64) ([]byte, error) {
	if r.closed {
		return nil, ErrClosed
	}
	r.stats.AllocCalls++
	if size <= 0 {
		r.stats.AllocFailed++
		return nil, ErrSizeInvalid
	}
	if size > r.total {
		// No free block can be larger than the committed range. This also
		// keeps the alignment round-up below from overflowing on extreme
		// sizes.
		r.stats.AllocFailed++
		return nil, ErrNoSpace
	}

	need := alignUp(size, allocAlign)
	off, ok := r.free.take(need)
	if !ok {
		r.stats.AllocFailed++
		if logAlloc {
			fmt.Fprintf(os.Stderr,
				"[REGION] alloc %d (aligned %d) failed: %d bytes free in %d blocks\n",
				size, need, r.free.total(), len(r.free.blocks))
		}
		return nil, ErrNoSpace
	}
	r.stats.BytesAllocated += need

	// Length is the requested size; capacity covers the alignment padding,
	// which belongs to this allocation.
	return r.mem[off : off+size : off+need], nil
}

// Free returns the slice obtained from Alloc to the free list, coalescing
// with adjacent free ranges. It fails with ErrBadFree, mutating nothing,
// when b does not point into the region, when the implied range leaves the
// committed prefix, or when any part of the range is already free (double
// free, foreign pointer). The slice contents are left untouched.
func (r *Region) Free(b []byte) error {
	if r.closed {
		return ErrClosed
	}
	r.stats.FreeCalls++
	if len(b) == 0 {
		r.stats.FreeFailed++
		return ErrBadFree
	}

	off, ok := r.offsetOf(unsafe.Pointer(unsafe.SliceData(b)))
	if !ok {
		r.stats.FreeFailed++
		return ErrBadFree
	}
	need := alignUp(int64(len(b)), allocAlign)
	if off%allocAlign != 0 || off+need > r.total || r.free.overlaps(off, need) {
		r.stats.FreeFailed++
		if logAlloc {
			fmt.Fprintf(os.Stderr,
				"[REGION] free of %d bytes at offset %d rejected\n", len(b), off)
		}
		return ErrBadFree
	}

	r.free.put(off, need)
	r.stats.BytesFreed += need
	return nil
}

// Owns reports whether b points into the region's committed range. Used
// by multiplexing façades to route Free calls among backing allocators.
func (r *Region) Owns(b []byte) bool {
	if r.closed || len(b) == 0 {
		return false
	}
	_, ok := r.offsetOf(unsafe.Pointer(unsafe.SliceData(b)))
	return ok
}

// OwnsPtr is the raw-pointer form of Owns, for callers that carry a
// pointer rather than the original slice.
func (r *Region) OwnsPtr(p unsafe.Pointer) bool {
	if r.closed {
		return false
	}
	_, ok := r.offsetOf(p)
	return ok
}

// FreeSpace reports the sum of all free ranges in bytes. Fragmentation
// can make an Alloc of less than FreeSpace fail; see Alloc.
func (r *Region) FreeSpace() int64 {
	if r.closed {
		return 0
	}
	return r.free.total()
}

// offsetOf translates p into an offset relative to the region base,
// reporting false when p lies outside the committed range. The mapping is
// off-heap and never moves, so the address comparison is stable.
func (r *Region) offsetOf(p unsafe.Pointer) (int64, bool) {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(r.mem)))
	addr := uintptr(p)
	if addr < base || addr >= base+uintptr(r.total) {
		return 0, false
	}
	return int64(addr - base), true
}
