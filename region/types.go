package region

// Allocator is the allocation surface a multiplexing façade consumes to
// route calls among several backing allocators. Owns lets the façade pick
// the backing allocator for a release without per-allocation type tags.
//
// *Region implements Allocator.
type Allocator interface {
	// Alloc carves size bytes out of the allocator's space.
	// The returned memory is not zero-filled.
	Alloc(size int64) ([]byte, error)

	// Free returns the exact slice obtained from Alloc.
	Free(b []byte) error

	// Resize grows the allocator's usable space to at least newTotal bytes.
	Resize(newTotal int64) error

	// Owns reports whether b points into this allocator's space.
	Owns(b []byte) bool

	// FreeSpace reports the sum of all free ranges in bytes.
	FreeSpace() int64
}

// Stats holds counters for instrumentation and tests. Byte counts are in
// rounded (16-byte aligned) units, matching what the free list tracks.
type Stats struct {
	AllocCalls     int   // total Alloc calls
	AllocFailed    int   // Alloc calls that returned an error
	FreeCalls      int   // total Free calls
	FreeFailed     int   // Free calls that returned an error
	ResizeCalls    int   // total Resize calls
	BytesAllocated int64 // total bytes handed out
	BytesFreed     int64 // total bytes returned
}
