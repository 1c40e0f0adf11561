package region

import (
	"fmt"
	"math"

	"github.com/regionkit/regionkit/internal/vmem"
)

// platform abstracts the virtual-memory primitives the region consumes:
// reserve address space, commit pages, release the reservation. The
// default implementation delegates to internal/vmem; tests substitute a
// failing fake to exercise construction failures.
type platform interface {
	Reserve(n int) ([]byte, error)
	Commit(mem []byte) error
	Release(mem []byte) error
	PageSize() int
}

type osPlatform struct{}

func (osPlatform) Reserve(n int) ([]byte, error) { return vmem.Reserve(n) }
func (osPlatform) Commit(mem []byte) error       { return vmem.Commit(mem) }
func (osPlatform) Release(mem []byte) error      { return vmem.Release(mem) }
func (osPlatform) PageSize() int                 { return vmem.PageSize() }

// Region owns one reserved, address-stable byte range and hands out
// sub-ranges of its committed prefix. Instances are plain values with no
// shared state; they are not safe for concurrent use.
type Region struct {
	plat platform

	mem     []byte // full reservation; mem[:total] is committed
	total   int64  // committed, usable length
	reserve int64  // growth cap, fixed at construction
	page    int64  // commit granularity

	free   freeList
	stats  Stats
	closed bool
}

// Region implements the Allocator interface consumed by façades.
var _ Allocator = (*Region)(nil)

// New reserves reserveSize bytes of address space and commits commitSize
// of it up front. Both sizes are rounded up to the platform page size;
// reserveSize is the hard cap for later Resize calls. Requires
// reserveSize >= commitSize > 0.
//
// On failure no state is retained and the returned *Region is nil.
func New(commitSize, reserveSize int64) (*Region, error) {
	return newRegion(osPlatform{}, commitSize, reserveSize)
}

func newRegion(plat platform, commitSize, reserveSize int64) (*Region, error) {
	if commitSize <= 0 || reserveSize < commitSize {
		return nil, ErrSizeInvalid
	}
	page := int64(plat.PageSize())
	if reserveSize > math.MaxInt64-page+1 {
		// Rounding up to the page size would overflow.
		return nil, ErrSizeInvalid
	}
	commit := alignUp(commitSize, page)
	reserve := alignUp(reserveSize, page)

	mem, err := plat.Reserve(int(reserve))
	if err != nil {
		return nil, fmt.Errorf("region: reserve %d bytes: %w", reserve, err)
	}
	if err := plat.Commit(mem[:commit]); err != nil {
		// Roll back the reservation; construction leaves nothing behind.
		_ = plat.Release(mem)
		return nil, fmt.Errorf("region: commit %d bytes: %w", commit, err)
	}

	r := &Region{
		plat:    plat,
		mem:     mem,
		total:   commit,
		reserve: reserve,
		page:    page,
	}
	r.free.put(0, commit)
	return r, nil
}

// Resize grows the usable range to at least newTotal bytes (rounded up to
// the page size) by committing pages from the existing reservation. The
// base address never changes, so every slice returned by a prior Alloc
// stays valid with unchanged contents.
//
// Requests below the current size fail with ErrShrink; this also covers
// any request below the bytes currently in use. Requests beyond the
// reservation fail with ErrExceedsReserve. Failures leave the region
// unchanged.
func (r *Region) Resize(newTotal int64) error {
	if r.closed {
		return ErrClosed
	}
	r.stats.ResizeCalls++
	if newTotal < r.total {
		return ErrShrink
	}
	if newTotal > r.reserve {
		return ErrExceedsReserve
	}
	// reserve is page-aligned, so the round-up can neither pass the cap
	// nor overflow.
	want := alignUp(newTotal, r.page)
	if want == r.total {
		return nil
	}
	if err := r.plat.Commit(r.mem[r.total:want]); err != nil {
		return fmt.Errorf("region: commit %d bytes: %w", want-r.total, err)
	}
	// The new tail becomes free space, merging with a trailing free block
	// if one ends exactly at the old total.
	r.free.put(r.total, want-r.total)
	r.total = want
	return nil
}

// Close releases the entire reservation. The region is unusable
// afterwards: every operation fails with ErrClosed and all previously
// returned slices are invalid.
func (r *Region) Close() error {
	if r.closed {
		return ErrClosed
	}
	r.closed = true
	mem := r.mem
	r.mem = nil
	r.free.blocks = nil
	r.total = 0
	return r.plat.Release(mem)
}

// Size reports the committed, usable length in bytes.
func (r *Region) Size() int64 { return r.total }

// ReserveSize reports the growth cap fixed at construction.
func (r *Region) ReserveSize() int64 { return r.reserve }

// PageSize reports the commit granularity in bytes.
func (r *Region) PageSize() int64 { return r.page }

// Stats returns a copy of the region's operation counters.
func (r *Region) Stats() Stats { return r.stats }

// alignUp rounds n up to a multiple of align. align must be a power of two.
func alignUp(n, align int64) int64 {
	return (n + align - 1) &^ (align - 1)
}
