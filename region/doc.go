// Package region implements a virtual-memory-backed offset allocator.
//
// # Overview
//
// A Region reserves one large range of address space once, commits an
// initial prefix of it with physical memory, and then subdivides the
// committed prefix on demand into caller-sized allocations tracked by an
// ordered, coalescing free list. Because the reservation never moves,
// allocations are never relocated: a pointer returned by Alloc stays valid
// (with unchanged contents) across any sequence of Alloc, Free, and Resize
// calls until the Region is closed.
//
// # Usage Example
//
//	r, err := region.New(1<<20, 10<<20) // commit 1 MiB, reserve 10 MiB
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	buf, err := r.Alloc(4096)
//	if err != nil {
//	    return err // region.ErrNoSpace is a normal, recoverable outcome
//	}
//
//	// Write into buf... contents are NOT zeroed.
//
//	if err := r.Free(buf); err != nil {
//	    return err
//	}
//
//	// Grow the usable range without relocating live allocations.
//	if err := r.Resize(2 << 20); err != nil {
//	    return err
//	}
//
// # Allocation Contract
//
// Alloc returns a sub-slice of the committed range; the slice data pointer
// and length are the (pointer, size) pair the caller must hand back to
// Free. The allocator keeps no per-allocation metadata: Free validates a
// release purely against the free list, so it rejects foreign pointers,
// out-of-range sizes, and double frees, but it cannot detect freeing an
// aligned sub-range of a larger live allocation. Returned memory is not
// zero-filled.
//
// Sizes are rounded up to 16-byte multiples internally, so every returned
// pointer is 16-byte aligned. Free applies the same rounding to len(b),
// which is why the exact slice returned by Alloc must be passed back.
//
// # Growth
//
// Resize only grows. The committed range is extended in place by
// committing pages from the reservation made at construction; the base
// address never changes and no existing allocation is touched. Requests
// below the current size fail with ErrShrink, requests beyond the
// reservation with ErrExceedsReserve.
//
// After construction the committed length equals the usable length and no
// further platform calls happen on the Alloc/Free path; only Resize and
// Close talk to the OS again.
//
// # Free List
//
// Free ranges are kept sorted by offset, pairwise disjoint, and never
// address-adjacent: releases merge with both neighbors, so pure alloc/free
// cycling of same-sized blocks does not grow fragmentation. Allocation is
// best-fit (smallest block that fits, lowest offset on ties). Alloc can
// fail while total free space exceeds the request when no single
// contiguous block is large enough; that is a correct out-of-space
// outcome, recoverable by freeing, resizing, or falling back to another
// allocator.
//
// # Thread Safety
//
// Region instances are not thread-safe. Callers must synchronize access
// externally, treating each call as one indivisible critical section.
package region
