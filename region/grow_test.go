package region

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// Test_Grow_PreservesPointers verifies the defining guarantee of Resize:
// growth never relocates existing allocations.
func Test_Grow_PreservesPointers(t *testing.T) {
	r := newTestRegion(t, mib, 10*mib)

	// Fill most of the region and remember where everything lives.
	live, err := r.Alloc(768 * kib)
	require.NoError(t, err)
	addrBefore := uintptr(unsafe.Pointer(unsafe.SliceData(live)))
	for i := range live {
		live[i] = byte(i)
	}

	require.NoError(t, r.Resize(2*mib))
	require.GreaterOrEqual(t, r.Size(), int64(2*mib))

	addrAfter := uintptr(unsafe.Pointer(unsafe.SliceData(live)))
	require.Equal(t, addrBefore, addrAfter, "base must not move on growth")
	for i := range live {
		require.Equal(t, byte(i), live[i], "byte %d changed across Resize", i)
	}

	// The grown tail satisfies a request the old size could not.
	tail, err := r.Alloc(mib)
	require.NoError(t, err)
	require.NoError(t, r.Free(tail))
	require.NoError(t, r.Free(live))
	require.Equal(t, r.Size(), r.FreeSpace())
}

// Test_Grow_WithLiveAllocationPastOldMiddle mirrors the 1 MiB + 256 KiB
// scenario: growth succeeds around a live allocation and new requests are
// served from the tail.
func Test_Grow_WithLiveAllocationPastOldMiddle(t *testing.T) {
	r := newTestRegion(t, 2*mib, 10*mib)

	live, err := r.Alloc(mib + 256*kib)
	require.NoError(t, err)
	live[0], live[len(live)-1] = 0xAB, 0xCD

	require.NoError(t, r.Resize(3*mib))
	require.GreaterOrEqual(t, r.Size(), int64(3*mib))
	require.Equal(t, byte(0xAB), live[0])
	require.Equal(t, byte(0xCD), live[len(live)-1])

	extra, err := r.Alloc(256 * kib)
	require.NoError(t, err)
	require.NoError(t, r.Free(extra))
}

// Test_Grow_RejectedBelowLiveBytes mirrors the shrink scenario: a region
// holding more live bytes than the requested size rejects the resize and
// keeps its size.
func Test_Grow_RejectedBelowLiveBytes(t *testing.T) {
	r := newTestRegion(t, 2*mib, 10*mib)

	_, err := r.Alloc(mib + 256*kib)
	require.NoError(t, err)

	require.ErrorIs(t, r.Resize(mib), ErrShrink)
	require.Equal(t, int64(2*mib), r.Size())
}

func Test_Grow_TailMergesWithTrailingFreeBlock(t *testing.T) {
	plat := &fakePlatform{page: 4096}
	r, err := newRegion(plat, 8192, 64*1024)
	require.NoError(t, err)

	// Occupy the front so the free list is a single trailing block.
	head, err := r.Alloc(1024)
	require.NoError(t, err)
	require.Len(t, r.free.blocks, 1)

	require.NoError(t, r.Resize(16384))
	require.Len(t, r.free.blocks, 1, "grown tail must merge with the trailing free block")
	require.Equal(t, int64(16384-1024), r.FreeSpace())

	// With the tail allocated, growth creates a fresh trailing block.
	rest, err := r.Alloc(r.FreeSpace())
	require.NoError(t, err)
	require.Zero(t, r.FreeSpace())
	require.NoError(t, r.Resize(32768))
	require.Len(t, r.free.blocks, 1)
	require.Equal(t, int64(16384), r.FreeSpace())

	require.NoError(t, r.Free(rest))
	require.NoError(t, r.Free(head))
	require.Equal(t, r.Size(), r.FreeSpace())
}
