package region

import "sort"

// freeBlock is one unused byte range within the region. Offsets are
// relative to the region base.
type freeBlock struct {
	off  int64
	size int64
}

// freeList is an ordered, auto-coalescing set of free ranges: blocks are
// sorted by offset, pairwise disjoint, and never address-adjacent. A
// sorted slice is sufficient for expected block counts; every operation is
// a plain scan or binary search.
type freeList struct {
	blocks []freeBlock
}

// take carves size bytes out of the smallest block that fits (best fit,
// lowest offset on ties) and returns the carved offset. The remainder of
// a split block stays free. Returns false when no single block is large
// enough, even if the total free space would cover the request.
func (fl *freeList) take(size int64) (int64, bool) {
	best := -1
	for i := range fl.blocks {
		if fl.blocks[i].size < size {
			continue
		}
		if best == -1 || fl.blocks[i].size < fl.blocks[best].size {
			best = i
		}
	}
	if best == -1 {
		return 0, false
	}

	b := &fl.blocks[best]
	off := b.off
	if b.size == size {
		fl.blocks = append(fl.blocks[:best], fl.blocks[best+1:]...)
	} else {
		b.off += size
		b.size -= size
	}
	return off, true
}

// put returns [off, off+size) to the list at its sorted position, merging
// with the preceding block when prev.off+prev.size == off and with the
// following block when off+size == next.off. The caller guarantees the
// range is disjoint from every block already in the list.
func (fl *freeList) put(off, size int64) {
	i := sort.Search(len(fl.blocks), func(i int) bool {
		return fl.blocks[i].off > off
	})

	mergePrev := i > 0 && fl.blocks[i-1].off+fl.blocks[i-1].size == off
	mergeNext := i < len(fl.blocks) && off+size == fl.blocks[i].off

	switch {
	case mergePrev && mergeNext:
		fl.blocks[i-1].size += size + fl.blocks[i].size
		fl.blocks = append(fl.blocks[:i], fl.blocks[i+1:]...)
	case mergePrev:
		fl.blocks[i-1].size += size
	case mergeNext:
		fl.blocks[i].off = off
		fl.blocks[i].size += size
	default:
		fl.blocks = append(fl.blocks, freeBlock{})
		copy(fl.blocks[i+1:], fl.blocks[i:])
		fl.blocks[i] = freeBlock{off: off, size: size}
	}
}

// overlaps reports whether any part of [off, off+size) is already free.
func (fl *freeList) overlaps(off, size int64) bool {
	end := off + size
	i := sort.Search(len(fl.blocks), func(i int) bool {
		return fl.blocks[i].off+fl.blocks[i].size > off
	})
	return i < len(fl.blocks) && fl.blocks[i].off < end
}

// total sums the free block sizes. O(blocks).
func (fl *freeList) total() int64 {
	var sum int64
	for i := range fl.blocks {
		sum += fl.blocks[i].size
	}
	return sum
}
