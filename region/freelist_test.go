package region

import "testing"

// checkInvariants verifies the free-list invariants: sorted by offset,
// pairwise disjoint, never address-adjacent.
func checkInvariants(t *testing.T, fl *freeList) {
	t.Helper()
	for i := 1; i < len(fl.blocks); i++ {
		prev, cur := fl.blocks[i-1], fl.blocks[i]
		if prev.off+prev.size > cur.off {
			t.Fatalf("blocks %d and %d overlap or are unsorted: %+v %+v", i-1, i, prev, cur)
		}
		if prev.off+prev.size == cur.off {
			t.Fatalf("blocks %d and %d are adjacent, should have merged: %+v %+v", i-1, i, prev, cur)
		}
	}
	for i, b := range fl.blocks {
		if b.size <= 0 {
			t.Fatalf("block %d has non-positive size: %+v", i, b)
		}
	}
}

func Test_FreeList_TakeBestFit(t *testing.T) {
	fl := &freeList{blocks: []freeBlock{
		{off: 0, size: 256},
		{off: 512, size: 64},
		{off: 1024, size: 128},
	}}

	// 64 fits exactly in the middle block.
	off, ok := fl.take(64)
	if !ok || off != 512 {
		t.Fatalf("take(64): got (%d, %v), want (512, true)", off, ok)
	}
	checkInvariants(t, fl)

	// 100 best-fits the 128 block, which is split.
	off, ok = fl.take(100)
	if !ok || off != 1024 {
		t.Fatalf("take(100): got (%d, %v), want (1024, true)", off, ok)
	}
	checkInvariants(t, fl)
	if got := fl.total(); got != 256+28 {
		t.Fatalf("total after split: got %d, want %d", got, 256+28)
	}

	// Larger than any single block fails even though total would cover it.
	if _, ok := fl.take(260); ok {
		t.Fatal("take(260) should fail: no contiguous block is large enough")
	}
	checkInvariants(t, fl)
}

func Test_FreeList_TakeExhausts(t *testing.T) {
	fl := &freeList{}
	fl.put(0, 128)

	off, ok := fl.take(128)
	if !ok || off != 0 {
		t.Fatalf("take(128): got (%d, %v), want (0, true)", off, ok)
	}
	if len(fl.blocks) != 0 {
		t.Fatalf("expected empty list, got %d blocks", len(fl.blocks))
	}
	if _, ok := fl.take(1); ok {
		t.Fatal("take on empty list should fail")
	}
}

func Test_FreeList_PutMerges(t *testing.T) {
	cases := []struct {
		name       string
		seed       []freeBlock
		off, size  int64
		wantBlocks int
		wantTotal  int64
	}{
		{"no neighbors", []freeBlock{{0, 16}, {64, 16}}, 32, 16, 3, 48},
		{"merge prev", []freeBlock{{0, 32}}, 32, 16, 1, 48},
		{"merge next", []freeBlock{{48, 16}}, 32, 16, 1, 32},
		{"merge both", []freeBlock{{0, 32}, {48, 16}}, 32, 16, 1, 64},
		{"into empty", nil, 32, 16, 1, 16},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fl := &freeList{blocks: append([]freeBlock(nil), tc.seed...)}
			fl.put(tc.off, tc.size)
			checkInvariants(t, fl)
			if len(fl.blocks) != tc.wantBlocks {
				t.Fatalf("block count: got %d, want %d (%+v)", len(fl.blocks), tc.wantBlocks, fl.blocks)
			}
			if got := fl.total(); got != tc.wantTotal {
				t.Fatalf("total: got %d, want %d", got, tc.wantTotal)
			}
		})
	}
}

func Test_FreeList_PutSortedInsert(t *testing.T) {
	fl := &freeList{}
	// Insert out of order with gaps so nothing merges.
	fl.put(64, 16)
	fl.put(0, 16)
	fl.put(128, 16)
	fl.put(96, 16)
	checkInvariants(t, fl)
	if len(fl.blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d: %+v", len(fl.blocks), fl.blocks)
	}
	for i, want := range []int64{0, 64, 96, 128} {
		if fl.blocks[i].off != want {
			t.Fatalf("block %d offset: got %d, want %d", i, fl.blocks[i].off, want)
		}
	}
}

func Test_FreeList_Overlaps(t *testing.T) {
	fl := &freeList{blocks: []freeBlock{{64, 32}, {256, 64}}}

	cases := []struct {
		off, size int64
		want      bool
	}{
		{0, 64, false},    // ends exactly where a block starts
		{0, 65, true},     // one byte into the first block
		{64, 32, true},    // exact block
		{80, 8, true},     // inside a block
		{96, 160, false},  // gap between blocks
		{95, 2, true},     // straddles block end
		{320, 16, false},  // past the last block
		{312, 16, true},   // straddles last block end
	}
	for _, tc := range cases {
		if got := fl.overlaps(tc.off, tc.size); got != tc.want {
			t.Fatalf("overlaps(%d, %d): got %v, want %v", tc.off, tc.size, got, tc.want)
		}
	}
}
