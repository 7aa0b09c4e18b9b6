package buddy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hansw/buddykit/internal/bitvec"
)

// newTestTable configures slot 0 with fresh storage for the given sizes and
// initializes it.
func newTestTable(t testing.TB, totalSize, minSize uint32, base Addr) *Table {
	t.Helper()

	mapSize := int(totalSize / minSize)
	treeSize := 2*mapSize - 1

	tbl := NewTable()
	err := tbl.Configure(0, Config{
		TotalSize: totalSize,
		MinSize:   minSize,
		Base:      base,
		Used:      bitvec.New(treeSize),
		Split:     bitvec.New(treeSize),
		Map:       make([]byte, mapSize+1),
	})
	require.NoError(t, err)
	require.NoError(t, tbl.Init(0))
	return tbl
}

// usedNodes returns the indices of all set used bits.
func usedNodes(rg *Region) []int {
	var out []int
	for k := 0; k < rg.TreeSize(); k++ {
		if rg.Used(k) {
			out = append(out, k)
		}
	}
	return out
}

// splitNodes returns the indices of all set split bits.
func splitNodes(rg *Region) []int {
	var out []int
	for k := 0; k < rg.TreeSize(); k++ {
		if rg.Split(k) {
			out = append(out, k)
		}
	}
	return out
}

// requireAllClear fails unless both bitmaps are fully clear.
func requireAllClear(t *testing.T, rg *Region) {
	t.Helper()
	require.Empty(t, usedNodes(rg), "used bits should be clear")
	require.Empty(t, splitNodes(rg), "split bits should be clear")
}

// requireNeverBoth fails if any node has both its used and split bit set.
func requireNeverBoth(t *testing.T, rg *Region) {
	t.Helper()
	for k := 0; k < rg.TreeSize(); k++ {
		if rg.Used(k) && rg.Split(k) {
			t.Fatalf("node %d is both used and split", k)
		}
	}
}

// leafIndex returns the tree index of the leaf covering byte offset disp.
func leafIndex(rg *Region, disp uint32) int {
	return rg.MapSize() + int(disp/rg.MinSize()) - 1
}
