package buddy

import (
	"fmt"
	"os"
)

// Free releases the block at addr, which must be an address previously
// returned by Alloc on this region and not yet freed. Freeing anything else
// is undefined, except that addresses outside the region or not aligned to
// the minimum block size are rejected with ErrBadAddr.
//
// The owning tree node is rediscovered from the address: addr names a leaf,
// and the owner is the first used node on the path from that leaf to the
// root (allocations sit exactly at the level of their block class). After
// the owner is cleared, the remaining ancestors are walked and every parent
// whose two children are now whole and free is un-split, so freed buddies
// coalesce back into the largest possible block.
func (rg *Region) Free(addr Addr) error {
	rg.stats.FreeCalls++

	if addr < rg.base {
		return ErrBadAddr
	}
	disp := addr - rg.base
	if disp >= rg.totalSize || disp%rg.minSize != 0 {
		return ErrBadAddr
	}

	d := int(disp / rg.minSize)
	k := rg.mapSize + d - 1

	// Clear the leaf outright; if the allocation lives at an ancestor these
	// bits are already clear.
	rg.used.Clear(k)
	rg.split.Clear(k)

	// Climb to the owning node.
	owner := k
	size := rg.minSize
	for j := k; j > 0; {
		j = parentOf(j)
		size *= 2
		if rg.used.Test(j) {
			rg.used.Clear(j)
			rg.split.Clear(j)
			owner = j
			break
		}
	}
	if owner == k {
		size = rg.minSize
	}
	rg.stats.BytesReleased += uint64(size)
	if rg.stats.blocksOut > 0 {
		rg.stats.blocksOut--
	}

	// Merge pass: from the owner up, un-split every parent whose children
	// are both unallocated and unsplit.
	for k = owner; k > 0; k = parentOf(k) {
		b := buddyOf(k)
		if !rg.used.Test(k) && !rg.used.Test(b) && !rg.split.Test(k) && !rg.split.Test(b) {
			rg.split.Clear(parentOf(k))
		}
	}

	if logAlloc {
		fmt.Fprintf(os.Stderr, "[buddy] free addr=%08X node=%d\n", addr, owner)
	}
	return nil
}
