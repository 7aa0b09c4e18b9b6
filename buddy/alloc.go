package buddy

import (
	"fmt"
	"os"
)

// Alloc reserves a block of at least size bytes and returns its address,
// which is base-relative and aligned to the block's own size. The block
// chosen is the smallest power-of-two class >= size that the current
// fragmentation allows, at the lowest free address of that class. A size of
// zero rounds up to one minimum block.
//
// Alloc fails with ErrTooBig when size exceeds the region, and with
// ErrNoSpace when no block of the needed class is free - whether the region
// is fully allocated or merely fragmented.
func (rg *Region) Alloc(size uint32) (Addr, error) {
	rg.stats.AllocCalls++

	if size > rg.totalSize {
		rg.stats.AllocFails++
		return 0, ErrTooBig
	}
	// Whole region handed out as one block: nothing to search.
	if rg.used.Test(0) {
		rg.stats.AllocFails++
		return 0, ErrNoSpace
	}

	// Iterative depth-first descent. The stack never exceeds mapSize
	// frames: each level adds at most two and the tree has log2(mapSize)
	// levels.
	st := rg.stack[:0]
	st = append(st, frame{k: 0, size: rg.totalSize, off: 0})

	for len(st) > 0 {
		f := st[len(st)-1]
		st = st[:len(st)-1]
		k, s, off := f.k, f.size, f.off

		if rg.used.Test(k) {
			continue
		}
		// Would splitting further still fit the request? If not (or the
		// block is already minimal), take this block whole - unless its
		// capacity is committed to sub-blocks.
		if size > s/2 || s == rg.minSize {
			if !rg.split.Test(k) {
				rg.used.Set(k)
				rg.stats.BytesReserved += uint64(s)
				rg.stats.blocksOut++
				if rg.stats.blocksOut > rg.stats.MaxOutstanding {
					rg.stats.MaxOutstanding = rg.stats.blocksOut
				}
				if logAlloc {
					fmt.Fprintf(os.Stderr, "[buddy] alloc size=%d node=%d block=%d addr=%08X\n",
						size, k, s, rg.base+off)
				}
				return rg.base + off, nil
			}
		}
		s /= 2
		if size > s {
			// Subtree too small even after splitting; backtrack.
			continue
		}
		rg.split.Set(k)
		// Right child pushed first so the lower-address child is tried
		// first; this fixes which block wins among equal candidates.
		st = append(st, frame{k: rightOf(k), size: s, off: off + s})
		st = append(st, frame{k: leftOf(k), size: s, off: off})
	}

	rg.stats.AllocFails++
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[buddy] alloc size=%d: no block free\n", size)
	}
	return 0, ErrNoSpace
}
