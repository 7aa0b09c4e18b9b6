// Package buddy implements a binary-buddy memory allocator whose entire
// allocation state lives in two bitmaps overlaid on an implicit complete
// binary tree.
//
// # Overview
//
// The allocator manages a power-of-two sized region divided into power-of-two
// blocks. A block of 2^n bytes can be split into two buddies of 2^(n-1)
// bytes; freeing both buddies makes the parent block whole again. Unlike the
// classic free-list formulation, no list nodes are threaded through the
// managed memory: the allocator never reads or writes the region it manages.
// All bookkeeping is held in two bit arrays indexed by tree position:
//
//   - used: bit k set means node k's whole range is allocated as one block
//   - split: bit k set means node k was subdivided and allocation happened
//     at or below its children
//
// Metadata for a region of N minimum-size blocks is exactly 2*(2N-1) bits,
// fixed at configuration time. This suits firmware, kernels, and region
// allocators where allocator state must be small, static, and independent of
// virtual memory behavior.
//
// # Tree Layout
//
// The tree is implicit: node k's children are 2k+1 and 2k+2, its parent is
// (k-1)/2, and all nodes of level n occupy indices [2^n - 1, 2^(n+1) - 2].
// A node at level n covers totalSize>>n bytes. Leaves cover minSize bytes.
//
// # Regions
//
// A Table holds a small fixed number of independently configured regions.
// Each region borrows caller-owned storage for its lifetime: the used and
// split word slices, the base address, and an optional map buffer for the
// printer package. The core never allocates backing storage and never
// dereferences the base address, so a region can describe memory the Go
// runtime cannot touch (device RAM, another process's segment, a file).
//
// # Usage Example
//
//	tbl := buddy.NewDefaultTable() // region 0: 8 MiB total, 256 KiB blocks
//
//	addr, err := tbl.Alloc(0, 300*1024) // rounds up to a 512 KiB block
//	if err != nil {
//	    return err
//	}
//	// ... use [addr, addr+512K) ...
//	if err := tbl.Free(0, addr); err != nil {
//	    return err
//	}
//
// Additional regions are bound with Configure and reset with Init:
//
//	cfg := buddy.Config{
//	    TotalSize: 1 << 24,
//	    MinSize:   1 << 20,
//	    Base:      0x40000000,
//	    Used:      make([]uint32, bitvec.Words(31)),
//	    Split:     make([]uint32, bitvec.Words(31)),
//	}
//	if err := tbl.Configure(1, cfg); err != nil { ... }
//	if err := tbl.Init(1); err != nil { ... }
//
// # Allocation Strategy
//
// Alloc performs an iterative depth-first search over the tree, splitting
// blocks on the way down until it reaches the smallest block class that
// holds the request. The lower-address child is always tried first, so among
// equally sized candidates the lowest address wins, and the same sequence of
// operations always yields the same addresses.
//
// Free recovers the tree node from the address alone: the address names a
// leaf, and the owning node is the first used ancestor on the path from that
// leaf to the root. After clearing the owner, the free path walks the
// remaining ancestors and un-splits every parent whose two children have
// become whole and free, coalescing buddies back into larger blocks.
//
// # Thread Safety
//
// Nothing here is thread-safe. Every operation assumes exclusive access to
// its region for the duration of the call; callers that share a region
// across goroutines must serialize access themselves.
//
// # Related Packages
//
//   - github.com/hansw/buddykit/buddy/printer: occupancy map and address
//     table rendering, read-only
//   - github.com/hansw/buddykit/internal/bitvec: the word-packed bit array
//     backing the used/split state
package buddy
