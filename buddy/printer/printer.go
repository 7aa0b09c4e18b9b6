// Package printer renders the occupancy of a buddy region for human
// inspection: a one-character-per-block map and a per-node address table.
// Everything here is read-only over the region's bitmaps; nothing in the
// allocator depends on this package.
package printer

import (
	"fmt"
	"io"

	"github.com/hansw/buddykit/buddy"
)

// Map block markers.
const (
	// FreeMark fills map positions not covered by any allocation.
	FreeMark = '-'

	// UsedMark fills map positions covered by exactly one allocation.
	UsedMark = 'U'

	// OverlapMark replaces positions claimed by more than one used node.
	// Two used bits covering the same block mean corrupted state, so a '*'
	// in the map is a diagnostic worth keeping.
	OverlapMark = '*'
)

// frame mirrors the allocator's tree walk, with sizes measured in leaf
// blocks instead of bytes.
type frame struct {
	k    int
	size int
	off  int
}

// BuildMap renders region occupancy, one character per minimum-size block:
// UsedMark where some used node covers the block, FreeMark where none does,
// OverlapMark where two claims collide. The region's configured map buffer
// is used when present, a transient one otherwise.
func BuildMap(rg *buddy.Region) string {
	n := rg.MapSize()
	m := rg.MapBuffer()
	if len(m) <= n {
		m = make([]byte, n+1)
	}
	for i := 0; i < n; i++ {
		m[i] = FreeMark
	}

	st := make([]frame, 0, n)
	st = append(st, frame{k: 0, size: n, off: 0})
	for len(st) > 0 {
		f := st[len(st)-1]
		st = st[:len(st)-1]

		if rg.Used(f.k) {
			fill(m, f.off, f.off+f.size)
		}
		if f.size == 1 {
			continue
		}
		s := f.size / 2
		st = append(st, frame{k: 2*f.k + 2, size: s, off: f.off + s})
		st = append(st, frame{k: 2*f.k + 1, size: s, off: f.off})
	}

	m[n] = 0
	return string(m[:n])
}

// fill marks [start,end) as used, flagging blocks already marked.
func fill(m []byte, start, end int) {
	for i := start; i < end; i++ {
		if m[i] == FreeMark {
			m[i] = UsedMark
		} else {
			m[i] = OverlapMark
		}
	}
}

// FprintMap writes the occupancy map to w between pipes, matching the
// classic debug output.
func FprintMap(w io.Writer, rg *buddy.Region) error {
	_, err := fmt.Fprintf(w, "|%s|\n", BuildMap(rg))
	return err
}

// Entry describes one tree node for the address table.
type Entry struct {
	Level int
	Index int
	Addr  buddy.Addr
	Size  uint32
}

// AddressTable lists every tree node in index order with its level, address,
// and block size.
func AddressTable(rg *buddy.Region) []Entry {
	entries := make([]Entry, 0, rg.TreeSize())

	level := 0
	size := rg.TotalSize()
	addr := rg.Base()
	lim := 0   // last index of the current level
	delta := 1 // nodes on the current level

	for k := 0; k < rg.TreeSize(); k++ {
		entries = append(entries, Entry{Level: level, Index: k, Addr: addr, Size: size})
		if k == lim {
			level++
			delta *= 2
			lim += delta
			addr = rg.Base()
			size /= 2
		} else {
			addr += size
		}
	}
	return entries
}

// FprintAddresses writes the address table to w, one node per line with a
// blank line between levels.
func FprintAddresses(w io.Writer, rg *buddy.Region) error {
	prev := 0
	for _, e := range AddressTable(rg) {
		if e.Level != prev {
			prev = e.Level
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "level = %-2d node = %-3d address = %08X  size=%08X\n",
			e.Level, e.Index, e.Addr, e.Size)
		if err != nil {
			return err
		}
	}
	return nil
}
