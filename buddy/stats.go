package buddy

// Stats holds per-region counters. Pure instrumentation: nothing in the
// allocator reads them back.
type Stats struct {
	AllocCalls     uint64 // total Alloc calls
	AllocFails     uint64 // Alloc calls that returned an error
	FreeCalls      uint64 // total Free calls
	BytesReserved  uint64 // bytes handed out, counted at block-class size
	BytesReleased  uint64 // bytes returned, counted at block-class size
	MaxOutstanding uint64 // peak number of simultaneously live blocks

	blocksOut uint64 // currently live blocks
}

// Outstanding returns the number of blocks currently allocated.
func (s Stats) Outstanding() uint64 {
	return s.blocksOut
}
