package buddy

import (
	"os"

	"github.com/hansw/buddykit/internal/bitvec"
)

// Runtime trace flag for allocation logging - controlled by BUDDY_LOG_ALLOC env var.
var logAlloc = os.Getenv("BUDDY_LOG_ALLOC") != ""

// MaxRegions is the number of region slots in a Table.
const MaxRegions = 4

// Addr is an address or offset within managed memory. The allocator never
// dereferences one; callers decide what the number means.
type Addr = uint32

// Default sizing for region 0 of NewDefaultTable.
const (
	// DefaultTotalSize is the default region size (8 MiB).
	DefaultTotalSize uint32 = 8 << 20

	// DefaultMinSize is the default minimum block size (256 KiB).
	DefaultMinSize uint32 = 256 << 10

	// DefaultBase is the default base address of region 0.
	DefaultBase Addr = 0x0C000000
)

// Config binds caller-owned storage and sizing to a region slot.
//
// TotalSize and MinSize must both be powers of two with MinSize <= TotalSize.
// Used and Split must each hold 2*(TotalSize/MinSize) - 1 bits, sized with
// bitvec.Words; their lengths are the caller's contract and are not checked.
// Map is optional and only consumed by the printer package; when present it
// must hold TotalSize/MinSize + 1 bytes.
type Config struct {
	TotalSize uint32
	MinSize   uint32
	Base      Addr
	Used      []uint32
	Split     []uint32
	Map       []byte
}

// DefaultConfig returns a Config with the default sizing and freshly
// allocated backing storage. It exists so NewDefaultTable can provision
// region 0 through the same path callers use; the core operations themselves
// never allocate storage.
func DefaultConfig() Config {
	mapSize := int(DefaultTotalSize / DefaultMinSize)
	treeSize := 2*mapSize - 1
	return Config{
		TotalSize: DefaultTotalSize,
		MinSize:   DefaultMinSize,
		Base:      DefaultBase,
		Used:      bitvec.New(treeSize),
		Split:     bitvec.New(treeSize),
		Map:       make([]byte, mapSize+1),
	}
}

// frame is one step of the iterative tree search.
type frame struct {
	k    int    // node index
	size uint32 // block size at this node
	off  uint32 // offset of the block within the region
}

// Region is one independently configured memory pool. The zero value is
// unconfigured; every operation on it fails with ErrBadRegion.
type Region struct {
	totalSize uint32
	minSize   uint32
	mapSize   int // number of leaf blocks
	treeSize  int // nodes in the implicit tree

	base   Addr
	used   bitvec.Vector
	split  bitvec.Vector
	mapBuf []byte

	// Search stack, sized to mapSize at Configure so Alloc does not
	// allocate. Safe to reuse: callers hold the region exclusively.
	stack []frame

	stats Stats
}

// Table is a fixed set of region slots sharing the allocator. It replaces
// the process-wide region table of the classic formulation with an
// explicitly owned object.
type Table struct {
	regions [MaxRegions]Region
}

// NewTable returns a table with every slot unconfigured.
func NewTable() *Table {
	return &Table{}
}

// NewDefaultTable returns a table whose region 0 is configured with
// DefaultConfig and initialized, ready for Alloc with no further setup.
func NewDefaultTable() *Table {
	t := &Table{}
	// DefaultConfig always passes validation.
	_ = t.Configure(0, DefaultConfig())
	_ = t.Init(0)
	return t
}

// Configure binds cfg to region slot r, deriving the map and tree sizes.
// The storage slices are borrowed for the region's lifetime; ownership stays
// with the caller. Configure does not clear the bitmaps - call Init before
// first use and to reset the region later.
func (t *Table) Configure(r int, cfg Config) error {
	if r < 0 || r >= MaxRegions {
		return ErrBadRegion
	}
	if !isPow2(cfg.TotalSize) || !isPow2(cfg.MinSize) || cfg.MinSize > cfg.TotalSize {
		return ErrBadConfig
	}

	mapSize := int(cfg.TotalSize / cfg.MinSize)
	t.regions[r] = Region{
		totalSize: cfg.TotalSize,
		minSize:   cfg.MinSize,
		mapSize:   mapSize,
		treeSize:  2*mapSize - 1,
		base:      cfg.Base,
		used:      bitvec.Vector(cfg.Used),
		split:     bitvec.Vector(cfg.Split),
		mapBuf:    cfg.Map,
		stack:     make([]frame, 0, mapSize),
	}
	return nil
}

// Init clears both bitmaps of region r: the whole region becomes one free,
// unsplit block. Re-callable at any time; prior allocations are forgotten
// without any check that the memory is unused.
func (t *Table) Init(r int) error {
	rg, err := t.Region(r)
	if err != nil {
		return err
	}
	rg.used.ClearAll(rg.treeSize)
	rg.split.ClearAll(rg.treeSize)
	return nil
}

// Region returns the configured region in slot r, or ErrBadRegion.
func (t *Table) Region(r int) (*Region, error) {
	if r < 0 || r >= MaxRegions || t.regions[r].totalSize == 0 {
		return nil, ErrBadRegion
	}
	return &t.regions[r], nil
}

// Alloc reserves a block of at least size bytes in region r and returns its
// address. See Region.Alloc.
func (t *Table) Alloc(r int, size uint32) (Addr, error) {
	rg, err := t.Region(r)
	if err != nil {
		return 0, err
	}
	return rg.Alloc(size)
}

// Free releases the block at addr in region r. See Region.Free.
func (t *Table) Free(r int, addr Addr) error {
	rg, err := t.Region(r)
	if err != nil {
		return err
	}
	return rg.Free(addr)
}

// Stats returns a copy of region r's counters.
func (t *Table) Stats(r int) (Stats, error) {
	rg, err := t.Region(r)
	if err != nil {
		return Stats{}, err
	}
	return rg.stats, nil
}

// TotalSize returns the number of bytes the region manages.
func (rg *Region) TotalSize() uint32 { return rg.totalSize }

// MinSize returns the smallest allocatable block size.
func (rg *Region) MinSize() uint32 { return rg.minSize }

// MapSize returns the number of minimum-size blocks in the region.
func (rg *Region) MapSize() int { return rg.mapSize }

// TreeSize returns the number of nodes in the implicit tree.
func (rg *Region) TreeSize() int { return rg.treeSize }

// Base returns the region's base address.
func (rg *Region) Base() Addr { return rg.base }

// Used reports whether tree node k is allocated as one whole block.
func (rg *Region) Used(k int) bool { return rg.used.Test(k) }

// Split reports whether tree node k has been subdivided.
func (rg *Region) Split(k int) bool { return rg.split.Test(k) }

// MapBuffer returns the caller-supplied map buffer, or nil when the region
// was configured without one.
func (rg *Region) MapBuffer() []byte { return rg.mapBuf }

// Stats returns a copy of the region's counters.
func (rg *Region) Stats() Stats { return rg.stats }
