package buddy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hansw/buddykit/internal/bitvec"
)

func Test_Configure_DerivedSizes(t *testing.T) {
	tbl := newTestTable(t, 16<<20, 1<<20, 0)

	rg, err := tbl.Region(0)
	require.NoError(t, err)
	assert.Equal(t, 16, rg.MapSize())
	assert.Equal(t, 31, rg.TreeSize())
	assert.Equal(t, uint32(16<<20), rg.TotalSize())
	assert.Equal(t, uint32(1<<20), rg.MinSize())
}

func Test_Configure_RejectsBadSizes(t *testing.T) {
	tbl := NewTable()

	cases := []struct {
		name      string
		totalSize uint32
		minSize   uint32
	}{
		{"zero total", 0, 1024},
		{"zero min", 1 << 20, 0},
		{"total not pow2", 3 << 20, 1 << 20},
		{"min not pow2", 4 << 20, 3000},
		{"min larger than total", 1 << 20, 2 << 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tbl.Configure(0, Config{TotalSize: tc.totalSize, MinSize: tc.minSize})
			assert.ErrorIs(t, err, ErrBadConfig)
		})
	}
}

func Test_Configure_RejectsBadSlot(t *testing.T) {
	tbl := NewTable()
	cfg := DefaultConfig()

	assert.ErrorIs(t, tbl.Configure(-1, cfg), ErrBadRegion)
	assert.ErrorIs(t, tbl.Configure(MaxRegions, cfg), ErrBadRegion)
}

func Test_UnconfiguredSlot_AllOpsFail(t *testing.T) {
	tbl := NewTable()

	_, err := tbl.Alloc(1, 1024)
	assert.ErrorIs(t, err, ErrBadRegion)
	assert.ErrorIs(t, tbl.Free(1, 0), ErrBadRegion)
	assert.ErrorIs(t, tbl.Init(1), ErrBadRegion)
	_, err = tbl.Region(1)
	assert.ErrorIs(t, err, ErrBadRegion)
	_, err = tbl.Stats(1)
	assert.ErrorIs(t, err, ErrBadRegion)
}

func Test_DefaultTable_UsableImmediately(t *testing.T) {
	tbl := NewDefaultTable()

	addr, err := tbl.Alloc(0, 30000)
	require.NoError(t, err)
	assert.Equal(t, DefaultBase, addr)

	require.NoError(t, tbl.Free(0, addr))

	rg, err := tbl.Region(0)
	require.NoError(t, err)
	requireAllClear(t, rg)
}

func Test_Init_ResetsRegion(t *testing.T) {
	tbl := newTestTable(t, 4<<20, 1<<20, 0)

	_, err := tbl.Alloc(0, 1<<20)
	require.NoError(t, err)
	_, err = tbl.Alloc(0, 2<<20)
	require.NoError(t, err)

	// Re-init discards everything outstanding.
	require.NoError(t, tbl.Init(0))
	rg, err := tbl.Region(0)
	require.NoError(t, err)
	requireAllClear(t, rg)

	addr, err := tbl.Alloc(0, 4<<20)
	require.NoError(t, err)
	assert.Equal(t, Addr(0), addr)
}

func Test_Configure_IndependentRegions(t *testing.T) {
	tbl := NewTable()

	for r, base := range []Addr{0x1000_0000, 0x2000_0000} {
		err := tbl.Configure(r, Config{
			TotalSize: 4 << 20,
			MinSize:   1 << 20,
			Base:      base,
			Used:      bitvec.New(7),
			Split:     bitvec.New(7),
		})
		require.NoError(t, err)
		require.NoError(t, tbl.Init(r))
	}

	a0, err := tbl.Alloc(0, 4<<20)
	require.NoError(t, err)
	a1, err := tbl.Alloc(1, 4<<20)
	require.NoError(t, err)
	assert.Equal(t, Addr(0x1000_0000), a0)
	assert.Equal(t, Addr(0x2000_0000), a1)

	// Exhausting region 0 leaves region 1 untouched.
	_, err = tbl.Alloc(0, 1<<20)
	assert.ErrorIs(t, err, ErrNoSpace)
	require.NoError(t, tbl.Free(1, a1))
	_, err = tbl.Alloc(1, 1<<20)
	assert.NoError(t, err)
}

func Test_Stats_Counters(t *testing.T) {
	tbl := newTestTable(t, 4<<20, 1<<20, 0)

	a, err := tbl.Alloc(0, 1<<20)
	require.NoError(t, err)
	b, err := tbl.Alloc(0, 1<<20)
	require.NoError(t, err)
	_, err = tbl.Alloc(0, 8<<20)
	require.ErrorIs(t, err, ErrTooBig)
	require.NoError(t, tbl.Free(0, a))
	require.NoError(t, tbl.Free(0, b))

	st, err := tbl.Stats(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), st.AllocCalls)
	assert.Equal(t, uint64(1), st.AllocFails)
	assert.Equal(t, uint64(2), st.FreeCalls)
	assert.Equal(t, uint64(2<<20), st.BytesReserved)
	assert.Equal(t, uint64(2<<20), st.BytesReleased)
	assert.Equal(t, uint64(2), st.MaxOutstanding)
	assert.Equal(t, uint64(0), st.Outstanding())
}
