package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hansw/buddykit/buddy"
	"github.com/hansw/buddykit/buddy/printer"
)

func init() {
	rootCmd.AddCommand(newDemoCmd())
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Replay a fixed allocation scenario with maps after each step",
		Long: `The demo command runs a scripted sequence of allocations and frees
against a fresh region and prints the occupancy map after every step. The
sequence exercises splitting, non-buddy fragmentation, and the merge
cascade on the way back down.

Example:
  buddyctl demo
  buddyctl demo --total-size 4194304 --min-size 262144`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
	return cmd
}

func runDemo() error {
	tbl, rg, err := newTableFromFlags()
	if err != nil {
		return err
	}

	printInfo("Map\n")
	showMap(rg)

	half := rg.TotalSize() / 2
	quarter := rg.TotalSize() / 4
	min := rg.MinSize()

	a, err := demoAlloc(tbl, half-min)
	if err != nil {
		return err
	}
	showMap(rg)

	b, err := demoAlloc(tbl, quarter-min)
	if err != nil {
		return err
	}
	showMap(rg)

	printInfo("Freeing %08X\n", a)
	if err := tbl.Free(0, a); err != nil {
		return err
	}
	showMap(rg)

	// Four minimum blocks, freed out of order later.
	blocks := make([]buddy.Addr, 0, 4)
	for i := 0; i < 4; i++ {
		addr, err := demoAlloc(tbl, min)
		if err != nil {
			return err
		}
		blocks = append(blocks, addr)
		showMap(rg)
	}

	// Free the middle two: the hole is two minimum blocks wide, but the
	// blocks are not buddies, so a double-minimum request must skip it.
	printInfo("Freeing %08X and %08X\n", blocks[1], blocks[2])
	if err := tbl.Free(0, blocks[1]); err != nil {
		return err
	}
	if err := tbl.Free(0, blocks[2]); err != nil {
		return err
	}
	showMap(rg)

	c, err := demoAlloc(tbl, 2*min)
	if err != nil {
		return err
	}
	showMap(rg)

	printInfo("\nFreeing the rest...\n")
	for _, addr := range []buddy.Addr{b, c, blocks[0], blocks[3]} {
		if err := tbl.Free(0, addr); err != nil {
			return err
		}
		showMap(rg)
	}

	st, err := tbl.Stats(0)
	if err != nil {
		return err
	}
	printNum("Stats: %d allocs (%d failed), %d frees, %d bytes reserved, %d released\n",
		st.AllocCalls, st.AllocFails, st.FreeCalls, st.BytesReserved, st.BytesReleased)
	return nil
}

func demoAlloc(tbl *buddy.Table, size uint32) (buddy.Addr, error) {
	printNum("Allocating %d\n", size)
	addr, err := tbl.Alloc(0, size)
	if err != nil {
		return 0, fmt.Errorf("alloc %d bytes: %w", size, err)
	}
	printInfo("  addr=%08X\n", addr)
	return addr, nil
}

func showMap(rg *buddy.Region) {
	if quiet {
		return
	}
	_ = printer.FprintMap(os.Stdout, rg)
}
