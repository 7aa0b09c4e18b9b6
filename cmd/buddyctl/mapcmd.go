package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/hansw/buddykit/buddy/printer"
)

var mapAllocs []uint

func init() {
	cmd := newMapCmd()
	cmd.Flags().UintSliceVar(&mapAllocs, "alloc", nil, "Allocation sizes to perform before rendering (repeatable)")
	rootCmd.AddCommand(cmd)
}

func newMapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Print the occupancy map for a region",
		Long: `The map command renders a fresh region's occupancy, one character per
minimum-size block, after performing the allocations given with --alloc.

Example:
  buddyctl map
  buddyctl map --alloc 1048576 --alloc 4194304`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMap()
		},
	}
	return cmd
}

func runMap() error {
	tbl, rg, err := newTableFromFlags()
	if err != nil {
		return err
	}

	for _, size := range mapAllocs {
		if uint64(size) > math.MaxUint32 {
			return fmt.Errorf("--alloc %d exceeds the 32-bit size limit", size)
		}
		if _, err := tbl.Alloc(0, uint32(size)); err != nil {
			return fmt.Errorf("alloc %d bytes: %w", size, err)
		}
	}

	if jsonOut {
		return printJSON(map[string]any{
			"map":      printer.BuildMap(rg),
			"mapSize":  rg.MapSize(),
			"minSize":  rg.MinSize(),
			"treeSize": rg.TreeSize(),
		})
	}
	return printer.FprintMap(os.Stdout, rg)
}
