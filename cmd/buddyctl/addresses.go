package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hansw/buddykit/buddy/printer"
)

func init() {
	rootCmd.AddCommand(newAddressesCmd())
}

func newAddressesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addresses",
		Short: "Print the block address table for a region",
		Long: `The addresses command lists every node of the region's implicit tree
with its level, address, and block size.

Example:
  buddyctl addresses
  buddyctl addresses --total-size 16777216 --min-size 1048576 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAddresses()
		},
	}
	return cmd
}

func runAddresses() error {
	_, rg, err := newTableFromFlags()
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(printer.AddressTable(rg))
	}

	printNum("Region: %d bytes managed as %d blocks of %d bytes, %d tree nodes\n\n",
		rg.TotalSize(), rg.MapSize(), rg.MinSize(), rg.TreeSize())
	return printer.FprintAddresses(os.Stdout, rg)
}
