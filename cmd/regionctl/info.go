package main

import (
	"fmt"

	"github.com/c2h5oh/datasize"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/regionkit/regionkit/internal/vmem"
	"github.com/regionkit/regionkit/region"
)

var (
	infoCommit  string
	infoReserve string
)

func init() {
	cmd := newInfoCmd()
	cmd.Flags().StringVar(&infoCommit, "commit", "1MB", "Initial committed size")
	cmd.Flags().StringVar(&infoReserve, "reserve", "64MB", "Reserved address-space size")
	rootCmd.AddCommand(cmd)
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Report platform page size and region geometry",
		Long: `The info command reports the platform commit granularity and the
geometry a region would have for the given commit/reserve sizes: both are
rounded up to whole pages at construction.

Example:
  regionctl info
  regionctl info --commit 4KB --reserve 1GB --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo()
		},
	}
}

// RegionInfo describes the geometry a region would be constructed with.
type RegionInfo struct {
	PageSize    int64 `json:"page_size"`
	CommitSize  int64 `json:"commit_size"`
	ReserveSize int64 `json:"reserve_size"`
	CommitPages int64 `json:"commit_pages"`
	TotalPages  int64 `json:"total_pages"`
}

func runInfo() error {
	commitSize, reserveSize, err := parseSizes(infoCommit, infoReserve)
	if err != nil {
		return err
	}

	r, err := region.New(commitSize, reserveSize)
	if err != nil {
		return fmt.Errorf("failed to create region: %w", err)
	}
	defer r.Close()

	info := RegionInfo{
		PageSize:    r.PageSize(),
		CommitSize:  r.Size(),
		ReserveSize: r.ReserveSize(),
		CommitPages: r.Size() / r.PageSize(),
		TotalPages:  r.ReserveSize() / r.PageSize(),
	}

	if jsonOut {
		return printJSON(info)
	}

	fmt.Printf("Platform:\n")
	fmt.Printf("  Page size:     %s (%d bytes)\n", humanize.IBytes(uint64(vmem.PageSize())), vmem.PageSize())
	fmt.Printf("Region geometry:\n")
	fmt.Printf("  Committed:     %s (%d pages)\n", humanize.IBytes(uint64(info.CommitSize)), info.CommitPages)
	fmt.Printf("  Reserved:      %s (%d pages)\n", humanize.IBytes(uint64(info.ReserveSize)), info.TotalPages)
	fmt.Printf("  Growth room:   %s\n", humanize.IBytes(uint64(info.ReserveSize-info.CommitSize)))
	return nil
}

// parseSizes parses human-readable byte sizes like "1MiB" or "4096".
func parseSizes(commit, reserve string) (int64, int64, error) {
	var c, r datasize.ByteSize
	if err := c.UnmarshalText([]byte(commit)); err != nil {
		return 0, 0, fmt.Errorf("invalid --commit size %q: %w", commit, err)
	}
	if err := r.UnmarshalText([]byte(reserve)); err != nil {
		return 0, 0, fmt.Errorf("invalid --reserve size %q: %w", reserve, err)
	}
	if c.Bytes() == 0 || r.Bytes() < c.Bytes() {
		return 0, 0, fmt.Errorf("reserve (%s) must be at least commit (%s), both non-zero", reserve, commit)
	}
	return int64(c.Bytes()), int64(r.Bytes()), nil
}
