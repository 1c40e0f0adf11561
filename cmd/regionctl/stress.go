package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/regionkit/regionkit/region"
)

var (
	stressCommit   string
	stressReserve  string
	stressMaxAlloc string
	stressOps      int
	stressSeed     int64
	stressGrow     bool
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().StringVar(&stressCommit, "commit", "1MB", "Initial committed size")
	cmd.Flags().StringVar(&stressReserve, "reserve", "64MB", "Reserved address-space size")
	cmd.Flags().StringVar(&stressMaxAlloc, "max-alloc", "64KB", "Largest single allocation")
	cmd.Flags().IntVar(&stressOps, "ops", 100000, "Number of operations to run")
	cmd.Flags().Int64Var(&stressSeed, "seed", 0, "RNG seed (0 = time-based)")
	cmd.Flags().BoolVar(&stressGrow, "grow", true, "Resize the region when allocations fail")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stress",
		Short: "Drive a randomized alloc/free workload against a region",
		Long: `The stress command creates a region and runs a randomized mix of
allocations and frees against it, growing the region on demand when enabled.
It reports allocator statistics and final fragmentation.

Example:
  regionctl stress --ops 500000
  regionctl stress --commit 4MB --reserve 1GB --max-alloc 1MB --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
}

// StressReport summarizes a stress run.
type StressReport struct {
	Ops        int           `json:"ops"`
	Seed       int64         `json:"seed"`
	Duration   time.Duration `json:"duration_ns"`
	FinalSize  int64         `json:"final_size"`
	FinalFree  int64         `json:"final_free"`
	LiveAllocs int           `json:"live_allocs"`
	Stats      region.Stats  `json:"stats"`
}

func runStress() error {
	commitSize, reserveSize, err := parseSizes(stressCommit, stressReserve)
	if err != nil {
		return err
	}
	var maxAlloc datasize.ByteSize
	if err := maxAlloc.UnmarshalText([]byte(stressMaxAlloc)); err != nil {
		return fmt.Errorf("invalid --max-alloc size %q: %w", stressMaxAlloc, err)
	}
	if maxAlloc.Bytes() == 0 {
		return fmt.Errorf("--max-alloc must be non-zero")
	}

	seed := stressSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	r, err := region.New(commitSize, reserveSize)
	if err != nil {
		return fmt.Errorf("failed to create region: %w", err)
	}
	defer r.Close()

	slog.Debug("stress run starting",
		"commit", r.Size(), "reserve", r.ReserveSize(), "ops", stressOps, "seed", seed)

	var live [][]byte
	start := time.Now()
	for op := 0; op < stressOps; op++ {
		if rng.Intn(2) == 0 || len(live) == 0 {
			size := 1 + rng.Int63n(int64(maxAlloc.Bytes()))
			buf, allocErr := r.Alloc(size)
			if allocErr != nil && stressGrow {
				if growErr := r.Resize(r.Size() * 2); growErr == nil {
					slog.Debug("region grown", "size", r.Size())
					buf, allocErr = r.Alloc(size)
				}
			}
			if allocErr == nil {
				// Touch both ends so committed pages are actually exercised.
				buf[0], buf[len(buf)-1] = 0xA5, 0x5A
				live = append(live, buf)
			}
		} else {
			i := rng.Intn(len(live))
			if freeErr := r.Free(live[i]); freeErr != nil {
				return fmt.Errorf("op %d: unexpected free failure: %w", op, freeErr)
			}
			live = append(live[:i], live[i+1:]...)
		}
	}
	elapsed := time.Since(start)

	report := StressReport{
		Ops:        stressOps,
		Seed:       seed,
		Duration:   elapsed,
		FinalSize:  r.Size(),
		FinalFree:  r.FreeSpace(),
		LiveAllocs: len(live),
		Stats:      r.Stats(),
	}

	if jsonOut {
		return printJSON(report)
	}

	s := report.Stats
	fmt.Printf("Stress run complete (%d ops in %s, seed %d):\n", stressOps, elapsed.Round(time.Millisecond), seed)
	fmt.Printf("  Region size:     %s\n", humanize.IBytes(uint64(report.FinalSize)))
	fmt.Printf("  Free space:      %s\n", humanize.IBytes(uint64(report.FinalFree)))
	fmt.Printf("  Live allocs:     %d\n", report.LiveAllocs)
	fmt.Printf("  Alloc calls:     %d (%d failed)\n", s.AllocCalls, s.AllocFailed)
	fmt.Printf("  Free calls:      %d (%d failed)\n", s.FreeCalls, s.FreeFailed)
	fmt.Printf("  Resize calls:    %d\n", s.ResizeCalls)
	fmt.Printf("  Bytes allocated: %s\n", humanize.IBytes(uint64(s.BytesAllocated)))
	fmt.Printf("  Bytes freed:     %s\n", humanize.IBytes(uint64(s.BytesFreed)))
	return nil
}
