//go:build linux || darwin

package vmem

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Reserve claims n bytes of contiguous address space without physical
// backing. The returned slice spans the whole reservation but none of it
// is accessible until committed.
func Reserve(n int) ([]byte, error) {
	mem, err := unix.Mmap(-1, 0, n, unix.PROT_NONE,
		unix.MAP_ANON|unix.MAP_PRIVATE|unix.MAP_NORESERVE)
	if err != nil {
		return nil, fmt.Errorf("vmem: reserve %d bytes: %w", n, err)
	}
	return mem, nil
}

// Commit backs mem with physical memory, making it readable and writable.
// mem must be a page-aligned sub-slice of a reservation.
func Commit(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	if err := unix.Mprotect(mem, unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return fmt.Errorf("vmem: commit %d bytes: %w", len(mem), err)
	}
	return nil
}

// Release returns the entire reservation to the OS. mem must be the exact
// slice returned by Reserve.
func Release(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	if err := unix.Munmap(mem); err != nil {
		return fmt.Errorf("vmem: release: %w", err)
	}
	return nil
}

// PageSize reports the commit granularity of the platform.
func PageSize() int { return os.Getpagesize() }
