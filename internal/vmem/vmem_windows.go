//go:build windows

package vmem

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Reserve claims n bytes of contiguous address space without physical
// backing. The returned slice spans the whole reservation but none of it
// is accessible until committed.
func Reserve(n int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(n),
		windows.MEM_RESERVE, windows.PAGE_NOACCESS)
	if err != nil {
		return nil, fmt.Errorf("vmem: reserve %d bytes: %w", n, err)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), n), nil
}

// Commit backs mem with physical memory, making it readable and writable.
// mem must be a page-aligned sub-slice of a reservation.
func Commit(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	addr := uintptr(unsafe.Pointer(&mem[0]))
	if _, err := windows.VirtualAlloc(addr, uintptr(len(mem)),
		windows.MEM_COMMIT, windows.PAGE_READWRITE); err != nil {
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
	addr := uintptr(unsafe.Pointer(&mem[0]))
	if err := windows.VirtualFree(addr, 0, windows.MEM_RELEASE); err != nil {
		return fmt.Errorf("vmem: release: %w", err)
	}
	return nil
}

// PageSize reports the commit granularity of the platform.
func PageSize() int { return os.Getpagesize() }
