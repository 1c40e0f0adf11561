//go:build !linux && !darwin && !windows

// Package vmem provides platform-specific virtual-memory primitives:
// reserving address space, committing pages, and releasing reservations.
package vmem

import "os"

// Reserve allocates n bytes on the Go heap when no virtual-memory
// primitives are available. The whole slice is usable immediately, so
// Commit is a no-op; the reserve-once / commit-incrementally contract is
// preserved at the interface.
func Reserve(n int) ([]byte, error) {
	return make([]byte, n), nil
}

// Commit is a no-op: heap-backed reservations are fully accessible.
func Commit(mem []byte) error { return nil }

// Release drops the reservation; the garbage collector reclaims it.
func Release(mem []byte) error { return nil }

// PageSize reports the commit granularity of the platform.
func PageSize() int { return os.Getpagesize() }
