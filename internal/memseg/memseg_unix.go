//go:build unix

// Package memseg provides anonymous memory segments for use as the backing
// storage of buddy regions in demos, benchmarks, and tests. On unix the
// segment is a private anonymous mapping, so a multi-megabyte region costs
// address space rather than committed heap until pages are touched.
package memseg

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Alloc returns a zeroed segment of the given size and a release function.
// Releasing twice is a no-op.
func Alloc(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("memseg: invalid segment size %d", size)
	}
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, nil, fmt.Errorf("memseg: mmap %d bytes: %w", size, err)
	}
	release := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		data = nil
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return data, release, nil
}
