//go:build !unix

package memseg

import "fmt"

// Alloc returns a zeroed segment of the given size and a release function.
// Platforms without anonymous mappings fall back to heap allocation.
func Alloc(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("memseg: invalid segment size %d", size)
	}
	return make([]byte, size), func() error { return nil }, nil
}
