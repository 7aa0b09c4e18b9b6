// Package bitvec provides a word-packed bit array over 32-bit words.
//
// The vector carries no length of its own: callers size the backing slice
// with Words(n) and pass the logical bit count to the bulk operations. This
// keeps the type a plain slice so callers can place the storage wherever
// they need it (static arrays, mapped memory, a larger struct).
package bitvec

import (
	"fmt"
	"io"
)

const (
	// WordBits is the number of bits stored per word.
	WordBits = 32

	wordShift = 5
	bitMask   = 0x1F
)

// Vector is a bit array packed into 32-bit words. The zero value of an
// element is all-clear.
type Vector []uint32

// Words returns the number of words required to store n bits.
func Words(n int) int {
	return (n + WordBits - 1) / WordBits
}

// New returns a vector with capacity for n bits, all clear.
func New(n int) Vector {
	return make(Vector, Words(n))
}

// Set sets bit i.
func (v Vector) Set(i int) {
	v[i>>wordShift] |= 1 << (i & bitMask)
}

// Clear clears bit i.
func (v Vector) Clear(i int) {
	v[i>>wordShift] &^= 1 << (i & bitMask)
}

// Test reports whether bit i is set.
func (v Vector) Test(i int) bool {
	return v[i>>wordShift]&(1<<(i&bitMask)) != 0
}

// ClearAll clears the first n bits. Whole words are cleared, so up to 31
// bits past n are cleared as well; callers treat those as padding.
func (v Vector) ClearAll(n int) {
	for i := 0; i < Words(n); i++ {
		v[i] = 0
	}
}

// SetAll sets the first n bits, with the same whole-word rounding as
// ClearAll.
func (v Vector) SetAll(n int) {
	for i := 0; i < Words(n); i++ {
		v[i] = ^uint32(0)
	}
}

// Dump writes the words backing the first n bits to w, one word per line,
// for debugging.
func (v Vector) Dump(w io.Writer, n int) {
	for i := 0; i < Words(n); i++ {
		fmt.Fprintf(w, "%03d: %08X\n", i, v[i])
	}
}
