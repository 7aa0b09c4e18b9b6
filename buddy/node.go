package buddy

// Tree index arithmetic for the implicit complete binary tree.
//
//	Level   |    Indices
//	--------|---------------------
//	   0    |    0
//	   1    |    1-2
//	   2    |    3-4 * 5-6
//	   3    |    7-8 * 9-10 * 11-12 * 13-14
//
// Left children have odd indices, right children even. Two buddies share a
// parent and together cover exactly the parent's range.

// parentOf returns the parent index of node k. k must be > 0.
func parentOf(k int) int {
	return (k - 1) / 2
}

// leftOf returns the lower-address child of node k.
func leftOf(k int) int {
	return 2*k + 1
}

// rightOf returns the higher-address child of node k.
func rightOf(k int) int {
	return 2*k + 2
}

// buddyOf returns the sibling sharing node k's parent. k must be > 0.
func buddyOf(k int) int {
	if k&1 == 1 {
		return k + 1
	}
	return k - 1
}

// isPow2 reports whether n is a power of two. Zero is not.
func isPow2(n uint32) bool {
	return n != 0 && n&(n-1) == 0
}
