package sort

// sort3 orders three values from largest to smallest.
func sort3(x, y, z float64) (max, mid, min float64) {
	if x < y {
		x, y = y, x
	}
	if y < z {
		y, z = z, y
	}
	if x < y {
		x, y = y, x
	}
	return x, y, z
}

// partition rearranges xs (len(xs) >= 4) into two contiguous groups around a
// median-of-three pivot: everything before the returned index is <= the
// pivot, the pivot sits at the index, and everything after it is >= the
// pivot.
func partition(xs []float64) int {
	n, n2 := len(xs), len(xs)/2
	// The outer two of the three samples act as sentinels, so the scans
	// below need no bounds checks.
	max, mid, min := sort3(xs[0], xs[n2], xs[n-1])
	xs[0], xs[n2], xs[n-1] = min, mid, max
	xs[1], xs[n2] = xs[n2], xs[1]

	lo, hi := 1, n-1
	for {
		for lo++; xs[lo] < mid; lo++ {
		}
		for hi--; xs[hi] > mid; hi-- {
		}
		if hi < lo {
			break
		}
		xs[lo], xs[hi] = xs[hi], xs[lo]
	}

	xs[1], xs[hi] = xs[hi], xs[1]
	return hi
}
