package util

// PermuteRange returns the integers 0..n-1 circularly permuted so the
// sequence begins at start and wraps around.
// PermuteRange(1, 4) yields [1, 2, 3, 0].
func PermuteRange(start, n int) []int {
	out := make([]int, 0, n)
	for i := start; i < n; i++ {
		out = append(out, i)
	}

	for i := 0; i < start && i < n; i++ {
		out = append(out, i)
	}

	return out
}
