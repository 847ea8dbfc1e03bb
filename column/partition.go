package column

// Groups partitions the row indices [0, n) by key. Groups appear in order of
// first occurrence and keep row order within each group.
func Groups[K comparable](n int, key func(i int) K) [][]int {
	slot := make(map[K]int)
	var groups [][]int
	for i := range n {
		k := key(i)
		g, ok := slot[k]
		if !ok {
			g = len(groups)
			slot[k] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}

	return groups
}

// Gather returns values[rows[0]], values[rows[1]], ...
func Gather[T any](values []T, rows []int) []T {
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = values[r]
	}

	return out
}

// Scatter writes part[i] to dst[rows[i]].
func Scatter[T any](dst []T, rows []int, part []T) {
	for i, r := range rows {
		dst[r] = part[i]
	}
}
