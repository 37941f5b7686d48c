package tui

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// next returns the element after cur in vals, wrapping around. An unknown
// cur yields the first element.
func next[T comparable](vals []T, cur T) T {
	for i, v := range vals {
		if v == cur {
			return vals[(i+1)%len(vals)]
		}
	}
	return vals[0]
}
