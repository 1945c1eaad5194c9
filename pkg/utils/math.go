package utils

// Min returns the minimum of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Clamp limits v to the closed range [lo, hi]. lo wins when the range is empty.
func Clamp(v, lo, hi int) int {
	return Max(lo, Min(v, hi))
}
