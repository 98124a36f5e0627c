package imaging

import "golang.org/x/exp/constraints"

// clamp constrains val to the range [lo, hi].
func clamp[T constraints.Ordered](val, lo, hi T) T {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// gcd returns the greatest common divisor of a and b (gcd(0, 0) == 0).
func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
