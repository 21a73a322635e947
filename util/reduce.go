package util

import (
	"cmp"
	"maps"
	"slices"
)

// MatchMul multiplies the values of a and b that share a key.
// Every key of a is present in the result, keys missing from b count as 0.
func MatchMul[K comparable](a, b map[K]float64) map[K]float64 {
	out := make(map[K]float64, len(a))
	for k, v := range a {
		out[k] = v * b[k]
	}
	return out
}

// MatchMulSum returns the sum over the keys of a of a[k]*b[k].
// Keys are visited in ascending order so that repeated calls on the same
// inputs produce bit-identical sums.
func MatchMulSum[K cmp.Ordered](a, b map[K]float64) float64 {
	sum := float64(0)
	for _, k := range slices.Sorted(maps.Keys(a)) {
		sum += a[k] * b[k]
	}
	return sum
}
