// Package distance converts a match probability into an evolutionary
// distance under the Jukes-Cantor substitution model.
package distance

import "math"

// MaxProbability is the ceiling applied to p̂ before the transform; p̂ = 1
// would put a zero inside the logarithm.
const MaxProbability = 0.999

// ClampProbability limits p to (0, MaxProbability].
func ClampProbability(p float64) float64 {
	if p > MaxProbability {
		return MaxProbability
	}
	if p <= 0 || math.IsNaN(p) {
		return math.SmallestNonzeroFloat64
	}
	return p
}

// JukesCantor returns d = −¾·ln(1 − ⁴⁄₃·(1 − p)).
//
// p ≥ 1 is clamped to MaxProbability. When the log argument is not positive
// (p ≤ 0.25, indistinguishable from random sequence) the distance is 0.
// The result is never negative.
func JukesCantor(p float64) float64 {
	if p >= 1 {
		p = MaxProbability
	}
	if math.IsNaN(p) {
		return 0
	}

	// 1 − ⁴⁄₃(1 − p) rearranged so p = 0.25 gives exactly 0.
	arg := (4*p - 1) / 3
	if arg <= 0 {
		return 0
	}

	d := -0.75 * math.Log(arg)
	if d < 0 {
		return 0
	}
	return d
}
