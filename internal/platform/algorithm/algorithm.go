package algorithm

// Filter removes each item from `iterable` for which `predicate` returns `false`.
func Filter[T any](iterable []T, predicate func(T) bool) []T {
	var result []T
	for _, item := range iterable {
		if predicate(item) {
			result = append(result, item)
		}
	}

	return result
}

// LCG is a 32-bit linear congruential generator (Numerical Recipes constants).
// It is not suitable for anything but reproducible sampling.
type LCG struct {
	state uint32
}

// NewLCG returns a generator seeded with `seed`.
func NewLCG(seed uint32) *LCG {
	return &LCG{state: seed}
}

// Next advances the generator and returns a value in [0, 1).
func (g *LCG) Next() float64 {
	g.state = g.state*1664525 + 1013904223
	return float64(g.state) / 4294967296.0
}

// Shuffle returns a shuffled copy of `iterable` (Fisher-Yates, walking from the end) using `rnd` as the source of
// uniform values in [0, 1). The input slice is left untouched.
func Shuffle[T any](iterable []T, rnd func() float64) []T {
	result := make([]T, len(iterable))
	copy(result, iterable)
	for i := len(result) - 1; i > 0; i-- {
		j := int(rnd() * float64(i+1))
		result[i], result[j] = result[j], result[i]
	}
	return result
}
