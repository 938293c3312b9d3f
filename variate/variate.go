// Package variate draws random variates from a uniform source.
package variate

import (
	"math"
)

// Source returns values uniformly distributed in [0, 1).
type Source interface {
	Float64() float64
}

// Uniform returns a value uniformly in [a, b).
func Uniform(src Source, a, b float64) float64 {
	return a + (b-a)*src.Float64()
}

// Intner is a Source that can draw integers in [0, n) directly.
type Intner interface {
	Intn(n int) int
}

// UniformInt returns an integer uniformly in [min, max], both inclusive. It
// returns min if max < min. Sources implementing Intner are asked for the
// integer directly when the span fits in 32 bits.
func UniformInt(src Source, min, max int) int {
	if max <= min {
		return min
	}
	n := max - min + 1
	if in, ok := src.(Intner); ok && n > 0 && uint64(n) <= math.MaxUint32 {
		return min + in.Intn(n)
	}
	return min + int(src.Float64()*float64(n))
}

// Exponential returns an exponentially distributed value with the given
// mean, by inversion of the uniform draw.
func Exponential(src Source, mean float64) float64 {
	return -math.Log(1-src.Float64()) * mean
}

// Poisson returns a Poisson distributed count with mean lambda using Knuth's
// product of uniforms. It returns 0 for lambda <= 0. The cost is linear in
// lambda, which is fine for the small rates used by the scenarios.
func Poisson(src Source, lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	limit := math.Exp(-lambda)
	k, p := 0, 1.0
	for {
		k++
		p *= src.Float64()
		if p <= limit {
			return k - 1
		}
	}
}

// Bernoulli reports true with probability p.
func Bernoulli(src Source, p float64) bool {
	return src.Float64() < p
}

// Discrete returns an index into weights chosen with probability proportional
// to its weight. Negative weights count as zero. It returns -1 if no weight is
// positive.
func Discrete(src Source, weights []float64) int {
	total := 0.0
	last := -1
	for i, w := range weights {
		if w > 0 {
			total += w
			last = i
		}
	}
	if last < 0 {
		return -1
	}

	target := src.Float64() * total
	sum := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		sum += w
		if target < sum {
			return i
		}
	}
	// rounding can leave target just past the final sum.
	return last
}
