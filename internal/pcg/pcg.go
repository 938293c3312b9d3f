// Package pcg is the permuted congruential generator that drives the
// scenario simulations. It is small, fast and reproducible from a seed.
package pcg

import (
	"math/bits"
)

// T is a pcg generator. The zero value is invalid: use New.
type T struct {
	State uint64
	Inc   uint64
}

const mul = 6364136223846793005

// New constructs a pcg with the given state and stream.
func New(state, stream uint64) T {
	// equivalent to starting from a zero state with the updated increment,
	// stepping once, adding the state and stepping again.
	inc := stream<<1 | 1
	return T{
		State: (inc+state)*mul + inc,
		Inc:   inc,
	}
}

// Uint32 returns a random uint32.
func (p *T) Uint32() uint32 {
	oldstate := p.State
	p.State = oldstate*mul + p.Inc

	// output permutation of the old state. a left rotate is used where the
	// reference uses a right rotate: any rotate works for the compression and
	// this one is faster.
	xorshift := uint32(((oldstate >> 18) ^ oldstate) >> 27)
	return bits.RotateLeft32(xorshift, int(oldstate>>59))
}

// Uint64 returns a random uint64 built from two outputs.
func (p *T) Uint64() uint64 {
	return uint64(p.Uint32())<<32 | uint64(p.Uint32())
}

// Float64 returns a float64 uniformly in [0, 1) with 53 bits of precision.
func (p *T) Float64() float64 {
	return float64(p.Uint64()>>11) / (1 << 53)
}

// Intn returns an int uniformly in [0, n). n must fit in 32 bits.
func (p *T) Intn(n int) int {
	return fastMod(p.Uint32(), n)
}

// fastMod computes n % m assuming that n is a random number in the full
// uint32 range.
func fastMod(n uint32, m int) int {
	return int((uint64(n) * uint64(m)) >> 32)
}
