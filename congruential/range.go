package congruential

import (
	"math"
	"math/big"

	"github.com/zeebo/simlab/bigint"
)

// Range is either an explicit modulus or a desired output count from which
// the modulus is derived. The zero value is a missing range.
type Range struct {
	value *big.Int
	count bool
}

// Modulus returns a Range for the explicit modulus m. It must be a power of
// two of at least 2.
func Modulus(m *big.Int) Range { return Range{value: m} }

// Count returns a Range that derives the modulus from the number of values
// to generate, p.
func Count(p *big.Int) Range { return Range{value: p, count: true} }

// Value returns the modulus or the count, whichever the range holds.
func (r Range) Value() *big.Int { return r.value }

// IsCount reports if the range holds a count.
func (r Range) IsCount() bool { return r.count }

// Missing reports if the range holds no value.
func (r Range) Missing() bool { return r.value == nil }

// Resolve returns the modulus m and its exponent g, with m = 2^g.
func (r Range) Resolve() (m *big.Int, g int, err error) {
	if r.value == nil {
		return nil, 0, MissingParameter.New("modulus or count")
	}

	if r.count {
		if r.value.Sign() <= 0 {
			return nil, 0, InvalidCount.New("count must be positive, got %v", r.value)
		}
		// floor(log2(p)) is exact from the bit length.
		g = r.value.BitLen() - 1 + 2
		return bigint.Pow2(g), g, nil
	}

	g, err = bigint.Log2(r.value)
	if err != nil {
		return nil, 0, err
	}
	if g < 1 {
		return nil, 0, InvalidRange.New("modulus must be at least 2")
	}
	return new(big.Int).Set(r.value), g, nil
}

// DeriveFromCount returns the modulus m = 2^g, g = floor(log2(p)) + 2, sized
// for generating p values. The modulus is always more than twice p, and four
// times p when p is a power of two.
func DeriveFromCount(p float64) (m *big.Int, g int, err error) {
	if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
		return nil, 0, InvalidCount.New("count must be finite and positive, got %v", p)
	}
	g = int(math.Floor(math.Log2(p))) + 2
	if g < 1 {
		return nil, 0, InvalidCount.New("count %v is too small to derive a modulus", p)
	}
	return bigint.Pow2(g), g, nil
}
