// Package congruential implements the linear and multiplicative congruential
// generators over arbitrary-precision integers.
//
// Both generators are deterministic: identical requests produce identical
// rows. Every precondition is checked before the first row is produced, so a
// failed call never returns a partial sequence.
package congruential

import (
	"math/big"

	"github.com/zeebo/simlab/bigint"
	"github.com/zeebo/simlab/internal/debug"
)

var (
	one   = big.NewInt(1)
	four  = big.NewInt(4)
	eight = big.NewInt(8)
)

// Linear generates X[i+1] = (a*X[i] + c) mod m with a = 1 + 4k. The modulus
// must be a power of two and the increment must be coprime with it.
func Linear(req Request) ([]Row, Metadata, error) {
	if err := req.Validate(true); err != nil {
		return nil, Metadata{}, err
	}
	m, g, err := req.Range.Resolve()
	if err != nil {
		return nil, Metadata{}, err
	}
	if err := checkCoprime(req.Increment, m); err != nil {
		return nil, Metadata{}, err
	}

	a := linearMultiplier(req.Index)
	c := new(big.Int).Set(req.Increment)
	return run(a, c, m, req.Seed, req.length()), newMetadata(a, m, g), nil
}

// Multiplicative generates X[i+1] = (a*X[i]) mod m with a = 3 + 8k or
// a = 5 + 8k depending on the request family. The modulus must be a power of
// two and the seed must be odd.
func Multiplicative(req Request) ([]Row, Metadata, error) {
	if err := req.Validate(false); err != nil {
		return nil, Metadata{}, err
	}
	m, g, err := req.Range.Resolve()
	if err != nil {
		return nil, Metadata{}, err
	}
	if req.Seed.Bit(0) == 0 {
		return nil, Metadata{}, EvenSeed.New("seed %v must be odd", req.Seed)
	}

	a := new(big.Int).Mul(eight, req.Index)
	a.Add(a, big.NewInt(req.Family.base()))
	return run(a, nil, m, req.Seed, req.length()), newMetadata(a, m, g), nil
}

// newMetadata copies a and m so the metadata does not alias the operands
// held by the rows.
func newMetadata(a, m *big.Int, g int) Metadata {
	return Metadata{
		Multiplier: new(big.Int).Set(a),
		Modulus:    new(big.Int).Set(m),
		Exponent:   g,
	}
}

// LinearParameters returns the parameters the linear generator would use for
// the multiplier index k, modulus m and increment c without generating any
// values. It applies the same checks as Linear.
func LinearParameters(k, m, c *big.Int) (Metadata, error) {
	switch {
	case k == nil:
		return Metadata{}, MissingParameter.New("multiplier index")
	case m == nil:
		return Metadata{}, MissingParameter.New("modulus or count")
	case c == nil:
		return Metadata{}, MissingParameter.New("increment")
	case k.Sign() < 0:
		return Metadata{}, InvalidRange.New("multiplier index must be non-negative, got %v", k)
	}

	mod, g, err := Modulus(m).Resolve()
	if err != nil {
		return Metadata{}, err
	}
	if err := checkCoprime(c, mod); err != nil {
		return Metadata{}, err
	}
	return Metadata{
		Multiplier: linearMultiplier(k),
		Modulus:    mod,
		Exponent:   g,
	}, nil
}

func linearMultiplier(k *big.Int) *big.Int {
	a := new(big.Int).Mul(four, k)
	return a.Add(a, one)
}

func checkCoprime(c, m *big.Int) error {
	if d := bigint.GCD(c, m); d.Cmp(one) != 0 {
		return NonCoprimeIncrement.New("gcd(%v, %v) = %v", c, m, d)
	}
	return nil
}

// run produces n rows of the recurrence starting from seed.
func run(a, c, m, seed *big.Int, n int) []Row {
	denom := new(big.Int).Sub(m, one)
	gen := NewGenerator(a, c, m, seed)
	rows := make([]Row, 0, n)

	for i := 1; i <= n; i++ {
		prev := gen.State()
		cur := gen.Next()
		debug.Assert("state below modulus", func() bool {
			return cur.Sign() >= 0 && cur.Cmp(m) < 0
		})

		rows = append(rows, Row{
			Index:    i,
			Previous: prev,
			Current:  cur,
			Step: Step{
				Multiplier: a,
				Previous:   prev,
				Increment:  c,
				Modulus:    m,
			},
			Normalized: bigint.Ratio(cur, denom),
		})
	}

	return rows
}
