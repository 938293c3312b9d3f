package congruential

import (
	"fmt"
	"math/big"

	"github.com/zeebo/simlab/internal/debug"
)

// Generator steps the recurrence X[i+1] = (a*X[i] + c) mod m. A nil
// increment gives the multiplicative form X[i+1] = (a*X[i]) mod m. It is not
// thread safe.
type Generator struct {
	a, c, m *big.Int
	x       *big.Int
}

// NewGenerator constructs a generator starting at seed. The modulus must be
// positive. The operands are retained and must not be modified afterwards.
func NewGenerator(a, c, m, seed *big.Int) *Generator {
	debug.Assert("positive modulus", func() bool { return m.Sign() > 0 })

	return &Generator{
		a: a,
		c: c,
		m: m,
		x: new(big.Int).Set(seed),
	}
}

// State returns the current value. It is not modified by later calls to
// Next, but callers must not modify it either.
func (g *Generator) State() *big.Int { return g.x }

// Next advances the generator and returns the new state.
func (g *Generator) Next() *big.Int {
	next := new(big.Int).Mul(g.a, g.x)
	if g.c != nil {
		next.Add(next, g.c)
	}
	// Mod is euclidean, so a negative increment still lands in [0, m).
	next.Mod(next, g.m)

	g.x = next
	return next
}

// Step holds the operands of one update of the recurrence.
type Step struct {
	Multiplier *big.Int
	Previous   *big.Int
	Increment  *big.Int // nil for the multiplicative generator
	Modulus    *big.Int
}

// String renders the arithmetic of the step, like "(5 * 3 + 1) mod 16".
func (s Step) String() string {
	if s.Increment == nil {
		return fmt.Sprintf("(%v * %v) mod %v", s.Multiplier, s.Previous, s.Modulus)
	}
	return fmt.Sprintf("(%v * %v + %v) mod %v", s.Multiplier, s.Previous, s.Increment, s.Modulus)
}

// Row is one generated value. Rows of one sequence share their integers:
// the Current of a row is the Previous of the next, and every Step of a
// sequence holds the same multiplier, increment and modulus. Rows are read
// only; copy an integer before modifying it.
type Row struct {
	Index      int      // 1-based position in the sequence
	Previous   *big.Int // X[i-1]
	Current    *big.Int // X[i]
	Step       Step     // operands that produced Current
	Normalized float64  // Current / (m - 1)
}

// Operation returns the human readable formula that produced the row.
func (r Row) Operation() string { return r.Step.String() }

// Metadata summarizes the parameters of a whole run.
type Metadata struct {
	Multiplier *big.Int // a
	Modulus    *big.Int // m
	Exponent   int      // g, with m = 2^g
}
