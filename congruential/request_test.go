package congruential

import (
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/errs"

	"github.com/zeebo/simlab/bigint"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Request)
		linear bool
		class  *errs.Class
		text   string
	}{
		{"Seed", func(r *Request) { r.Seed = nil }, true, &MissingParameter, "seed"},
		{"Index", func(r *Request) { r.Index = nil }, false, &MissingParameter, "multiplier index"},
		{"Range", func(r *Request) { r.Range = Range{} }, true, &MissingParameter, "modulus or count"},
		{"Decimals", func(r *Request) { r.Decimals = nil }, true, &MissingParameter, "decimal places"},
		{"Increment", func(r *Request) { r.Increment = nil }, true, &MissingParameter, "increment"},
		{"Length", func(r *Request) { r.Length = nil }, true, &MissingParameter, "output length"},
		{"ZeroLength", func(r *Request) { r.Length = n(0) }, true, &InvalidRange, "output length"},
		{"HugeLength", func(r *Request) { r.Length = n(MaxLength + 1) }, true, &InvalidRange, "output length"},
		{"ZeroModulus", func(r *Request) { r.Range = Modulus(n(0)) }, true, &InvalidRange, "modulus or count"},
		{"NegativeCount", func(r *Request) { r.Range = Count(n(-4)) }, true, &InvalidRange, "modulus or count"},
		{"HugeCount", func(r *Request) { r.Range, r.Length = Count(n(MaxLength+1)), nil }, true, &InvalidRange, "count"},
		{"Decimals", func(r *Request) { r.Decimals = n(-1) }, true, &InvalidRange, "decimal places"},
		{"NegativeSeed", func(r *Request) { r.Seed = n(-1) }, true, &InvalidRange, "seed"},
		{"NegativeIndex", func(r *Request) { r.Index = n(-1) }, true, &InvalidRange, "multiplier index"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := linearRequest()
			c.mutate(&req)

			err := req.Validate(c.linear)
			assert.Error(t, err)
			assert.That(t, c.class.Has(err))
			assert.That(t, strings.Contains(err.Error(), c.text))

			// validation failures surface from both generators unchanged
			if c.linear {
				_, _, gerr := Linear(req)
				assert.That(t, c.class.Has(gerr))
			}
		})
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, linearRequest().Validate(true))
		assert.NoError(t, multiplicativeRequest().Validate(false))

		req := multiplicativeRequest()
		req.Range, req.Length = Count(n(10)), nil
		assert.NoError(t, req.Validate(false))
	})
}

func TestRange(t *testing.T) {
	t.Run("Count", func(t *testing.T) {
		cases := []struct {
			p int64
			g int
		}{
			{1, 2}, {2, 3}, {3, 3}, {4, 4}, {7, 4}, {8, 5}, {1000, 11}, {1024, 12},
		}
		for _, c := range cases {
			m, g, err := Count(n(c.p)).Resolve()
			assert.NoError(t, err)
			assert.Equal(t, g, c.g)
			assert.Equal(t, m.Cmp(bigint.Pow2(c.g)), 0)
			assert.That(t, m.Cmp(new(big.Int).Mul(n(c.p), n(2))) > 0)

			// the float and integer derivations agree
			fm, fg, err := DeriveFromCount(float64(c.p))
			assert.NoError(t, err)
			assert.Equal(t, fg, g)
			assert.Equal(t, fm.Cmp(m), 0)
		}

		_, _, err := Count(n(0)).Resolve()
		assert.That(t, InvalidCount.Has(err))
	})

	t.Run("DeriveFromCount", func(t *testing.T) {
		m, g, err := DeriveFromCount(1000)
		assert.NoError(t, err)
		assert.Equal(t, g, 11)
		assert.Equal(t, m.String(), "2048")

		m, g, err = DeriveFromCount(1000.7)
		assert.NoError(t, err)
		assert.Equal(t, g, 11)
		assert.Equal(t, m.String(), "2048")

		for _, p := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1), 0.1} {
			_, _, err := DeriveFromCount(p)
			assert.That(t, InvalidCount.Has(err))
		}
	})

	t.Run("Modulus", func(t *testing.T) {
		m, g, err := Modulus(n(4096)).Resolve()
		assert.NoError(t, err)
		assert.Equal(t, g, 12)
		assert.Equal(t, m.String(), "4096")

		_, _, err = Modulus(n(100)).Resolve()
		assert.That(t, bigint.NotPowerOfTwo.Has(err))

		_, _, err = Range{}.Resolve()
		assert.That(t, MissingParameter.Has(err))
	})
}

func TestParseForm(t *testing.T) {
	t.Run("Linear", func(t *testing.T) {
		req, err := ParseForm(map[string]string{
			"seed": "1", "k": "0", "c": "1", "p": "16", "d": "2", "n": "3",
		}, false)
		assert.NoError(t, err)
		assert.That(t, !req.Range.IsCount())

		rows, meta, err := Linear(req)
		assert.NoError(t, err)
		assert.Equal(t, meta.Modulus.String(), "16")
		assert.DeepEqual(t, states(rows), []string{"2", "3", "4"})
	})

	t.Run("Count", func(t *testing.T) {
		req, err := ParseForm(map[string]string{
			"seed": "7", "k": "1", "p": "1000", "d": "3", "family": "5+8k",
		}, true)
		assert.NoError(t, err)
		assert.That(t, req.Range.IsCount())
		assert.Equal(t, req.Family, FivePlus8K)
		assert.That(t, req.Length == nil)

		rows, meta, err := Multiplicative(req)
		assert.NoError(t, err)
		assert.Equal(t, meta.Multiplier.String(), "13")
		assert.Equal(t, len(rows), 1000)
	})

	t.Run("Missing", func(t *testing.T) {
		req, err := ParseForm(map[string]string{"seed": " ", "k": "1"}, false)
		assert.NoError(t, err)
		_, _, err = Linear(req)
		assert.That(t, MissingParameter.Has(err))
	})

	t.Run("Conversion", func(t *testing.T) {
		_, err := ParseForm(map[string]string{"seed": "x1"}, false)
		assert.That(t, bigint.Conversion.Has(err))
		assert.That(t, strings.Contains(err.Error(), "seed"))
	})

	t.Run("Family", func(t *testing.T) {
		_, err := ParseForm(map[string]string{"family": "7+8k"}, false)
		assert.That(t, InvalidRange.Has(err))

		for in, want := range map[string]Family{
			"": ThreePlus8K, "3+8k": ThreePlus8K, " 5 + 8K ": FivePlus8K, "5": FivePlus8K,
		} {
			got, err := ParseFamily(in)
			assert.NoError(t, err)
			assert.Equal(t, got, want)
		}
		assert.Equal(t, FivePlus8K.String(), "5+8k")
	})
}
