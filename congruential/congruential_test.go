package congruential

import (
	"math/big"
	"testing"

	"github.com/zeebo/assert"

	"github.com/zeebo/simlab/bigint"
)

func n(v int64) *big.Int { return big.NewInt(v) }

func linearRequest() Request {
	return Request{
		Seed:      n(1),
		Index:     n(0),
		Increment: n(1),
		Range:     Modulus(n(16)),
		Decimals:  n(2),
		Length:    n(3),
	}
}

func multiplicativeRequest() Request {
	return Request{
		Seed:     n(17),
		Index:    n(2),
		Range:    Modulus(n(64)),
		Decimals: n(4),
		Length:   n(20),
	}
}

func states(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Current.String())
	}
	return out
}

func TestLinear(t *testing.T) {
	t.Run("EndToEnd", func(t *testing.T) {
		rows, meta, err := Linear(linearRequest())
		assert.NoError(t, err)

		assert.Equal(t, meta.Multiplier.String(), "1")
		assert.Equal(t, meta.Modulus.String(), "16")
		assert.Equal(t, meta.Exponent, 4)
		assert.DeepEqual(t, states(rows), []string{"2", "3", "4"})

		assert.Equal(t, rows[0].Index, 1)
		assert.Equal(t, rows[0].Previous.String(), "1")
		assert.Equal(t, rows[0].Operation(), "(1 * 1 + 1) mod 16")
		assert.Equal(t, rows[2].Operation(), "(1 * 3 + 1) mod 16")
		assert.Equal(t, rows[1].Normalized, 3.0/15.0)
	})

	t.Run("MetadataOwnsIntegers", func(t *testing.T) {
		rows, meta, err := Linear(linearRequest())
		assert.NoError(t, err)

		meta.Multiplier.SetInt64(7)
		meta.Modulus.SetInt64(99)
		assert.Equal(t, rows[0].Operation(), "(1 * 1 + 1) mod 16")
		assert.Equal(t, rows[2].Current.String(), "4")

		rows, meta, err = Multiplicative(multiplicativeRequest())
		assert.NoError(t, err)
		before := rows[0].Operation()
		meta.Multiplier.SetInt64(0)
		assert.Equal(t, rows[0].Operation(), before)
	})

	t.Run("Recurrence", func(t *testing.T) {
		huge := bigint.Pow2(200)
		req := Request{
			Seed:      new(big.Int).Sub(huge, n(12345)),
			Index:     n(987654321),
			Increment: n(-7919),
			Range:     Modulus(huge),
			Decimals:  n(0),
			Length:    n(500),
		}
		rows, meta, err := Linear(req)
		assert.NoError(t, err)
		assert.Equal(t, len(rows), 500)
		assert.Equal(t, meta.Exponent, 200)
		assert.Equal(t, meta.Multiplier.String(), "3950617285")

		x := new(big.Int)
		prev := req.Seed
		for _, row := range rows {
			assert.Equal(t, row.Previous.Cmp(prev), 0)

			x.Mul(meta.Multiplier, row.Previous)
			x.Add(x, req.Increment)
			x.Mod(x, meta.Modulus)
			assert.Equal(t, x.Cmp(row.Current), 0)

			assert.That(t, row.Normalized >= 0 && row.Normalized <= 1)
			prev = row.Current
		}
	})

	t.Run("FullPeriodReachesTop", func(t *testing.T) {
		req := linearRequest()
		req.Index = n(1)
		req.Length = n(16)
		rows, _, err := Linear(req)
		assert.NoError(t, err)

		seen := make(map[string]bool)
		top := false
		for _, row := range rows {
			seen[row.Current.String()] = true
			if row.Current.Int64() == 15 {
				assert.Equal(t, row.Normalized, 1.0)
				top = true
			}
		}
		assert.Equal(t, len(seen), 16)
		assert.That(t, top)
	})

	t.Run("CountMode", func(t *testing.T) {
		req := linearRequest()
		req.Range = Count(n(1000))
		req.Length = nil

		rows, meta, err := Linear(req)
		assert.NoError(t, err)
		assert.Equal(t, meta.Exponent, 11)
		assert.Equal(t, meta.Modulus.String(), "2048")
		assert.Equal(t, len(rows), 1000)

		req.Length = n(5)
		rows, _, err = Linear(req)
		assert.NoError(t, err)
		assert.Equal(t, len(rows), 5)
	})

	t.Run("NonCoprime", func(t *testing.T) {
		req := linearRequest()
		req.Increment = n(2)
		req.Range = Modulus(n(2048))
		rows, _, err := Linear(req)
		assert.That(t, NonCoprimeIncrement.Has(err))
		assert.Equal(t, len(rows), 0)

		req.Increment = n(0)
		_, _, err = Linear(req)
		assert.That(t, NonCoprimeIncrement.Has(err))
	})

	t.Run("NotPowerOfTwo", func(t *testing.T) {
		req := linearRequest()
		req.Range = Modulus(n(100))
		_, _, err := Linear(req)
		assert.That(t, bigint.NotPowerOfTwo.Has(err))
	})

	t.Run("ModulusOne", func(t *testing.T) {
		req := linearRequest()
		req.Range = Modulus(n(1))
		_, _, err := Linear(req)
		assert.That(t, InvalidRange.Has(err))
	})

	t.Run("CallerMutation", func(t *testing.T) {
		req := linearRequest()
		rows, _, err := Linear(req)
		assert.NoError(t, err)

		req.Seed.SetInt64(9)
		req.Increment.SetInt64(9)
		assert.Equal(t, rows[0].Previous.String(), "1")
		assert.Equal(t, rows[0].Step.Increment.String(), "1")
	})
}

func TestMultiplicative(t *testing.T) {
	t.Run("Recurrence", func(t *testing.T) {
		for _, fam := range []Family{ThreePlus8K, FivePlus8K} {
			req := multiplicativeRequest()
			req.Family = fam
			rows, meta, err := Multiplicative(req)
			assert.NoError(t, err)

			want := int64(3 + 8*2)
			if fam == FivePlus8K {
				want = 5 + 8*2
			}
			assert.Equal(t, meta.Multiplier.Int64(), want)
			assert.Equal(t, meta.Exponent, 6)

			x := new(big.Int)
			for _, row := range rows {
				x.Mul(meta.Multiplier, row.Previous)
				x.Mod(x, meta.Modulus)
				assert.Equal(t, x.Cmp(row.Current), 0)
				assert.That(t, row.Step.Increment == nil)
				assert.That(t, row.Current.Bit(0) == 1)
			}
		}
	})

	t.Run("Operation", func(t *testing.T) {
		rows, _, err := Multiplicative(multiplicativeRequest())
		assert.NoError(t, err)
		// a = 19, 19 * 17 = 323 = 5*64 + 3
		assert.Equal(t, rows[0].Operation(), "(19 * 17) mod 64")
		assert.Equal(t, rows[0].Current.String(), "3")
	})

	t.Run("EvenSeed", func(t *testing.T) {
		req := multiplicativeRequest()
		req.Seed = n(10)
		rows, _, err := Multiplicative(req)
		assert.That(t, EvenSeed.Has(err))
		assert.Equal(t, len(rows), 0)
	})

	t.Run("NotPowerOfTwo", func(t *testing.T) {
		req := multiplicativeRequest()
		req.Range = Modulus(n(100))
		_, _, err := Multiplicative(req)
		assert.That(t, bigint.NotPowerOfTwo.Has(err))
	})

	t.Run("CountMode", func(t *testing.T) {
		req := multiplicativeRequest()
		req.Range = Count(n(1000))
		req.Length = nil
		rows, meta, err := Multiplicative(req)
		assert.NoError(t, err)
		assert.Equal(t, meta.Modulus.String(), "2048")
		assert.Equal(t, len(rows), 1000)
	})

	t.Run("IncrementIgnored", func(t *testing.T) {
		req := multiplicativeRequest()
		a, _, err := Multiplicative(req)
		assert.NoError(t, err)

		req.Increment = n(3)
		b, _, err := Multiplicative(req)
		assert.NoError(t, err)
		assert.DeepEqual(t, states(a), states(b))
	})
}

func TestDeterministic(t *testing.T) {
	req := linearRequest()
	req.Index = n(12)
	req.Range = Count(n(300))
	req.Length = nil

	a, ma, err := Linear(req)
	assert.NoError(t, err)
	b, mb, err := Linear(req)
	assert.NoError(t, err)

	assert.DeepEqual(t, a, b)
	assert.DeepEqual(t, ma, mb)
	assert.Equal(t, Fingerprint(a), Fingerprint(b))

	req.Seed = n(2)
	c, _, err := Linear(req)
	assert.NoError(t, err)
	assert.That(t, Fingerprint(a) != Fingerprint(c))
}

func TestLinearParameters(t *testing.T) {
	meta, err := LinearParameters(n(3), n(1024), n(7))
	assert.NoError(t, err)
	assert.Equal(t, meta.Multiplier.String(), "13")
	assert.Equal(t, meta.Modulus.String(), "1024")
	assert.Equal(t, meta.Exponent, 10)

	_, err = LinearParameters(n(3), n(1000), n(7))
	assert.That(t, bigint.NotPowerOfTwo.Has(err))

	_, err = LinearParameters(n(3), n(1024), n(6))
	assert.That(t, NonCoprimeIncrement.Has(err))

	_, err = LinearParameters(nil, n(1024), n(7))
	assert.That(t, MissingParameter.Has(err))

	_, err = LinearParameters(n(-1), n(1024), n(7))
	assert.That(t, InvalidRange.Has(err))

	// the preview agrees with a full run
	req := linearRequest()
	req.Index, req.Increment, req.Range = n(3), n(7), Modulus(n(1024))
	_, full, err := Linear(req)
	assert.NoError(t, err)
	assert.DeepEqual(t, full, meta)
}

func BenchmarkLinear(b *testing.B) {
	req := Request{
		Seed:      n(12345),
		Index:     n(1 << 40),
		Increment: n(1),
		Range:     Modulus(bigint.Pow2(256)),
		Decimals:  n(4),
		Length:    n(1000),
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, _, err := Linear(req); err != nil {
			assert.NoError(b, err)
		}
	}
}
