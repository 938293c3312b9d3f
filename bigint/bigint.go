// Package bigint contains the arbitrary-precision helpers used by the
// congruential generators. Every value is a *big.Int so that moduli far past
// 64 bits keep exact arithmetic.
package bigint

import (
	"math"
	"math/big"
	"strings"

	"github.com/zeebo/errs"
)

var (
	// Conversion is the class of errors for values that are not integers.
	Conversion = errs.Class("conversion")

	// NotPowerOfTwo is the class of errors for moduli that are not 2^g.
	NotPowerOfTwo = errs.Class("not a power of two")
)

var one = big.NewInt(1)

// ToInteger converts v into a fresh *big.Int. It accepts big integers, every
// Go integer kind, floats (truncated toward zero) and base 10 strings. A
// string with a fractional part is truncated toward zero as well.
func ToInteger(v interface{}) (*big.Int, error) {
	switch v := v.(type) {
	case *big.Int:
		if v == nil {
			return nil, Conversion.New("nil integer")
		}
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case int:
		return big.NewInt(int64(v)), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case float32:
		return fromFloat(float64(v))
	case float64:
		return fromFloat(v)
	case string:
		return fromString(v)
	default:
		return nil, Conversion.New("unsupported type %T", v)
	}
}

func fromFloat(f float64) (*big.Int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, Conversion.New("non-finite value %v", f)
	}
	// big.Float.Int truncates toward zero, and is exact for large floats
	// where int64 conversion would overflow.
	n, _ := new(big.Float).SetFloat64(f).Int(nil)
	return n, nil
}

func fromString(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, Conversion.New("empty string")
	}
	if n, ok := new(big.Int).SetString(s, 10); ok {
		return n, nil
	}

	// allow "12.75" style input, truncated like a float would be.
	i := strings.IndexByte(s, '.')
	if i < 0 || !digits(s[i+1:]) {
		return nil, Conversion.New("invalid integer %q", s)
	}
	whole := s[:i]
	switch whole {
	case "", "+", "-":
		if i+1 == len(s) {
			return nil, Conversion.New("invalid integer %q", s)
		}
		return new(big.Int), nil
	}
	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return nil, Conversion.New("invalid integer %q", s)
	}
	return n, nil
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// GCD returns the greatest common divisor of |a| and |b|. GCD(a, 0) is |a|.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)
	if y.Sign() == 0 {
		return x
	}
	if x.Sign() == 0 {
		return y
	}
	return x.GCD(nil, nil, x, y)
}

// IsPowerOfTwo reports if m > 0 and m & (m-1) == 0.
func IsPowerOfTwo(m *big.Int) bool {
	if m == nil || m.Sign() <= 0 {
		return false
	}
	dec := new(big.Int).Sub(m, one)
	return dec.And(dec, m).Sign() == 0
}

// Log2 returns g such that m = 2^g.
func Log2(m *big.Int) (int, error) {
	if !IsPowerOfTwo(m) {
		return 0, NotPowerOfTwo.New("%v", m)
	}
	return m.BitLen() - 1, nil
}

// Pow2 returns 2^g.
func Pow2(g int) *big.Int {
	return new(big.Int).Lsh(one, uint(g))
}

// Ratio returns x / d as the closest float64. It returns 0 if d is zero.
func Ratio(x, d *big.Int) float64 {
	if d.Sign() == 0 {
		return 0
	}
	q := new(big.Float).Quo(new(big.Float).SetInt(x), new(big.Float).SetInt(d))
	f, _ := q.Float64()
	return f
}
