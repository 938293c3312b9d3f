package congruential

import (
	"math/big"
	"strings"

	"github.com/zeebo/simlab/bigint"
)

// MaxLength is the largest number of rows a single request may produce.
const MaxLength = 1 << 20

// Family selects the multiplier formula of the multiplicative generator.
type Family int

const (
	// ThreePlus8K uses a = 3 + 8k.
	ThreePlus8K Family = iota

	// FivePlus8K uses a = 5 + 8k.
	FivePlus8K
)

// ParseFamily parses "3+8k" or "5+8k". Spaces and case are ignored.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.Join(strings.Fields(s), "")) {
	case "", "3+8k", "3":
		return ThreePlus8K, nil
	case "5+8k", "5":
		return FivePlus8K, nil
	default:
		return 0, InvalidRange.New("unknown multiplier family %q", s)
	}
}

func (f Family) base() int64 {
	if f == FivePlus8K {
		return 5
	}
	return 3
}

func (f Family) String() string {
	if f == FivePlus8K {
		return "5+8k"
	}
	return "3+8k"
}

// Request holds the inputs to either generator. A nil field is missing.
type Request struct {
	Seed      *big.Int // X0
	Index     *big.Int // k, used to derive the multiplier
	Increment *big.Int // c, linear generator only
	Range     Range    // modulus, or count of values to generate
	Decimals  *big.Int // display precision of normalized values
	Length    *big.Int // number of values; defaults to the count in count mode
	Family    Family   // multiplicative generator only
}

// Validate checks presence and sign constraints of the request. It does not
// check the number theoretic requirements, which depend on the modulus.
func (r Request) Validate(linear bool) error {
	switch {
	case r.Seed == nil:
		return MissingParameter.New("seed")
	case r.Index == nil:
		return MissingParameter.New("multiplier index")
	case r.Range.Missing():
		return MissingParameter.New("modulus or count")
	case r.Decimals == nil:
		return MissingParameter.New("decimal places")
	case linear && r.Increment == nil:
		return MissingParameter.New("increment")
	case !r.Range.IsCount() && r.Length == nil:
		return MissingParameter.New("output length")
	}

	if r.Length != nil {
		if r.Length.Sign() <= 0 {
			return InvalidRange.New("output length must be positive, got %v", r.Length)
		}
		if r.Length.Cmp(big.NewInt(MaxLength)) > 0 {
			return InvalidRange.New("output length must be at most %d, got %v", MaxLength, r.Length)
		}
	}
	if r.Range.Value().Sign() <= 0 {
		return InvalidRange.New("modulus or count must be positive, got %v", r.Range.Value())
	}
	if r.Range.IsCount() && r.Length == nil && r.Range.Value().Cmp(big.NewInt(MaxLength)) > 0 {
		return InvalidRange.New("count must be at most %d when no output length is given, got %v",
			MaxLength, r.Range.Value())
	}
	if r.Decimals.Sign() < 0 {
		return InvalidRange.New("decimal places must be non-negative, got %v", r.Decimals)
	}
	if r.Seed.Sign() < 0 {
		return InvalidRange.New("seed must be non-negative, got %v", r.Seed)
	}
	if r.Index.Sign() < 0 {
		return InvalidRange.New("multiplier index must be non-negative, got %v", r.Index)
	}
	return nil
}

// length returns the number of rows to generate. It assumes Validate passed.
func (r Request) length() int {
	if r.Length != nil {
		return int(r.Length.Int64())
	}
	return int(r.Range.Value().Int64())
}

// form field names understood by ParseForm.
const (
	FieldSeed      = "seed"
	FieldIndex     = "k"
	FieldIncrement = "c"
	FieldRange     = "p"
	FieldDecimals  = "d"
	FieldLength    = "n"
	FieldFamily    = "family"
)

// ParseForm builds a Request from textual fields. Empty or absent fields stay
// missing so that Validate can name them. If count is true the "p" field is
// the count of values to generate, otherwise it is the modulus.
func ParseForm(fields map[string]string, count bool) (Request, error) {
	parse := func(name string) (*big.Int, error) {
		raw := strings.TrimSpace(fields[name])
		if raw == "" {
			return nil, nil
		}
		n, err := bigint.ToInteger(raw)
		if err != nil {
			return nil, bigint.Conversion.New("%s: %q is not an integer", name, raw)
		}
		return n, nil
	}

	var (
		req Request
		p   *big.Int
		err error
	)
	for _, f := range []struct {
		name string
		dst  **big.Int
	}{
		{FieldSeed, &req.Seed},
		{FieldIndex, &req.Index},
		{FieldIncrement, &req.Increment},
		{FieldRange, &p},
		{FieldDecimals, &req.Decimals},
		{FieldLength, &req.Length},
	} {
		if *f.dst, err = parse(f.name); err != nil {
			return Request{}, err
		}
	}

	if p != nil {
		if count {
			req.Range = Count(p)
		} else {
			req.Range = Modulus(p)
		}
	}

	req.Family, err = ParseFamily(fields[FieldFamily])
	if err != nil {
		return Request{}, err
	}
	return req, nil
}
