package sim

import "github.com/zeebo/simlab/variate"

// Capital is the initial capital of an interest run: either a fixed amount,
// or drawn uniformly from [Min, Max] once per replication when Random is set.
type Capital struct {
	Amount float64
	Random bool
	Min    float64
	Max    float64
}

func (c Capital) validate() error {
	if c.Random {
		if !(c.Min > 0 && c.Max > 0) {
			return Error.New("capital range must be positive, got [%v, %v]", c.Min, c.Max)
		}
		if c.Min > c.Max {
			return Error.New("capital minimum %v is above the maximum %v", c.Min, c.Max)
		}
		return nil
	}
	if !(c.Amount > 0) {
		return Error.New("capital must be positive, got %v", c.Amount)
	}
	return nil
}

func (c Capital) draw(src variate.Source) float64 {
	if c.Random {
		return variate.Uniform(src, c.Min, c.Max)
	}
	return c.Amount
}

// InterestYear is the state after one year of compounding.
type InterestYear struct {
	Year     int
	Rate     float64
	Interest float64
	Capital  float64
}

// InterestResult is one replication of an interest run.
type InterestResult struct {
	Replication int
	Initial     float64
	Interest    float64
	Final       float64
	MeanRate    float64
	Years       []InterestYear
}

// Fields implements Result.
func (r InterestResult) Fields() []Field {
	return []Field{
		{"initial", r.Initial},
		{"interest", r.Interest},
		{"final", r.Final},
		{"mean rate", r.MeanRate},
	}
}

// compound applies rate(capital) once per year.
func compound(years int, initial float64, rate func(capital float64) float64) InterestResult {
	r := InterestResult{
		Initial: initial,
		Years:   make([]InterestYear, 0, years),
	}

	capital, rates := initial, 0.0
	for year := 1; year <= years; year++ {
		rt := rate(capital)
		interest := capital * rt
		capital += interest
		rates += rt
		r.Interest += interest
		r.Years = append(r.Years, InterestYear{
			Year:     year,
			Rate:     rt,
			Interest: interest,
			Capital:  capital,
		})
	}

	r.Final = capital
	if years > 0 {
		r.MeanRate = rates / float64(years)
	}
	return r
}

// FixedInterest compounds yearly at a single rate.
type FixedInterest struct {
	Years   int
	Rate    float64
	Capital Capital
}

// Validate checks the configuration.
func (f FixedInterest) Validate() error {
	if f.Years < 1 {
		return Error.New("years must be at least 1, got %d", f.Years)
	}
	if err := checkNonNegative("rate", f.Rate); err != nil {
		return err
	}
	return f.Capital.validate()
}

// Run simulates one replication.
func (f FixedInterest) Run(src variate.Source) InterestResult {
	return compound(f.Years, f.Capital.draw(src), func(float64) float64 { return f.Rate })
}

// Simulate runs n replications.
func (f FixedInterest) Simulate(seed uint64, n int) (Report[InterestResult], error) {
	if err := f.Validate(); err != nil {
		return Report[InterestResult]{}, err
	}
	if err := checkReplications(n); err != nil {
		return Report[InterestResult]{}, err
	}
	return newReport(Replicate("fixed-interest", seed, n, func(rep int, src variate.Source) InterestResult {
		r := f.Run(src)
		r.Replication = rep + 1
		return r
	})), nil
}

// Tiers picks a yearly rate from the capital at the start of the year:
// capital in [Min1, Max1] earns Rate1, in (Max1, Max2] earns Rate2, and any
// other capital earns Rate3.
type Tiers struct {
	Min1, Max1, Max2    float64
	Rate1, Rate2, Rate3 float64
}

// DefaultTiers returns the classroom tier table.
func DefaultTiers() Tiers {
	return Tiers{
		Min1: 0, Max1: 10000, Max2: 100000,
		Rate1: 0.035, Rate2: 0.037, Rate3: 0.04,
	}
}

// Rate returns the rate for the capital.
func (t Tiers) Rate(capital float64) float64 {
	switch {
	case capital >= t.Min1 && capital <= t.Max1:
		return t.Rate1
	case capital > t.Max1 && capital <= t.Max2:
		return t.Rate2
	default:
		return t.Rate3
	}
}

// TieredInterest compounds yearly at a rate chosen by the capital.
type TieredInterest struct {
	Years   int
	Tiers   Tiers
	Capital Capital
}

// Validate checks the configuration.
func (ti TieredInterest) Validate() error {
	t := ti.Tiers
	switch {
	case ti.Years < 1:
		return Error.New("years must be at least 1, got %d", ti.Years)
	case t.Max1 < 0:
		return Error.New("first tier maximum must be non-negative, got %v", t.Max1)
	case t.Max2 < t.Max1:
		return Error.New("second tier maximum %v is below the first %v", t.Max2, t.Max1)
	case t.Rate1 < 0 || t.Rate2 < 0 || t.Rate3 < 0:
		return Error.New("rates must be non-negative")
	}
	return ti.Capital.validate()
}

// Run simulates one replication.
func (ti TieredInterest) Run(src variate.Source) InterestResult {
	return compound(ti.Years, ti.Capital.draw(src), ti.Tiers.Rate)
}

// Simulate runs n replications.
func (ti TieredInterest) Simulate(seed uint64, n int) (Report[InterestResult], error) {
	if err := ti.Validate(); err != nil {
		return Report[InterestResult]{}, err
	}
	if err := checkReplications(n); err != nil {
		return Report[InterestResult]{}, err
	}
	return newReport(Replicate("tiered-interest", seed, n, func(rep int, src variate.Source) InterestResult {
		r := ti.Run(src)
		r.Replication = rep + 1
		return r
	})), nil
}
