package sim

import "github.com/zeebo/simlab/variate"

// Shop models a day of customer arrivals. Each hour a uniform number of
// customers in [MinArrivals, MaxArrivals] arrive, and each buys i items with
// probability proportional to ItemWeights[i].
type Shop struct {
	Hours       int
	FixedCost   float64 // per day
	Price       float64 // per item sold
	UnitCost    float64 // per item sold
	MinArrivals int
	MaxArrivals int
	ItemWeights []float64
}

// DefaultShop returns the classroom shop configuration.
func DefaultShop() Shop {
	return Shop{
		Hours:       10,
		FixedCost:   300,
		Price:       75,
		UnitCost:    50,
		MinArrivals: 0,
		MaxArrivals: 4,
		ItemWeights: []float64{0.2, 0.3, 0.4, 0.1},
	}
}

// ShopResult is one simulated day.
type ShopResult struct {
	Replication int
	Customers   int
	Items       int
	Net         float64
}

// Fields implements Result.
func (r ShopResult) Fields() []Field {
	return []Field{
		{"customers", float64(r.Customers)},
		{"items", float64(r.Items)},
		{"net", r.Net},
	}
}

// Validate checks the configuration.
func (s Shop) Validate() error {
	switch {
	case s.Hours <= 0:
		return Error.New("hours must be positive, got %d", s.Hours)
	case s.MinArrivals < 0 || s.MaxArrivals < s.MinArrivals:
		return Error.New("arrivals must satisfy 0 <= min <= max, got [%d, %d]", s.MinArrivals, s.MaxArrivals)
	case len(s.ItemWeights) == 0:
		return Error.New("item weights are required")
	}
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"fixed cost", s.FixedCost},
		{"price", s.Price},
		{"unit cost", s.UnitCost},
	} {
		if err := checkNonNegative(v.name, v.value); err != nil {
			return err
		}
	}

	total := 0.0
	for _, w := range s.ItemWeights {
		if err := checkNonNegative("item weight", w); err != nil {
			return err
		}
		total += w
	}
	if total <= 0 {
		return Error.New("item weights must not all be zero")
	}
	return nil
}

// Run simulates one day.
func (s Shop) Run(src variate.Source) ShopResult {
	var r ShopResult
	for h := 0; h < s.Hours; h++ {
		customers := variate.UniformInt(src, s.MinArrivals, s.MaxArrivals)
		r.Customers += customers
		for i := 0; i < customers; i++ {
			r.Items += variate.Discrete(src, s.ItemWeights)
		}
	}
	r.Net = (s.Price-s.UnitCost)*float64(r.Items) - s.FixedCost
	return r
}

// Simulate runs n replications.
func (s Shop) Simulate(seed uint64, n int) (Report[ShopResult], error) {
	if err := s.Validate(); err != nil {
		return Report[ShopResult]{}, err
	}
	if err := checkReplications(n); err != nil {
		return Report[ShopResult]{}, err
	}
	return newReport(Replicate("shop", seed, n, func(rep int, src variate.Source) ShopResult {
		r := s.Run(src)
		r.Replication = rep + 1
		return r
	})), nil
}
