package sim

import "github.com/zeebo/simlab/variate"

// Eggs models a hen house. Each day a Poisson number of eggs are laid. Each
// egg breaks with probability Broken, hatches into a chick with probability
// Hatched, or is sold with probability Sold; any remaining probability mass
// is eggs kept. A chick survives to be sold with probability Survives.
type Eggs struct {
	Days       int
	Lambda     float64 // mean eggs per day
	EggPrice   float64
	ChickPrice float64
	Broken     float64
	Hatched    float64
	Sold       float64
	Survives   float64
}

// DefaultEggs returns the classroom egg configuration.
func DefaultEggs() Eggs {
	return Eggs{
		Days:       10,
		Lambda:     10,
		EggPrice:   1,
		ChickPrice: 5,
		Broken:     0.2,
		Hatched:    0.3,
		Sold:       0.5,
		Survives:   0.8,
	}
}

// EggsDay is the outcome of one day.
type EggsDay struct {
	Day     int
	Laid    int
	Broken  int
	Sold    int
	Hatched int
	Alive   int
	Dead    int
	Income  float64
}

// EggsResult is one replication of the hen house.
type EggsResult struct {
	Replication int
	Laid        int
	Broken      int
	Sold        int
	Hatched     int
	Alive       int
	Dead        int
	Income      float64
	DailyIncome float64
	Days        []EggsDay
}

// Fields implements Result.
func (r EggsResult) Fields() []Field {
	return []Field{
		{"laid", float64(r.Laid)},
		{"broken", float64(r.Broken)},
		{"sold", float64(r.Sold)},
		{"hatched", float64(r.Hatched)},
		{"alive", float64(r.Alive)},
		{"dead", float64(r.Dead)},
		{"income", r.Income},
		{"daily income", r.DailyIncome},
	}
}

// Validate checks the configuration.
func (e Eggs) Validate() error {
	if e.Days <= 0 {
		return Error.New("days must be positive, got %d", e.Days)
	}
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"lambda", e.Lambda},
		{"egg price", e.EggPrice},
		{"chick price", e.ChickPrice},
	} {
		if err := checkNonNegative(v.name, v.value); err != nil {
			return err
		}
	}
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"broken", e.Broken},
		{"hatched", e.Hatched},
		{"sold", e.Sold},
		{"survives", e.Survives},
	} {
		if err := checkProbability(v.name, v.value); err != nil {
			return err
		}
	}
	if sum := e.Broken + e.Hatched + e.Sold; sum > 1+1e-9 {
		return Error.New("egg outcome probabilities sum to %v, more than 1", sum)
	}
	return nil
}

// Run simulates one replication.
func (e Eggs) Run(src variate.Source) EggsResult {
	var r EggsResult
	r.Days = make([]EggsDay, 0, e.Days)

	for day := 1; day <= e.Days; day++ {
		d := EggsDay{Day: day, Laid: variate.Poisson(src, e.Lambda)}
		for i := 0; i < d.Laid; i++ {
			switch u := src.Float64(); {
			case u < e.Broken:
				d.Broken++
			case u < e.Broken+e.Hatched:
				d.Hatched++
				if variate.Bernoulli(src, e.Survives) {
					d.Alive++
				} else {
					d.Dead++
				}
			case u < e.Broken+e.Hatched+e.Sold:
				d.Sold++
			}
		}
		d.Income = float64(d.Sold)*e.EggPrice + float64(d.Alive)*e.ChickPrice

		r.Laid += d.Laid
		r.Broken += d.Broken
		r.Sold += d.Sold
		r.Hatched += d.Hatched
		r.Alive += d.Alive
		r.Dead += d.Dead
		r.Income += d.Income
		r.Days = append(r.Days, d)
	}

	r.DailyIncome = r.Income / float64(e.Days)
	return r
}

// Simulate runs n replications.
func (e Eggs) Simulate(seed uint64, n int) (Report[EggsResult], error) {
	if err := e.Validate(); err != nil {
		return Report[EggsResult]{}, err
	}
	if err := checkReplications(n); err != nil {
		return Report[EggsResult]{}, err
	}
	return newReport(Replicate("eggs", seed, n, func(rep int, src variate.Source) EggsResult {
		r := e.Run(src)
		r.Replication = rep + 1
		return r
	})), nil
}
