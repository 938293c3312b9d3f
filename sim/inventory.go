package sim

import (
	"math"

	"github.com/zeebo/simlab/variate"
)

// Inventory is a periodic review policy for a single stocked good. Every
// ReviewPeriod days an order tops the stock up to Capacity and arrives after
// a uniform lead time. Daily demand is exponential; unmet demand is lost.
type Inventory struct {
	Days         int
	Capacity     float64
	Initial      float64
	MeanDemand   float64
	OrderCost    float64 // per order placed
	UnitCost     float64 // acquisition cost per unit
	HoldingCost  float64 // per unit left in stock per day
	Price        float64 // sale price per unit
	ReviewPeriod int
	MinLead      int
	MaxLead      int
}

// DefaultInventory returns the classroom sugar inventory configuration.
func DefaultInventory() Inventory {
	return Inventory{
		Days:         27,
		Capacity:     700,
		Initial:      700,
		MeanDemand:   100,
		OrderCost:    100,
		UnitCost:     3.5,
		HoldingCost:  0.1,
		Price:        5,
		ReviewPeriod: 7,
		MinLead:      1,
		MaxLead:      3,
	}
}

// InventoryDay is the state at the end of one day. LeadTime is the number of
// days until the next pending order arrives, or -1 if none is pending.
type InventoryDay struct {
	Day             int
	Stock           float64
	Demand          float64
	Ordered         float64
	LeadTime        int
	OrderCost       float64
	AcquisitionCost float64
	HoldingCost     float64
	TotalCost       float64
	Lost            float64
}

// InventoryResult is one replication of the inventory policy.
type InventoryResult struct {
	Replication int
	Demand      float64
	Sold        float64
	Lost        float64
	Cost        float64
	Revenue     float64
	Net         float64
	Service     float64 // percent of demand served
	Days        []InventoryDay
}

// Fields implements Result.
func (r InventoryResult) Fields() []Field {
	return []Field{
		{"net", r.Net},
		{"cost", r.Cost},
		{"revenue", r.Revenue},
		{"demand", r.Demand},
		{"sold", r.Sold},
		{"lost", r.Lost},
		{"service %", r.Service},
	}
}

// Validate checks the configuration.
func (c Inventory) Validate() error {
	switch {
	case c.Days <= 0:
		return Error.New("days must be positive, got %d", c.Days)
	case !(c.Capacity > 0):
		return Error.New("capacity must be positive, got %v", c.Capacity)
	case c.Initial < 0 || c.Initial > c.Capacity:
		return Error.New("initial stock must be in [0, %v], got %v", c.Capacity, c.Initial)
	case c.ReviewPeriod <= 0:
		return Error.New("review period must be positive, got %d", c.ReviewPeriod)
	case c.MinLead < 0 || c.MaxLead < c.MinLead:
		return Error.New("lead times must satisfy 0 <= min <= max, got [%d, %d]", c.MinLead, c.MaxLead)
	}
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"mean demand", c.MeanDemand},
		{"order cost", c.OrderCost},
		{"unit cost", c.UnitCost},
		{"holding cost", c.HoldingCost},
		{"price", c.Price},
	} {
		if err := checkNonNegative(v.name, v.value); err != nil {
			return err
		}
	}
	return nil
}

type pendingOrder struct {
	qty     float64
	arrival int
}

// Run simulates one replication.
func (c Inventory) Run(src variate.Source) InventoryResult {
	var (
		r       InventoryResult
		stock   = c.Initial
		pending []pendingOrder
		ordCost float64
		acqCost float64
		hldCost float64
	)
	r.Days = make([]InventoryDay, 0, c.Days)

	for day := 1; day <= c.Days; day++ {
		kept := pending[:0]
		for _, o := range pending {
			if o.arrival <= day {
				stock = math.Min(stock+o.qty, c.Capacity)
			} else {
				kept = append(kept, o)
			}
		}
		pending = kept

		ordered, lead := 0.0, -1
		if day%c.ReviewPeriod == 0 && stock < c.Capacity {
			ordered = c.Capacity - stock
			lead = int(math.Round(variate.Uniform(src, float64(c.MinLead), float64(c.MaxLead))))
			pending = append(pending, pendingOrder{qty: ordered, arrival: day + lead})
			ordCost += c.OrderCost
			acqCost += ordered * c.UnitCost
		} else {
			for _, o := range pending {
				if d := o.arrival - day; lead < 0 || d < lead {
					lead = d
				}
			}
		}

		demand := math.Round(variate.Exponential(src, c.MeanDemand))
		sold := math.Min(stock, demand)
		stock -= sold
		hldCost += stock * c.HoldingCost

		r.Demand += demand
		r.Sold += sold
		r.Lost += demand - sold
		r.Revenue += sold * c.Price

		r.Days = append(r.Days, InventoryDay{
			Day:             day,
			Stock:           stock,
			Demand:          demand,
			Ordered:         ordered,
			LeadTime:        lead,
			OrderCost:       ordCost,
			AcquisitionCost: acqCost,
			HoldingCost:     hldCost,
			TotalCost:       ordCost + acqCost + hldCost,
			Lost:            r.Lost,
		})
	}

	r.Cost = ordCost + acqCost + hldCost
	r.Net = r.Revenue - r.Cost
	r.Service = 100
	if r.Demand > 0 {
		r.Service = r.Sold / r.Demand * 100
	}
	return r
}

// Simulate runs n replications.
func (c Inventory) Simulate(seed uint64, n int) (Report[InventoryResult], error) {
	if err := c.Validate(); err != nil {
		return Report[InventoryResult]{}, err
	}
	if err := checkReplications(n); err != nil {
		return Report[InventoryResult]{}, err
	}
	return newReport(Replicate("inventory", seed, n, func(rep int, src variate.Source) InventoryResult {
		r := c.Run(src)
		r.Replication = rep + 1
		return r
	})), nil
}
