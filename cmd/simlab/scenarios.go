package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"

	"github.com/zeebo/simlab/sim"
)

const diceHelp = `dice parameters:
simlab dice [-games n] [-cost c] [-payout p] [-reps r] [-seed s] [-json]
`

const inventoryHelp = `inventory parameters:
simlab inventory [-days n] [-capacity c] [-initial i] [-demand mean] [-order-cost c]
[-unit-cost c] [-holding-cost c] [-price p] [-review days] [-min-lead days]
[-max-lead days] [-reps r] [-seed s] [-detail] [-json]
`

const shopHelp = `shop parameters:
simlab shop [-hours n] [-fixed-cost c] [-price p] [-unit-cost c] [-min-arrivals n]
[-max-arrivals n] [-weights w0,w1,...] [-reps r] [-seed s] [-json]
`

const eggsHelp = `eggs parameters:
simlab eggs [-days n] [-lambda l] [-egg-price p] [-chick-price p] [-broken p]
[-hatched p] [-sold p] [-survives p] [-reps r] [-seed s] [-detail] [-json]
`

const fixedInterestHelp = `fixed-interest parameters:
simlab fixed-interest [-years n] [-rate r] (-capital c | -random -min c -max c)
[-reps r] [-seed s] [-detail] [-json]
`

const tieredInterestHelp = `tiered-interest parameters:
simlab tiered-interest [-years n] [-max1 c] [-max2 c] [-rate1 r] [-rate2 r] [-rate3 r]
(-capital c | -random -min c -max c) [-reps r] [-seed s] [-detail] [-json]
`

// run holds the flags shared by the scenario commands.
type run struct {
	opts   options
	reps   int
	seed   uint64
	detail bool
}

func newScenarioFlagSet(name, help string, r *run) *flag.FlagSet {
	fs := newFlagSet(name, help, &r.opts)
	fs.IntVar(&r.reps, "reps", 1, "number of replications")
	fs.Uint64Var(&r.seed, "seed", 1, "seed of the replication streams")
	return fs
}

func capitalFlags(fs *flag.FlagSet, c *sim.Capital) {
	fs.Float64Var(&c.Amount, "capital", 10000, "initial capital")
	fs.BoolVar(&c.Random, "random", false, "draw the initial capital uniformly from [min, max]")
	fs.Float64Var(&c.Min, "min", 8000, "minimum random capital")
	fs.Float64Var(&c.Max, "max", 15000, "maximum random capital")
}

// simulate runs a scenario and writes its report.
func simulate[T sim.Result](
	fs *flag.FlagSet, r *run, args []string, out io.Writer,
	fn func() (sim.Report[T], error),
	detail func(w io.Writer, rep T) error,
) error {
	l, err := parse(fs, &r.opts, args)
	if err != nil {
		return err
	}
	l.Debug("simulating", "reps", r.reps, "seed", r.seed)

	report, err := fn()
	if err != nil {
		return fail(l, err)
	}
	logTiming(l)

	if r.opts.json {
		return writeJSON(out, report)
	}
	if err := renderReport(out, report); err != nil {
		return err
	}
	if r.detail && detail != nil && len(report.Replications) > 0 {
		last := report.Replications[len(report.Replications)-1]
		fmt.Fprintf(out, "\nreplication %d\n", len(report.Replications))
		return detail(out, last)
	}
	return nil
}

func logTiming(l *log.Logger) {
	total, avg := sim.Timing()
	l.Debug("replications", "total", total, "average", avg)
}

func runDice(args []string, out io.Writer) error {
	var r run
	d := sim.DefaultDice()
	fs := newScenarioFlagSet("dice", diceHelp, &r)
	fs.IntVar(&d.Games, "games", d.Games, "games per replication")
	fs.Float64Var(&d.Cost, "cost", d.Cost, "paid to the house when the sum is not seven")
	fs.Float64Var(&d.Payout, "payout", d.Payout, "paid to the player on a seven")

	return simulate(fs, &r, args, out,
		func() (sim.Report[sim.DiceResult], error) { return d.Simulate(r.seed, r.reps) },
		nil)
}

func runInventory(args []string, out io.Writer) error {
	var r run
	c := sim.DefaultInventory()
	fs := newScenarioFlagSet("inventory", inventoryHelp, &r)
	fs.BoolVar(&r.detail, "detail", false, "print the days of the last replication")
	fs.IntVar(&c.Days, "days", c.Days, "days simulated")
	fs.Float64Var(&c.Capacity, "capacity", c.Capacity, "storage capacity")
	fs.Float64Var(&c.Initial, "initial", c.Initial, "initial stock")
	fs.Float64Var(&c.MeanDemand, "demand", c.MeanDemand, "mean daily demand")
	fs.Float64Var(&c.OrderCost, "order-cost", c.OrderCost, "cost per order placed")
	fs.Float64Var(&c.UnitCost, "unit-cost", c.UnitCost, "acquisition cost per unit")
	fs.Float64Var(&c.HoldingCost, "holding-cost", c.HoldingCost, "holding cost per unit per day")
	fs.Float64Var(&c.Price, "price", c.Price, "sale price per unit")
	fs.IntVar(&c.ReviewPeriod, "review", c.ReviewPeriod, "days between reviews")
	fs.IntVar(&c.MinLead, "min-lead", c.MinLead, "minimum lead time in days")
	fs.IntVar(&c.MaxLead, "max-lead", c.MaxLead, "maximum lead time in days")

	return simulate(fs, &r, args, out,
		func() (sim.Report[sim.InventoryResult], error) { return c.Simulate(r.seed, r.reps) },
		renderInventoryDays)
}

func runShop(args []string, out io.Writer) error {
	var (
		r       run
		weights string
	)
	s := sim.DefaultShop()
	fs := newScenarioFlagSet("shop", shopHelp, &r)
	fs.IntVar(&s.Hours, "hours", s.Hours, "opening hours")
	fs.Float64Var(&s.FixedCost, "fixed-cost", s.FixedCost, "fixed cost per day")
	fs.Float64Var(&s.Price, "price", s.Price, "price per item")
	fs.Float64Var(&s.UnitCost, "unit-cost", s.UnitCost, "cost per item")
	fs.IntVar(&s.MinArrivals, "min-arrivals", s.MinArrivals, "minimum arrivals per hour")
	fs.IntVar(&s.MaxArrivals, "max-arrivals", s.MaxArrivals, "maximum arrivals per hour")
	fs.StringVar(&weights, "weights", formatWeights(s.ItemWeights), "relative weight of buying 0, 1, 2, ... items")

	return simulate(fs, &r, args, out,
		func() (sim.Report[sim.ShopResult], error) {
			w, err := parseWeights(weights)
			if err != nil {
				return sim.Report[sim.ShopResult]{}, err
			}
			s.ItemWeights = w
			return s.Simulate(r.seed, r.reps)
		},
		nil)
}

func runEggs(args []string, out io.Writer) error {
	var r run
	e := sim.DefaultEggs()
	fs := newScenarioFlagSet("eggs", eggsHelp, &r)
	fs.BoolVar(&r.detail, "detail", false, "print the days of the last replication")
	fs.IntVar(&e.Days, "days", e.Days, "days simulated")
	fs.Float64Var(&e.Lambda, "lambda", e.Lambda, "mean eggs laid per day")
	fs.Float64Var(&e.EggPrice, "egg-price", e.EggPrice, "price of a sold egg")
	fs.Float64Var(&e.ChickPrice, "chick-price", e.ChickPrice, "price of a surviving chick")
	fs.Float64Var(&e.Broken, "broken", e.Broken, "probability an egg breaks")
	fs.Float64Var(&e.Hatched, "hatched", e.Hatched, "probability an egg hatches")
	fs.Float64Var(&e.Sold, "sold", e.Sold, "probability an egg is sold")
	fs.Float64Var(&e.Survives, "survives", e.Survives, "probability a chick survives")

	return simulate(fs, &r, args, out,
		func() (sim.Report[sim.EggsResult], error) { return e.Simulate(r.seed, r.reps) },
		renderEggsDays)
}

func runFixedInterest(args []string, out io.Writer) error {
	var r run
	f := sim.FixedInterest{Years: 10, Rate: 0.035}
	fs := newScenarioFlagSet("fixed-interest", fixedInterestHelp, &r)
	fs.BoolVar(&r.detail, "detail", false, "print the years of the last replication")
	fs.IntVar(&f.Years, "years", f.Years, "years compounded")
	fs.Float64Var(&f.Rate, "rate", f.Rate, "yearly rate")
	capitalFlags(fs, &f.Capital)

	return simulate(fs, &r, args, out,
		func() (sim.Report[sim.InterestResult], error) { return f.Simulate(r.seed, r.reps) },
		renderInterestYears)
}

func runTieredInterest(args []string, out io.Writer) error {
	var r run
	ti := sim.TieredInterest{Years: 10, Tiers: sim.DefaultTiers()}
	fs := newScenarioFlagSet("tiered-interest", tieredInterestHelp, &r)
	fs.BoolVar(&r.detail, "detail", false, "print the years of the last replication")
	fs.IntVar(&ti.Years, "years", ti.Years, "years compounded")
	fs.Float64Var(&ti.Tiers.Min1, "min1", ti.Tiers.Min1, "lower bound of the first tier")
	fs.Float64Var(&ti.Tiers.Max1, "max1", ti.Tiers.Max1, "upper bound of the first tier")
	fs.Float64Var(&ti.Tiers.Max2, "max2", ti.Tiers.Max2, "upper bound of the second tier")
	fs.Float64Var(&ti.Tiers.Rate1, "rate1", ti.Tiers.Rate1, "first tier rate")
	fs.Float64Var(&ti.Tiers.Rate2, "rate2", ti.Tiers.Rate2, "second tier rate")
	fs.Float64Var(&ti.Tiers.Rate3, "rate3", ti.Tiers.Rate3, "rate above the second tier")
	capitalFlags(fs, &ti.Capital)

	return simulate(fs, &r, args, out,
		func() (sim.Report[sim.InterestResult], error) { return ti.Simulate(r.seed, r.reps) },
		renderInterestYears)
}

func parseWeights(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		w, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, sim.Error.New("weight %q is not a number", part)
		}
		out = append(out, w)
	}
	return out, nil
}

func formatWeights(ws []float64) string {
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = strconv.FormatFloat(w, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func renderReport[T sim.Result](w io.Writer, report sim.Report[T]) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)

	header := []string{"rep"}
	for _, f := range report.Means {
		header = append(header, f.Name)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for i, rep := range report.Replications {
		cells := []string{strconv.Itoa(i + 1)}
		for _, f := range rep.Fields() {
			cells = append(cells, formatValue(f.Value))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}

	cells := []string{"mean"}
	for _, f := range report.Means {
		cells = append(cells, formatValue(f.Value))
	}
	fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	return tw.Flush()
}

func renderInventoryDays(w io.Writer, r sim.InventoryResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "day\tstock\tdemand\tordered\tlead\torder cost\tacquisition\tholding\ttotal cost\tlost\t")
	for _, d := range r.Days {
		lead := "-"
		if d.LeadTime >= 0 {
			lead = strconv.Itoa(d.LeadTime)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			d.Day, formatValue(d.Stock), formatValue(d.Demand), formatValue(d.Ordered), lead,
			formatValue(d.OrderCost), formatValue(d.AcquisitionCost), formatValue(d.HoldingCost),
			formatValue(d.TotalCost), formatValue(d.Lost))
	}
	return tw.Flush()
}

func renderEggsDays(w io.Writer, r sim.EggsResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "day\tlaid\tbroken\tsold\thatched\talive\tdead\tincome\t")
	for _, d := range r.Days {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\t%d\t%s\t\n",
			d.Day, d.Laid, d.Broken, d.Sold, d.Hatched, d.Alive, d.Dead, formatValue(d.Income))
	}
	return tw.Flush()
}

func renderInterestYears(w io.Writer, r sim.InterestResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "year\trate\tinterest\tcapital\t")
	for _, y := range r.Years {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n",
			y.Year, strconv.FormatFloat(y.Rate, 'f', 4, 64), formatValue(y.Interest), formatValue(y.Capital))
	}
	return tw.Flush()
}
