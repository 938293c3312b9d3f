// Package sim contains the Monte-Carlo teaching scenarios: a dice game, an
// inventory review policy, shop arrivals, an egg and chick population, and
// fixed or tiered interest compounding.
//
// Every scenario runs a number of independent replications. Replication i
// draws from its own generator seeded from the scenario name, the run seed
// and i, so results do not depend on how replications are scheduled.
package sim

import (
	"encoding/binary"
	"time"

	"github.com/cespare/xxhash"
	"github.com/exascience/pargo/parallel"
	"github.com/zeebo/errs"

	"github.com/zeebo/simlab/internal/mon"
	"github.com/zeebo/simlab/internal/pcg"
	"github.com/zeebo/simlab/variate"
)

// Error is the class of invalid scenario configurations.
var Error = errs.Class("sim")

// MaxReplications bounds the number of replications of a single run.
const MaxReplications = 1 << 16

var replicateThunk mon.Thunk // timing info for a single replication

// Timing returns how many replications have run in this process and the
// average duration of the most recent ones.
func Timing() (total int64, average time.Duration) {
	return replicateThunk.Total(), replicateThunk.Average()
}

// Field is a named numeric output of a replication.
type Field struct {
	Name  string
	Value float64
}

// Result is the outcome of one replication.
type Result interface {
	Fields() []Field
}

// Report holds every replication of a run and the mean of each field.
type Report[T Result] struct {
	Replications []T
	Means        []Field
}

func newReport[T Result](reps []T) Report[T] {
	var means []Field
	for i, rep := range reps {
		fields := rep.Fields()
		if i == 0 {
			means = make([]Field, len(fields))
			for j, f := range fields {
				means[j].Name = f.Name
			}
		}
		for j, f := range fields {
			means[j].Value += f.Value
		}
	}
	for j := range means {
		means[j].Value /= float64(len(reps))
	}
	return Report[T]{Replications: reps, Means: means}
}

// Stream returns the generator for replication rep of the named scenario.
func Stream(name string, seed uint64, rep int) variate.Source {
	buf := make([]byte, 0, len(name)+16)
	buf = append(buf, name...)
	buf = binary.LittleEndian.AppendUint64(buf, seed)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(rep))

	p := pcg.New(xxhash.Sum64(buf), uint64(rep))
	return &p
}

// Replicate runs fn for n replications in parallel and returns the results in
// replication order.
func Replicate[T any](name string, seed uint64, n int, fn func(rep int, src variate.Source) T) []T {
	if n <= 0 {
		return nil
	}

	out := make([]T, n)
	parallel.Range(0, n, 0, func(low, high int) {
		for rep := low; rep < high; rep++ {
			timer := replicateThunk.Start()
			out[rep] = fn(rep, Stream(name, seed, rep))
			timer.Stop()
		}
	})
	return out
}

func checkReplications(n int) error {
	if n <= 0 || n > MaxReplications {
		return Error.New("replications must be in [1, %d], got %d", MaxReplications, n)
	}
	return nil
}

func checkProbability(name string, p float64) error {
	if !(p >= 0 && p <= 1) {
		return Error.New("%s must be a probability in [0, 1], got %v", name, p)
	}
	return nil
}

func checkNonNegative(name string, v float64) error {
	if !(v >= 0) {
		return Error.New("%s must be non-negative, got %v", name, v)
	}
	return nil
}
