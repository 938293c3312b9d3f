// Package mon keeps lock-free timing information about repeated operations
// such as simulation replications.
package mon

import (
	"sync/atomic"
	"time"
)

const (
	bufferShift = 8 // 256 elements
	bufferElems = 1 << bufferShift
	bufferMask  = bufferElems - 1
)

// Histogram is a ring of the most recent observed durations.
type Histogram struct {
	total   int64
	current int64
	durs    [bufferElems]int64
}

// start should be called before done, to keep track of concurrent executions.
func (h *Histogram) start() { atomic.AddInt64(&h.current, 1) }

// done stores the duration in the ring buffer, incrementing the count.
func (h *Histogram) done(dur int64) {
	loc := &h.durs[(atomic.AddInt64(&h.total, 1)-1)&bufferMask]
	atomic.StoreInt64(loc, dur)
	atomic.AddInt64(&h.current, -1)
}

// Total returns how many durations have been observed.
func (h *Histogram) Total() int64 { return atomic.LoadInt64(&h.total) }

// Current returns how many executions are in progress.
func (h *Histogram) Current() int64 { return atomic.LoadInt64(&h.current) }

// dursLen returns the number of valid entries in the durs buffer.
func (h *Histogram) dursLen() int {
	n := h.Total()
	if n > bufferElems {
		return bufferElems
	}
	return int(n)
}

// Durations returns a copy of the retained durations.
func (h *Histogram) Durations() []time.Duration {
	out := make([]time.Duration, h.dursLen())
	for i := range out {
		out[i] = time.Duration(atomic.LoadInt64(&h.durs[i]))
	}
	return out
}

// Average returns the mean of the retained durations, or zero if there are
// none.
func (h *Histogram) Average() time.Duration {
	n := h.dursLen()
	if n == 0 {
		return 0
	}
	total := int64(0)
	for i := 0; i < n; i++ {
		total += atomic.LoadInt64(&h.durs[i])
	}
	return time.Duration(total / int64(n))
}
