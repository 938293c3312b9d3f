package mon

import "time"

// Thunk times an operation into its histogram. The zero value is ready to
// use and it is safe for concurrent use.
//
//	var runThunk mon.Thunk
//
//	func run() {
//		defer runThunk.Start().Stop()
//		...
//	}
type Thunk struct {
	Histogram
}

// Timer is an in progress timing started by a Thunk.
type Timer struct {
	h     *Histogram
	start time.Time
}

// Start begins timing an execution.
func (t *Thunk) Start() Timer {
	t.start()
	return Timer{h: &t.Histogram, start: time.Now()}
}

// Stop records the elapsed time since Start.
func (t Timer) Stop() {
	t.h.done(int64(time.Since(t.start)))
}
