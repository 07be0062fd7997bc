package progress

import "sync"

// Milestones reported during one send.
const (
	Started    = 10
	Prepared   = 20
	Dispatched = 30
	Received   = 90
	Done       = 100
)

// Func receives a completion percentage between 0 and 100.
type Func func(percent int)

// Report calls f when it is set.
func (f Func) Report(percent int) {
	if f != nil {
		f(percent)
	}
}

// Reporter wraps a callback so it only ever observes increasing values
// capped at Done.
type Reporter struct {
	mu   sync.Mutex
	fn   Func
	last int
}

// NewReporter returns a reporter for fn. A nil fn yields a reporter that
// drops every value.
func NewReporter(fn Func) *Reporter {
	return &Reporter{fn: fn}
}

// Report forwards percent when it is greater than the last value seen.
func (r *Reporter) Report(percent int) {
	if r == nil {
		return
	}
	if percent > Done {
		percent = Done
	}
	r.mu.Lock()
	if r.fn == nil || percent <= r.last {
		r.mu.Unlock()
		return
	}
	r.last = percent
	fn := r.fn
	r.mu.Unlock()
	fn(percent)
}

// Last returns the highest value forwarded so far.
func (r *Reporter) Last() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Func exposes the reporter as a plain callback for adapters.
func (r *Reporter) Func() Func {
	return r.Report
}
