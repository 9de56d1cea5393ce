// Package reptest measures a block of work repeatedly for a wall-clock
// window and tracks the best, worst, and average run in cycles and page
// faults. It answers a different question than the profiler: not "where did
// the time go" but "how fast can this block go when the caches are warm".
package reptest

import (
	"time"

	"github.com/cycleprof/cycleprof/pkg/cycles"
)

// Case is the measurement of a single run.
type Case struct {
	Cycles     uint64
	PageFaults uint64
}

// Results aggregates every completed run of a tester.
type Results struct {
	Count           uint64
	TotalCycles     uint64
	TotalPageFaults uint64
	Min             Case
	Max             Case
}

// AvgCycles returns the mean cycles per run, or 0 before any run completes.
func (r Results) AvgCycles() float64 {
	if r.Count == 0 {
		return 0
	}
	return float64(r.TotalCycles) / float64(r.Count)
}

// AvgPageFaults returns the mean page faults per run.
func (r Results) AvgPageFaults() float64 {
	if r.Count == 0 {
		return 0
	}
	return float64(r.TotalPageFaults) / float64(r.Count)
}

// Tester drives repeated runs of a measured block:
//
//	t := reptest.New(5 * time.Second)
//	for t.Testing() {
//		t.Start()
//		workUnderTest()
//		t.Stop()
//	}
//
// The window restarts whenever a new minimum is found, so a block keeps
// getting retested for as long as it keeps getting faster.
type Tester struct {
	window   time.Duration
	windowed time.Time

	startCount uint64
	stopCount  uint64
	runCycles  uint64
	runFaults  uint64

	err     error
	results Results

	now    func() uint64
	faults func() uint64
}

// New creates a tester that keeps measuring until no new minimum has been
// seen for the given window.
func New(window time.Duration) *Tester {
	return &Tester{
		window:   window,
		windowed: time.Now(),
		results:  Results{Min: Case{Cycles: ^uint64(0)}},
		now:      cycles.Now,
		faults:   pageFaults,
	}
}

// Reset discards all state and begins a fresh window.
func (t *Tester) Reset(window time.Duration) {
	t.window = window
	t.windowed = time.Now()
	t.startCount = 0
	t.stopCount = 0
	t.runCycles = 0
	t.runFaults = 0
	t.err = nil
	t.results = Results{Min: Case{Cycles: ^uint64(0)}}
}

// Testing folds the previous run into the results and reports whether another
// run should execute. It returns false once the window expires without a new
// minimum, or when a run had unmatched Start/Stop calls.
func (t *Tester) Testing() bool {
	if t.err != nil {
		return false
	}
	if time.Since(t.windowed) >= t.window {
		return false
	}

	if t.startCount > 0 {
		if t.startCount != t.stopCount {
			t.err = errUnmatched
			return false
		}

		t.results.Count++
		t.results.TotalCycles += t.runCycles
		t.results.TotalPageFaults += t.runFaults

		if t.runCycles < t.results.Min.Cycles {
			t.results.Min = Case{Cycles: t.runCycles, PageFaults: t.runFaults}
			// A new fastest run earns the block a fresh window.
			t.windowed = time.Now()
		}
		if t.runCycles > t.results.Max.Cycles {
			t.results.Max = Case{Cycles: t.runCycles, PageFaults: t.runFaults}
		}

		t.startCount = 0
		t.stopCount = 0
		t.runCycles = 0
		t.runFaults = 0
	}

	return true
}

// Start marks the beginning of the measured section of the current run.
// Accumulation is subtractive so multiple Start/Stop pairs per run sum the
// measured sections and exclude everything between them.
func (t *Tester) Start() {
	t.startCount++
	t.runCycles -= t.now()
	t.runFaults -= t.faults()
}

// Stop marks the end of the measured section of the current run.
func (t *Tester) Stop() {
	t.stopCount++
	t.runCycles += t.now()
	t.runFaults += t.faults()
}

// Err reports why testing stopped early, if it did.
func (t *Tester) Err() error { return t.err }

// Results returns the aggregate so far.
func (t *Tester) Results() Results { return t.results }
