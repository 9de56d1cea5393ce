package reptest

import (
	"errors"
	"fmt"
	"io"

	"github.com/cycleprof/cycleprof/pkg/cycles"
)

var errUnmatched = errors.New("unmatched start and stop calls in measured block")

// Render writes the min/max/avg summary. When freq is calibrated the cycle
// figures gain wall-clock equivalents; when bytes is non-zero each line gains
// MB/s throughput and KB-per-fault figures for the measured payload.
func (r Results) Render(w io.Writer, freq cycles.Frequency, bytes uint64) error {
	if r.Count == 0 {
		_, err := fmt.Fprintln(w, "no completed runs")
		return err
	}

	avgCycles := uint64(r.AvgCycles())
	lines := []struct {
		label  string
		c      Case
		cycles uint64
	}{
		{"Min", r.Min, r.Min.Cycles},
		{"Max", r.Max, r.Max.Cycles},
		{"Avg", Case{Cycles: avgCycles, PageFaults: uint64(r.AvgPageFaults())}, avgCycles},
	}

	for _, ln := range lines {
		s := fmt.Sprintf("%s: %12d cycles", ln.label, ln.cycles)
		if freq > 0 {
			s += fmt.Sprintf(" (%8v)", freq.Duration(ln.cycles))
		}
		if bytes > 0 && freq > 0 && ln.cycles > 0 {
			secs := float64(ln.cycles) / float64(freq)
			mbs := float64(bytes) / secs / (1024 * 1024)
			s += fmt.Sprintf(" %8.2f MB/s", mbs)
			if ln.c.PageFaults > 0 {
				s += fmt.Sprintf(" %8.2f KB/fault", float64(bytes)/float64(ln.c.PageFaults)/1024)
			}
		}
		s += fmt.Sprintf(" faults: %d", ln.c.PageFaults)
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Runs: %d\n", r.Count)
	return err
}
