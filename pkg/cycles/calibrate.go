package cycles

import (
	"fmt"
	"sync"
	"time"

	"github.com/cycleprof/cycleprof/internal/safe"
)

// DefaultSample is the busy-wait window used by EstimateFrequency.
const DefaultSample = 100 * time.Millisecond

// Frequency is a calibrated cycle rate in cycles per second.
type Frequency float64

// Calibrate measures the cycle counter against the wall clock by busy-waiting
// for the sample window. Failures here are recoverable caller errors,
// independent of the measurement engine's error set.
func Calibrate(sample time.Duration) (Frequency, error) {
	if sample <= 0 {
		return 0, fmt.Errorf("calibration sample must be positive, got %v", sample)
	}

	start := time.Now()
	clockStart := readCycleCounter()
	for time.Since(start) < sample {
		// Spin. Sleeping would let the counter idle on some platforms.
	}
	clockEnd := readCycleCounter()
	elapsed := time.Since(start)

	ticks, ok := safe.Delta(clockStart, clockEnd)
	if !ok || ticks == 0 {
		return 0, fmt.Errorf("cycle counter did not advance during %v calibration window", elapsed)
	}
	if elapsed <= 0 {
		return 0, fmt.Errorf("wall clock did not advance during calibration")
	}

	return Frequency(float64(ticks) / elapsed.Seconds()), nil
}

var (
	estimateOnce sync.Once
	estimated    Frequency
	estimateErr  error
)

// EstimateFrequency returns the process-wide cycle frequency, computed once
// on first use with the default sample window.
func EstimateFrequency() (Frequency, error) {
	estimateOnce.Do(func() {
		estimated, estimateErr = Calibrate(DefaultSample)
	})
	return estimated, estimateErr
}

// Duration converts a cycle count to wall-clock time under f. It returns 0
// for an uncalibrated (zero) frequency.
func (f Frequency) Duration(cycles uint64) time.Duration {
	if f <= 0 {
		return 0
	}
	return time.Duration(float64(cycles) / float64(f) * float64(time.Second))
}

// String formats the frequency in human units, e.g. "3.19 GHz".
func (f Frequency) String() string {
	switch {
	case f >= 1e9:
		return fmt.Sprintf("%.2f GHz", float64(f)/1e9)
	case f >= 1e6:
		return fmt.Sprintf("%.2f MHz", float64(f)/1e6)
	case f >= 1e3:
		return fmt.Sprintf("%.2f kHz", float64(f)/1e3)
	default:
		return fmt.Sprintf("%.0f Hz", float64(f))
	}
}
