// Package cycles reads the CPU cycle counter and calibrates it against the
// wall clock. The counter is the raw time base of the profiler engine; the
// calibrated frequency is only needed when converting reports to wall-clock
// durations.
package cycles

// Now reads the CPU's cycle counter (TSC on amd64, the virtual counter on
// arm64). On platforms without an assembly implementation it falls back to
// time.Now nanoseconds, which keeps deltas meaningful at reduced resolution.
//
// The counter is trusted to be monotonic within a measurement episode; the
// engine does not correct for reordering or cross-core drift.
func Now() uint64 {
	return readCycleCounter()
}

// Since returns the cycles elapsed since start.
func Since(start uint64) uint64 {
	return readCycleCounter() - start
}
