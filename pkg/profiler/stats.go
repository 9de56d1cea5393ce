package profiler

// TimerStats is the running aggregate for one category across all of its
// completed invocations in an episode.
type TimerStats struct {
	// Hits is the number of completed start/stop pairs.
	Hits uint64

	// InclusiveCycles is the total elapsed time including nested children.
	InclusiveCycles uint64

	// ExclusiveCycles is the elapsed time attributable to the category alone,
	// with children's time subtracted. Always <= InclusiveCycles.
	ExclusiveCycles uint64

	// BytesProcessed is the total payload recorded through StopWithBytes,
	// used for throughput reporting.
	BytesProcessed uint64
}
