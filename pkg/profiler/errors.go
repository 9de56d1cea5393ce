package profiler

import "errors"

// Engine error set. Every one of these signals an instrumentation bug at the
// call site rather than a runtime condition. The operation that detects the
// violation returns immediately without touching the accumulator table or the
// call stack, so stats recorded before the bad call remain valid.
var (
	// ErrInvalidCategory is returned for a category outside the set's [0, N) domain.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrStackOverflow is returned when a start would exceed the profiler's
	// configured nesting depth.
	ErrStackOverflow = errors.New("timer stack overflow")

	// ErrStackUnderflow is returned when a stop arrives with no timer running.
	ErrStackUnderflow = errors.New("timer stack underflow")

	// ErrCategoryMismatch is returned when a stop names a category other than
	// the innermost running timer.
	ErrCategoryMismatch = errors.New("stop category does not match innermost timer")

	// ErrUninitializedProfiler is returned for any measurement call outside a
	// running episode.
	ErrUninitializedProfiler = errors.New("profiler episode not running")

	// ErrUnbalancedFrames is returned when an episode end is attempted while
	// timers are still running.
	ErrUnbalancedFrames = errors.New("timers still running at episode end")
)
