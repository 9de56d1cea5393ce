// Package profiler implements a call-stack-aware cycle-count profiler. A
// Profiler measures named phases of a single thread of control, attributes
// time correctly across nested regions, and aggregates hit counts plus
// inclusive/exclusive cycles per phase.
//
// Measurement operations (Start, Stop and their *At variants) are O(1) and
// allocation-free: the call stack and accumulator table are sized at creation.
// A Profiler is not safe for concurrent use; multi-threaded programs run one
// Profiler per goroutine and merge snapshots at report time.
package profiler

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cycleprof/cycleprof/pkg/cycles"
)

// DefaultMaxDepth is the nesting capacity used when WithMaxDepth is not given.
const DefaultMaxDepth = 64

type state uint8

const (
	stateUninitialized state = iota
	stateRunning
	stateEnded
)

func (s state) String() string {
	switch s {
	case stateUninitialized:
		return "uninitialized"
	case stateRunning:
		return "running"
	case stateEnded:
		return "ended"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Option configures a Profiler at creation.
type Option func(*Profiler)

// WithMaxDepth sets the call stack capacity. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(p *Profiler) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// WithCycleSource replaces the cycle counter, mainly so tests can drive the
// engine with scripted counter values.
func WithCycleSource(src func() uint64) Option {
	return func(p *Profiler) {
		if src != nil {
			p.now = src
		}
	}
}

// Profiler owns the accumulator table and the call stack for one measurement
// episode. It is created once, mutated only through Start/Stop while the
// episode runs, and read through Snapshot after the episode ends. Reset
// returns it to the zero state for a new episode.
type Profiler struct {
	set      *CategorySet
	stats    []TimerStats
	stack    callStack
	state    state
	maxDepth int

	startCycle uint64
	endCycle   uint64

	now func() uint64

	episodeID uuid.UUID
}

// New creates a Profiler over the given category set. The accumulator table
// and call stack are allocated here so that no measurement call allocates.
func New(set *CategorySet, opts ...Option) (*Profiler, error) {
	if set == nil || set.Len() == 0 {
		return nil, fmt.Errorf("profiler requires a non-empty category set")
	}

	p := &Profiler{
		set:      set,
		maxDepth: DefaultMaxDepth,
		now:      cycles.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.stats = make([]TimerStats, set.Len())
	p.stack = newCallStack(p.maxDepth)
	return p, nil
}

// Categories returns the profiler's category set.
func (p *Profiler) Categories() *CategorySet { return p.set }

// EpisodeID identifies the current episode. It is assigned on Begin and is
// uuid.Nil before the first episode or after Reset.
func (p *Profiler) EpisodeID() uuid.UUID { return p.episodeID }

// Begin starts a measurement episode, reading the cycle counter for the
// episode's start bound. It fails if an episode is already running or has
// ended without a Reset.
func (p *Profiler) Begin() error {
	if p.state != stateUninitialized {
		return fmt.Errorf("cannot begin episode while %s; Reset first", p.state)
	}
	p.episodeID = uuid.New()
	p.state = stateRunning
	// Read the counter last so setup cost lands outside the episode.
	p.startCycle = p.now()
	return nil
}

// BeginAt is Begin with an explicit counter value.
func (p *Profiler) BeginAt(now uint64) error {
	if p.state != stateUninitialized {
		return fmt.Errorf("cannot begin episode while %s; Reset first", p.state)
	}
	p.episodeID = uuid.New()
	p.state = stateRunning
	p.startCycle = now
	return nil
}

// Start pushes a measurement frame for c. No accumulator mutation happens
// until the matching Stop.
func (p *Profiler) Start(c Category) error {
	return p.StartAt(c, p.now())
}

// StartAt is Start with an explicit counter value.
func (p *Profiler) StartAt(c Category, now uint64) error {
	if p.state != stateRunning {
		return ErrUninitializedProfiler
	}
	if int(c) < 0 || int(c) >= len(p.stats) {
		return ErrInvalidCategory
	}
	return p.stack.push(c, now, p.stats[c].InclusiveCycles)
}

// Stop pops the frame for c, which must be the innermost running timer, and
// folds its elapsed time into the accumulator table. On any error the table
// and stack are left untouched.
func (p *Profiler) Stop(c Category) error {
	return p.stopAt(c, p.now(), 0)
}

// StopAt is Stop with an explicit counter value.
func (p *Profiler) StopAt(c Category, now uint64) error {
	return p.stopAt(c, now, 0)
}

// StopWithBytes is Stop that also records a payload size for the invocation,
// feeding the report's throughput column.
func (p *Profiler) StopWithBytes(c Category, bytes uint64) error {
	return p.stopAt(c, p.now(), bytes)
}

func (p *Profiler) stopAt(c Category, now uint64, bytes uint64) error {
	if p.state != stateRunning {
		return ErrUninitializedProfiler
	}
	if int(c) < 0 || int(c) >= len(p.stats) {
		return ErrInvalidCategory
	}

	fr, err := p.stack.popIfTop(c)
	if err != nil {
		return err
	}

	elapsed := now - fr.startCycle

	st := &p.stats[c]
	st.Hits++
	// Snapshot-overwrite rather than add: for re-entrant use of the same
	// category only the outermost invocation's elapsed time sticks.
	st.InclusiveCycles = fr.oldInclusive + elapsed
	st.ExclusiveCycles += elapsed - fr.childInclusive
	st.BytesProcessed += bytes

	// Charge this region's full elapsed time to the parent so the parent's
	// own exclusive computation nets it out.
	if top := p.stack.peek(); top != nil {
		top.childInclusive += elapsed
	}
	return nil
}

// End closes the episode, reading the cycle counter for the end bound. All
// timers must have stopped; otherwise it fails with ErrUnbalancedFrames and
// the episode stays running.
func (p *Profiler) End() error {
	return p.EndAt(p.now())
}

// EndAt is End with an explicit counter value.
func (p *Profiler) EndAt(now uint64) error {
	if p.state != stateRunning {
		return ErrUninitializedProfiler
	}
	if !p.stack.empty() {
		return ErrUnbalancedFrames
	}
	p.endCycle = now
	p.state = stateEnded
	return nil
}

// Reset zeroes the accumulator table and call stack and returns the profiler
// to the uninitialized state so a new episode can begin.
func (p *Profiler) Reset() {
	for i := range p.stats {
		p.stats[i] = TimerStats{}
	}
	p.stack.reset()
	p.state = stateUninitialized
	p.startCycle = 0
	p.endCycle = 0
	p.episodeID = uuid.Nil
}

// Snapshot copies the finished episode's results for reporting. It is only
// valid after End; the returned value does not alias profiler state.
func (p *Profiler) Snapshot() (*Snapshot, error) {
	if p.state != stateEnded {
		return nil, fmt.Errorf("snapshot requires an ended episode, profiler is %s", p.state)
	}
	stats := make([]TimerStats, len(p.stats))
	copy(stats, p.stats)
	return &Snapshot{
		EpisodeID:   p.episodeID,
		Categories:  p.set,
		TotalCycles: p.endCycle - p.startCycle,
		Stats:       stats,
	}, nil
}

// Snapshot is the immutable result of one ended episode, consumed by the
// report package.
type Snapshot struct {
	EpisodeID   uuid.UUID
	Categories  *CategorySet
	TotalCycles uint64
	Stats       []TimerStats
}
