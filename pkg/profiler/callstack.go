package profiler

// frame is the live record of one active (started, not yet stopped)
// measurement. Frames are owned by the call stack and destroyed on pop.
type frame struct {
	category Category

	// startCycle is the counter value when the frame was pushed.
	startCycle uint64

	// childInclusive accumulates the elapsed cycles of nested timers that
	// started and stopped while this frame was on top. Subtracting it from
	// the frame's own elapsed time yields the region's self time.
	childInclusive uint64

	// oldInclusive snapshots the category's accumulated inclusive cycles at
	// push time. Writing oldInclusive+elapsed on pop (instead of adding)
	// keeps re-entrant use of a category from double-counting.
	oldInclusive uint64
}

// callStack is a fixed-capacity stack of active frames. The backing array is
// allocated once at Profiler creation; push and pop never allocate.
type callStack struct {
	frames []frame
	depth  int
}

func newCallStack(capacity int) callStack {
	return callStack{frames: make([]frame, capacity)}
}

func (s *callStack) push(c Category, now, oldInclusive uint64) error {
	if s.depth == len(s.frames) {
		return ErrStackOverflow
	}
	s.frames[s.depth] = frame{category: c, startCycle: now, oldInclusive: oldInclusive}
	s.depth++
	return nil
}

// popIfTop removes and returns the top frame if it belongs to c.
func (s *callStack) popIfTop(c Category) (frame, error) {
	if s.depth == 0 {
		return frame{}, ErrStackUnderflow
	}
	if s.frames[s.depth-1].category != c {
		return frame{}, ErrCategoryMismatch
	}
	s.depth--
	return s.frames[s.depth], nil
}

// peek returns the current top frame, or nil when the stack is empty.
func (s *callStack) peek() *frame {
	if s.depth == 0 {
		return nil
	}
	return &s.frames[s.depth-1]
}

func (s *callStack) empty() bool { return s.depth == 0 }

func (s *callStack) reset() { s.depth = 0 }
