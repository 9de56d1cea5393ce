package profiler

// Span ties a running timer to a lexical scope:
//
//	span, err := p.Span(cat)
//	if err != nil {
//		return err
//	}
//	defer span.End()
//
// End stops the timer exactly once on whichever exit path runs first: normal
// return, early return, or panic unwinding. Span composes over Start/Stop and
// carries no engine state of its own.
type Span struct {
	p       *Profiler
	c       Category
	stopped bool
}

// Span starts c and returns its scope guard.
func (p *Profiler) Span(c Category) (*Span, error) {
	if err := p.Start(c); err != nil {
		return nil, err
	}
	return &Span{p: p, c: c}, nil
}

// End stops the span's timer. Calls after the first are no-ops.
func (s *Span) End() error {
	if s == nil || s.stopped {
		return nil
	}
	s.stopped = true
	return s.p.Stop(s.c)
}

// Measure runs fn with category c active and returns its result unchanged.
// The stop fires on every exit path, including when fn returns an error or
// panics. A stop failure is only surfaced when fn itself succeeded.
func Measure[T any](p *Profiler, c Category, fn func() (T, error)) (result T, err error) {
	if err = p.Start(c); err != nil {
		return result, err
	}
	defer func() {
		if stopErr := p.Stop(c); stopErr != nil && err == nil {
			err = stopErr
		}
	}()
	return fn()
}
