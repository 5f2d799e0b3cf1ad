package weft

import "fmt"

// A GroupError reports which routine failed a parallel group and why.
type GroupError struct {
	// Index is the position, in the input order, of the routine that
	// failed first.
	Index int
	// Err is that routine's error.
	Err error
}

func (e *GroupError) Error() string {
	return fmt.Sprintf("weft: routine %d: %s", e.Index, e.Err)
}

func (e *GroupError) Unwrap() error {
	return e.Err
}

// Par forks every routine and returns a [Thread] handle representing the
// whole group. The routines are forked together on the next tick of l,
// before any of them runs a step.
//
// The group completes once every routine has reported success, invoking
// done with a []any aligned to the input order: position i holds routine
// i's result regardless of which finished first. The first error from any
// routine completes the group immediately with a [*GroupError]; every
// other still-pending routine receives the error via [Thread.Throw] so it
// can clean up, but its eventual outcome is discarded.
//
// Each routine runs with shared as its [Context], or its own fresh one if
// shared is nil.
//
// Throwing into the group handle forwards the error to every unfinished
// routine and completes the group with that error on a deferred tick.
func (l *Loop) Par(routines []Routine, done Callback, shared Context) *Thread {
	g := l.newThread(done, shared)

	results := make([]any, len(routines))
	children := make([]*Thread, len(routines))
	remaining := len(routines)

	g.throwFn = func(err error) {
		if g.raise == nil {
			g.raise = err
		}
		for _, c := range children {
			if c != nil {
				c.Throw(err)
			}
		}
		l.Defer(func() { g.finish(err, nil) })
	}

	l.Defer(func() {
		if g.Finished() || g.raise != nil {
			// Thrown into before it ever started; nothing to fan out.
			return
		}

		for i, routine := range routines {
			ctx := shared
			if ctx == nil {
				ctx = make(Context)
			}
			children[i] = l.Fork(routine, func(err error, v any) {
				// Outcomes arriving after the group settled, or after
				// an external throw, are discarded.
				if g.Finished() || g.raise != nil {
					return
				}
				if err != nil {
					for j, c := range children {
						if j != i && c != nil {
							c.Throw(err)
						}
					}
					g.finish(&GroupError{Index: i, Err: err}, nil)
					return
				}
				results[i] = v
				if remaining--; remaining == 0 {
					g.finish(nil, results)
				}
			}, ctx)
		}

		if len(routines) == 0 {
			g.finish(nil, results)
		}
	})

	return g
}
