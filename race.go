package weft

import "errors"

// ErrRaceFailed is reported by [Loop.Race] when every participant has
// failed. The individual failure causes are not aggregated.
var ErrRaceFailed = errors.New("weft: all race participants failed")

// Race forks every routine and completes with the first successful result,
// cancelling every other still-pending routine at that moment. The
// routines are forked together on the next tick of l, before any of them
// runs a step. Cancellation is cooperative, not forced: a loser keeps
// running until its next step, where it sees the [Canceled] error.
//
// An individual routine's failure does not end the race; only when all
// routines have failed does the race fail, with [ErrRaceFailed].
//
// Each routine runs with shared as its [Context], or its own fresh one if
// shared is nil.
//
// Throwing into the race handle before it settles forwards the error to
// every routine and completes the race with that error on a deferred tick.
func (l *Loop) Race(routines []Routine, done Callback, shared Context) *Thread {
	g := l.newThread(done, shared)

	children := make([]*Thread, len(routines))
	pending := len(routines)

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
			return
		}

		for i, routine := range routines {
			ctx := shared
			if ctx == nil {
				ctx = make(Context)
			}
			children[i] = l.Fork(routine, func(err error, v any) {
				// Outcomes arriving after the race settled, or after
				// an external throw, are discarded.
				if g.Finished() || g.raise != nil {
					return
				}
				if err != nil {
					if pending--; pending == 0 {
						g.finish(ErrRaceFailed, nil)
					}
					return
				}
				for j, c := range children {
					if j != i && c != nil {
						c.Cancel()
					}
				}
				g.finish(nil, v)
			}, ctx)
		}

		if len(routines) == 0 {
			g.finish(ErrRaceFailed, nil)
		}
	})

	return g
}
