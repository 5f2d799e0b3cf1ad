package weft

import "time"

// Sleep starts a cancellable timer and returns its [Thread] handle.
//
// On natural expiry the timer reports (nil, true) through done, on a tick
// of l. Throwing into the handle before expiry stops the timer and reports
// the injected error instead. Firing is idempotent: a timer that has
// already fired or been cancelled cannot fire again.
func (l *Loop) Sleep(d time.Duration, done Callback) *Thread {
	t := l.newThread(done, nil)

	var tm *time.Timer

	t.throwFn = func(err error) {
		tm.Stop()
		l.Defer(func() { t.finish(err, nil) })
	}

	tm = time.AfterFunc(d, func() {
		l.Defer(func() { t.finish(nil, true) })
	})

	if obs := l.obs; obs != nil {
		obs.TimerArmed(d)
	}

	return t
}

// Timeout returns a [Routine] that suspends on a [Loop.Sleep] of duration d
// and then completes with v, or true if v is nil.
//
// Its primary use is as one participant in a [Loop.Race], enforcing a
// deadline over the other participants: when another participant wins, the
// race cancels the timeout, which cancels its timer.
func Timeout(d time.Duration, v any) Routine {
	if v == nil {
		v = true
	}
	return func(t *Thread, resume Callback) Program {
		armed := false
		return StepFunc(func(in any, raise error) (Step, error) {
			if raise != nil {
				return Step{}, raise
			}
			if !armed {
				armed = true
				return Nested(t.Loop().Sleep(d, resume)), nil
			}
			return Done(v), nil
		})
	}
}
