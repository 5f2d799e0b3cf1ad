package weft

import (
	"errors"
	"time"
)

// Canceled is the standard cancellation error injected by [Thread.Cancel].
var Canceled = errors.New("weft: canceled")

const (
	flagFinished = 1 << iota
)

// A Thread is the cancellable handle of a routine driven by a [Loop].
// It is returned synchronously by every combinator, before any step of the
// underlying routine has run.
//
// A Thread must not be shared by more than one [Loop].
type Thread struct {
	loop   *Loop
	ctx    Context
	done   Callback
	prog   Program
	nested *Thread
	raise  error
	in     any
	flag   uint8
	start  time.Time

	// throwFn, when set, replaces the driver's throw behavior.
	// Combinators and timers use it to own their cancellation protocol.
	throwFn func(err error)
}

// Fork begins routine asynchronously, on the next tick of l, and returns
// its [Thread] handle immediately. The routine constructor itself is
// invoked synchronously, but no step of the returned program runs before
// Fork returns, so the caller always holds the handle before any callback
// fires.
//
// done is invoked exactly once with the routine's outcome; nil means
// discard the outcome. ctx is the routine's [Context]; nil means a fresh
// empty one.
func (l *Loop) Fork(routine Routine, done Callback, ctx Context) *Thread {
	if routine == nil {
		panic("weft: Fork(nil)")
	}
	t := l.newThread(done, ctx)
	t.prog = routine(t, t.resume)
	l.Defer(t.step)
	return t
}

func (l *Loop) newThread(done Callback, ctx Context) *Thread {
	if done == nil {
		done = nop
	}
	if ctx == nil {
		ctx = make(Context)
	}
	t := &Thread{loop: l, ctx: ctx, done: done}
	if obs := l.obs; obs != nil {
		t.start = time.Now()
		obs.ThreadForked()
	}
	return t
}

// Loop returns the [Loop] that drives t.
func (t *Thread) Loop() *Loop {
	return t.loop
}

// Context returns the [Context] bound to t's routine.
func (t *Thread) Context() Context {
	return t.ctx
}

// Finished reports whether t has reported its outcome.
func (t *Thread) Finished() bool {
	return t.flag&flagFinished != 0
}

// Throw forces err into t and returns t.
//
// If t has not finished, err is recorded to be raised into the routine at
// its next step, and, if the routine is currently suspended on a nested
// thread, forwarded to that thread immediately. A finished thread ignores
// Throw.
//
// Throw with a nil error is [Thread.Cancel].
//
// One should only call this method from a loop tick, or before the loop
// runs.
func (t *Thread) Throw(err error) *Thread {
	if t.Finished() {
		return t
	}
	if err == nil {
		err = Canceled
	}
	if fn := t.throwFn; fn != nil {
		fn(err)
		return t
	}
	if t.raise == nil {
		t.raise = err
	}
	if n := t.nested; n != nil {
		n.Throw(err)
	}
	return t
}

// Cancel is [Thread.Throw] with the standard [Canceled] error.
func (t *Thread) Cancel() *Thread {
	return t.Throw(Canceled)
}

// resume is the callback a routine arranges to have invoked with the
// outcome of an asynchronous operation it suspended on.
// It stores the outcome and schedules the next step on a future tick.
// All mutation happens inside the tick, so resume is safe to invoke from
// other goroutines.
func (t *Thread) resume(err error, v any) {
	t.loop.Defer(func() {
		if t.Finished() {
			return
		}
		t.in = v
		if err != nil && t.raise == nil {
			t.raise = err
		}
		t.step()
	})
}

// step advances the program by one suspension.
func (t *Thread) step() {
	if t.Finished() {
		return
	}

	in, raise := t.in, t.raise
	t.in, t.raise, t.nested = nil, nil, nil

	s, err := t.next(in, raise)
	if err != nil {
		t.finish(err, nil)
		return
	}

	switch s.kind {
	case stepDone:
		t.finish(nil, s.value)
	case stepNested:
		t.nested = s.thread
	case stepAwait:
		// Suspended; progress resumes when the routine's callback fires.
	}
}

// next runs one step of the program, converting a panic into an error so
// that it surfaces through the completion callback instead of unwinding
// into the loop.
func (t *Thread) next(in any, raise error) (s Step, err error) {
	defer func() {
		if v := recover(); v != nil {
			s, err = Step{}, newPanicError(v)
		}
	}()
	return t.prog.Next(in, raise)
}

// finish reports the outcome of t. The completion transition happens at
// most once; late calls are ignored.
func (t *Thread) finish(err error, v any) {
	if t.Finished() {
		return
	}
	t.flag |= flagFinished
	t.prog = nil
	t.nested = nil
	t.raise = nil
	t.in = nil
	done := t.done
	t.done = nil
	if obs := t.loop.obs; obs != nil {
		obs.ThreadFinished(time.Since(t.start), err)
	}
	done(err, v)
}
