package weft

// A Callback receives the final outcome of a thread: either a non-nil
// error and a nil value, or a nil error and the final value.
// Callers must not assume it is invoked synchronously.
type Callback func(err error, v any)

func nop(error, any) {}

// A Context is mutable state bound to a routine invocation.
// Passing the same Context to sibling routines lets them coordinate, for
// example through shared cancellation flags; the routines that share it own
// its invariants across interleaved steps.
type Context map[string]any

// A Routine is a suspendable unit of work.
// [Loop.Fork] invokes it once, synchronously, with the thread that will
// drive it and the thread's resume callback; the returned [Program] is then
// stepped asynchronously, one suspension at a time.
//
// A routine that suspends on an asynchronous operation arranges for resume
// to be invoked with the operation's outcome, then returns [Await]; resume
// stores the outcome and schedules the next step on a future tick of the
// loop. A routine that suspends on another thread returns [Nested] with
// that thread's handle, so that cancellation can be forwarded to it.
type Routine func(t *Thread, resume Callback) Program

// A Program is the resumable form of a [Routine]: a state machine advanced
// one step at a time by the driving thread.
//
// Next advances the program. in carries the value stored by the resume
// callback since the last suspension; it is nil on the first step. raise,
// if non-nil, is a pending injected or asynchronous error that the program
// may intercept; a program with no handling for it simply returns it, which
// fails the thread.
type Program interface {
	Next(in any, raise error) (Step, error)
}

// StepFunc adapts an ordinary function to the [Program] interface.
type StepFunc func(in any, raise error) (Step, error)

// Next calls f.
func (f StepFunc) Next(in any, raise error) (Step, error) { return f(in, raise) }

type stepKind uint8

const (
	stepDone stepKind = iota
	stepAwait
	stepNested
)

// A Step is what one step of a [Program] produces: completion with a value,
// suspension on an in-flight asynchronous operation, or suspension on a
// nested thread.
// Construct one with [Done], [Await] or [Nested].
type Step struct {
	kind   stepKind
	value  any
	thread *Thread
}

// Done returns a [Step] that completes the program with the value v.
func Done(v any) Step {
	return Step{kind: stepDone, value: v}
}

// Await returns a [Step] that suspends the program until its resume
// callback is invoked.
func Await() Step {
	return Step{kind: stepAwait}
}

// Nested returns a [Step] that suspends the program on the thread t.
// An error thrown into the suspended thread is forwarded to t immediately,
// which is what lets cancellation propagate depth-first through a chain of
// forks.
func Nested(t *Thread) Step {
	if t == nil {
		panic("weft: Nested(nil)")
	}
	return Step{kind: stepNested, thread: t}
}

// Return returns a [Routine] that completes with the value v on its first
// step, without suspending.
func Return(v any) Routine {
	return func(t *Thread, resume Callback) Program {
		return StepFunc(func(in any, raise error) (Step, error) {
			if raise != nil {
				return Step{}, raise
			}
			return Done(v), nil
		})
	}
}

// Fail returns a [Routine] that fails with err on its first step.
func Fail(err error) Routine {
	if err == nil {
		panic("weft: Fail(nil)")
	}
	return func(t *Thread, resume Callback) Program {
		return StepFunc(func(in any, raise error) (Step, error) {
			if raise != nil {
				return Step{}, raise
			}
			return Step{}, err
		})
	}
}
