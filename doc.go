// Package weft provides cooperative task combinators over suspendable
// routines.
//
// Since Go has already done a great job in bringing green/virtual threads
// into life, this library only implements a single-threaded [Loop] type,
// which some refer to as a cooperative scheduler.
// One can create as many loops as they like.
//
// A [Routine] is a suspendable unit of work: a function that, given the
// thread driving it and a resume callback, returns a resumable [Program].
// A program is stepped one suspension at a time; each step either completes
// with a value, suspends on an in-flight asynchronous operation, or suspends
// on a nested [Thread] so that cancellation can reach it.
//
// # Driving a Routine
//
// [Loop.Fork] begins a routine on the next tick of the loop, never
// synchronously, so the caller always holds the [Thread] handle before any
// callback fires. The completion callback fires exactly once, with either
// a non-nil error and a nil value, or a nil error and the final value.
//
// # Combinators
//
// [Loop.Par] fans out routines and completes once all of them succeed,
// with a results slice aligned to the input order. The first failure ends
// the group; every other still-pending routine is told to stop.
//
// [Loop.Race] fans out routines and completes with the first success,
// cancelling the rest. The race only fails once every participant has
// failed.
//
// [Loop.Sleep] is a cancellable timer, and [Timeout] wraps one into a
// routine, which makes a deadline just another race participant.
//
// # Cooperative Cancellation
//
// Cancellation is advisory. [Thread.Throw] records an error to be raised
// into the routine at its next step, and forwards it immediately to the
// most recently yielded nested thread, so cancellation propagates
// depth-first through a chain of forks. A routine sees the error as the
// raise argument of its next step and may intercept it to clean up.
// A thread that has already completed silently ignores further throws.
//
// # Single-Threaded Execution
//
// A [Loop] runs continuations in FIFO order, one at a time. There is no
// preemption; if one step blocks, no other steps can run. The best practice
// is not to block. Blocking work belongs in a goroutine that posts its
// outcome back through the resume callback; the interop subpackage provides
// a bounded pool for exactly that.
//
// Handle methods such as [Thread.Throw] should only be called from loop
// ticks, or before the loop runs. Resume callbacks, on the other hand, are
// safe to invoke from other goroutines; they marshal everything through
// [Loop.Defer].
package weft
