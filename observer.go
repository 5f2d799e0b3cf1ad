package weft

import "time"

// An Observer receives lifecycle notifications from a [Loop].
// Attach one with [Loop.Observe]. All methods are invoked on the goroutine
// that triggered the event, except TickScheduled, which may be invoked from
// any goroutine that calls [Loop.Defer].
//
// The observe/prom subpackage provides an implementation backed by
// Prometheus metrics.
type Observer interface {
	// ThreadForked reports that a handle was created, whether by Fork,
	// Par, Race or Sleep.
	ThreadForked()
	// ThreadFinished reports that a handle reported its outcome.
	ThreadFinished(dur time.Duration, err error)
	// TickScheduled reports that a continuation was deferred.
	TickScheduled()
	// TimerArmed reports that a sleep timer was started.
	TimerArmed(d time.Duration)
}
