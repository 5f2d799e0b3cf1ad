package weft

import "sync"

// A Loop is a deferred scheduler: it runs continuations later, in isolation
// from the call stack that scheduled them.
//
// When a continuation is deferred, it is added into an internal queue.
// The Run method then pops and runs each of them from the queue until
// the queue is emptied.
// It is done in a single-threaded manner, in FIFO order.
// If one continuation blocks, no other continuations can run.
// The best practice is not to block.
//
// Manually calling the Run method is usually not desired.
// One would instead use the Autorun method to set up an autorun function to
// calling the Run method automatically whenever a continuation is deferred.
// The Loop never calls the autorun function twice at the same time.
type Loop struct {
	mu      sync.Mutex
	q       queue
	running bool
	autorun func()
	obs     Observer
}

// Autorun sets up an autorun function to calling the Run method
// automatically whenever a continuation is deferred.
//
// One must pass a function that calls the Run method.
//
// If f blocks, the Defer method may block too.
// The best practice is not to block.
func (l *Loop) Autorun(f func()) {
	l.autorun = f
}

// Observe attaches an [Observer] to l.
// Observe must be called before the loop runs.
func (l *Loop) Observe(obs Observer) {
	l.obs = obs
}

// Run pops and runs every continuation in the queue until the queue is
// emptied.
//
// Run must not be called twice at the same time.
func (l *Loop) Run() {
	l.mu.Lock()
	l.running = true

	for !l.q.Empty() {
		f := l.q.Pop()
		l.mu.Unlock()
		f()
		l.mu.Lock()
	}

	l.running = false
	l.mu.Unlock()
}

// Defer schedules f to run on a future tick of l.
//
// Defer is safe for concurrent use, which is how timers and goroutines
// doing blocking work post their outcomes back into the loop.
func (l *Loop) Defer(f func()) {
	var autorun func()

	l.mu.Lock()

	if !l.running && l.autorun != nil {
		l.running = true
		autorun = l.autorun
	}

	l.q.Push(f)
	l.mu.Unlock()

	if obs := l.obs; obs != nil {
		obs.TickScheduled()
	}

	if autorun != nil {
		autorun()
	}
}
