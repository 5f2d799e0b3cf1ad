// Package interop bridges blocking Go code into a weft loop.
//
// A weft [weft.Loop] is single-threaded; a step that blocks stalls every
// other thread on the loop. Pool offloads blocking functions to goroutines,
// bounded by a weighted semaphore, and resumes the suspended routine
// through the loop when the work completes.
package interop

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/weft-go/weft"
)

// A Pool runs blocking functions on goroutines, at most limit of them at
// a time, and completes weft routines with their outcomes.
type Pool struct {
	loop *weft.Loop
	sem  *semaphore.Weighted
}

// NewPool creates a [Pool] over l that runs at most limit functions
// concurrently.
func NewPool(l *weft.Loop, limit int64) *Pool {
	if limit < 1 {
		panic("interop: limit must be at least 1")
	}
	return &Pool{loop: l, sem: semaphore.NewWeighted(limit)}
}

// Call returns a [weft.Routine] that runs fn on a goroutine and completes
// with its result. The goroutine waits its turn on the pool's semaphore,
// runs fn, and posts the outcome back through the routine's resume
// callback.
//
// Cancellation is cooperative: throwing into the forked thread does not
// interrupt fn, but the thread fails with the injected error at its next
// step and fn's late outcome is discarded.
func (p *Pool) Call(fn func() (any, error)) weft.Routine {
	return func(t *weft.Thread, resume weft.Callback) weft.Program {
		started := false
		return weft.StepFunc(func(in any, raise error) (weft.Step, error) {
			if raise != nil {
				return weft.Step{}, raise
			}
			if !started {
				started = true
				go func() {
					if err := p.sem.Acquire(context.Background(), 1); err != nil {
						resume(err, nil)
						return
					}
					defer p.sem.Release(1)
					v, err := fn()
					resume(err, v)
				}()
				return weft.Await(), nil
			}
			return weft.Done(in), nil
		})
	}
}
