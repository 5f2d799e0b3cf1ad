package weft_test

import (
	"github.com/weft-go/weft"
)

// outcome records what a completion callback was invoked with, and how
// many times.
type outcome struct {
	n   int
	err error
	v   any
}

func record(o *outcome) weft.Callback {
	return func(err error, v any) {
		o.n++
		o.err, o.v = err, v
	}
}

// after returns a routine that completes with v after n round trips
// through the loop. An injected error fails it at the next step.
func after(n int, v any) weft.Routine {
	return func(t *weft.Thread, resume weft.Callback) weft.Program {
		remaining := n
		return weft.StepFunc(func(in any, raise error) (weft.Step, error) {
			if raise != nil {
				return weft.Step{}, raise
			}
			if remaining > 0 {
				remaining--
				t.Loop().Defer(func() { resume(nil, nil) })
				return weft.Await(), nil
			}
			return weft.Done(v), nil
		})
	}
}

// failAfter is like after but fails with err instead of completing.
func failAfter(n int, err error) weft.Routine {
	return func(t *weft.Thread, resume weft.Callback) weft.Program {
		remaining := n
		return weft.StepFunc(func(in any, raise error) (weft.Step, error) {
			if raise != nil {
				return weft.Step{}, raise
			}
			if remaining > 0 {
				remaining--
				t.Loop().Defer(func() { resume(nil, nil) })
				return weft.Await(), nil
			}
			return weft.Step{}, err
		})
	}
}

// noteCancel is like after but records an injected error into saw before
// failing with it, the way a cancellation-aware routine cleans up.
func noteCancel(n int, v any, saw *error) weft.Routine {
	return func(t *weft.Thread, resume weft.Callback) weft.Program {
		remaining := n
		return weft.StepFunc(func(in any, raise error) (weft.Step, error) {
			if raise != nil {
				*saw = raise
				return weft.Step{}, raise
			}
			if remaining > 0 {
				remaining--
				t.Loop().Defer(func() { resume(nil, nil) })
				return weft.Await(), nil
			}
			return weft.Done(v), nil
		})
	}
}

// blocked returns a routine that suspends on its first step and stays
// suspended until the resume callback stored in store is invoked.
func blocked(store *weft.Callback) weft.Routine {
	return func(t *weft.Thread, resume weft.Callback) weft.Program {
		started := false
		return weft.StepFunc(func(in any, raise error) (weft.Step, error) {
			if raise != nil {
				return weft.Step{}, raise
			}
			if !started {
				started = true
				*store = resume
				return weft.Await(), nil
			}
			return weft.Done(in), nil
		})
	}
}
