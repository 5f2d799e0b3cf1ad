package weft

import (
	"fmt"
	"runtime/debug"
)

// A PanicError reports a panic raised while stepping a routine.
// The panic is recovered by the driving thread and surfaces through the
// completion callback; it never unwinds into the [Loop].
type PanicError struct {
	// Value is the value the routine panicked with.
	Value any
	// Stack is the stack trace captured at recovery, as returned by
	// [runtime/debug.Stack].
	Stack []byte
}

func newPanicError(v any) *PanicError {
	return &PanicError{Value: v, Stack: debug.Stack()}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("weft: routine panicked: %v", e.Value)
}

// Unwrap returns the panic value if it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
