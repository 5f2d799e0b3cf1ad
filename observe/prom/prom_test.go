package prom_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/weft-go/weft"
	"github.com/weft-go/weft/observe/prom"
)

func TestObserverCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := prom.New(reg)

	var l weft.Loop
	l.Observe(obs)

	l.Fork(weft.Return(1), nil, nil)
	l.Fork(weft.Fail(errors.New("boom")), nil, nil)
	h := l.Sleep(time.Hour, nil)
	h.Cancel()
	l.Run()

	const expected = `
# HELP weft_threads_forked_total Thread handles created by the loop.
# TYPE weft_threads_forked_total counter
weft_threads_forked_total 3
# HELP weft_threads_finished_total Thread completions by outcome.
# TYPE weft_threads_finished_total counter
weft_threads_finished_total{outcome="canceled"} 1
weft_threads_finished_total{outcome="error"} 1
weft_threads_finished_total{outcome="ok"} 1
# HELP weft_timers_armed_total Sleep timers started.
# TYPE weft_timers_armed_total counter
weft_timers_armed_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"weft_threads_forked_total",
		"weft_threads_finished_total",
		"weft_timers_armed_total",
	))
}

func TestObserverCountsTicks(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := prom.New(reg)

	var l weft.Loop
	l.Observe(obs)

	// Fork defers exactly one continuation: the first step.
	l.Fork(weft.Return(1), nil, nil)
	l.Run()

	const expected = `
# HELP weft_ticks_scheduled_total Continuations deferred onto the loop.
# TYPE weft_ticks_scheduled_total counter
weft_ticks_scheduled_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"weft_ticks_scheduled_total",
	))
}
