// Package prom exports weft loop activity as Prometheus metrics.
package prom

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/weft-go/weft"
)

// Observer implements [weft.Observer] on top of Prometheus collectors.
type Observer struct {
	forked   prometheus.Counter
	finished *prometheus.CounterVec
	duration prometheus.Histogram
	ticks    prometheus.Counter
	timers   prometheus.Counter
}

var _ weft.Observer = (*Observer)(nil)

// New creates an [Observer] and registers its collectors with reg.
func New(reg prometheus.Registerer) *Observer {
	o := &Observer{
		forked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weft_threads_forked_total",
			Help: "Thread handles created by the loop.",
		}),
		finished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weft_threads_finished_total",
			Help: "Thread completions by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "weft_thread_duration_seconds",
			Help:    "Time from fork to completion.",
			Buckets: prometheus.DefBuckets,
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weft_ticks_scheduled_total",
			Help: "Continuations deferred onto the loop.",
		}),
		timers: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weft_timers_armed_total",
			Help: "Sleep timers started.",
		}),
	}
	reg.MustRegister(o.forked, o.finished, o.duration, o.ticks, o.timers)
	return o
}

// ThreadForked implements [weft.Observer].
func (o *Observer) ThreadForked() {
	o.forked.Inc()
}

// ThreadFinished implements [weft.Observer].
func (o *Observer) ThreadFinished(dur time.Duration, err error) {
	o.finished.WithLabelValues(outcome(err)).Inc()
	o.duration.Observe(dur.Seconds())
}

// TickScheduled implements [weft.Observer].
func (o *Observer) TickScheduled() {
	o.ticks.Inc()
}

// TimerArmed implements [weft.Observer].
func (o *Observer) TimerArmed(time.Duration) {
	o.timers.Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, weft.Canceled):
		return "canceled"
	default:
		return "error"
	}
}
