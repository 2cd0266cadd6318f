// Package prom provides a Prometheus-backed thread.Observer.
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/NetPo4ki/go-thread/thread"
)

// Observer implements thread.Observer on top of Prometheus collectors.
// Attach it to a group with thread.WithObserver or to a standalone
// spawn with thread.WithSpawnObserver.
type Observer struct {
	started  prometheus.Counter
	finished *prometheus.CounterVec
	active   prometheus.Gauge
	duration prometheus.Histogram

	groupsCreated   prometheus.Counter
	groupsCancelled prometheus.Counter
	joins           prometheus.Counter
	joinWait        prometheus.Histogram
}

var _ thread.Observer = (*Observer)(nil)

// New builds the collectors, registers them on reg, and returns the
// observer. Registration errors (e.g. duplicate registration) are
// returned as-is.
func New(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		started: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gothread", Subsystem: "threads", Name: "started_total",
			Help: "Execution contexts started.",
		}),
		finished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gothread", Subsystem: "threads", Name: "finished_total",
			Help: "Execution contexts finished, by result.",
		}, []string{"result"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gothread", Subsystem: "threads", Name: "active",
			Help: "Execution contexts currently running.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gothread", Subsystem: "threads", Name: "duration_seconds",
			Help:    "Run time of finished execution contexts.",
			Buckets: prometheus.DefBuckets,
		}),
		groupsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gothread", Subsystem: "groups", Name: "created_total",
			Help: "Groups created.",
		}),
		groupsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gothread", Subsystem: "groups", Name: "cancelled_total",
			Help: "Groups cancelled.",
		}),
		joins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gothread", Subsystem: "groups", Name: "joins_total",
			Help: "Group join points reached.",
		}),
		joinWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gothread", Subsystem: "groups", Name: "join_wait_seconds",
			Help:    "Time spent blocked in group joins.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	collectors := []prometheus.Collector{
		o.started, o.finished, o.active, o.duration,
		o.groupsCreated, o.groupsCancelled, o.joins, o.joinWait,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *Observer) GroupCreated(context.Context) { o.groupsCreated.Inc() }

func (o *Observer) GroupCancelled(context.Context, error) { o.groupsCancelled.Inc() }

func (o *Observer) GroupJoined(_ context.Context, wait time.Duration) {
	o.joins.Inc()
	o.joinWait.Observe(wait.Seconds())
}

func (o *Observer) ThreadStarted(_ context.Context, _ thread.ID) {
	o.active.Inc()
	o.started.Inc()
}

func (o *Observer) ThreadFinished(_ context.Context, _ thread.ID, dur time.Duration, err error, panicked bool) {
	o.active.Dec()
	switch {
	case panicked:
		o.finished.WithLabelValues("panic").Inc()
	case err != nil:
		o.finished.WithLabelValues("error").Inc()
	default:
		o.finished.WithLabelValues("ok").Inc()
	}
	o.duration.Observe(dur.Seconds())
}
