// Package metrics exposes loop and throttle metrics to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	fx "github.com/robotalks/trident/pkg/framework"
	"github.com/robotalks/trident/pkg/throttle"
	"github.com/robotalks/trident/pkg/wire"
)

const namespace = "trident"

// Metrics collects loop timing and throttle decisions.
type Metrics struct {
	Ticks    prometheus.Counter
	Overruns prometheus.Counter
	Work     prometheus.Histogram
	Elapsed  prometheus.Gauge
	Frames   *prometheus.CounterVec
	Level    prometheus.Gauge
}

// New creates Metrics and registers collectors to reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loop",
			Name:      "ticks_total",
			Help:      "Number of loop iterations.",
		}),
		Overruns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loop",
			Name:      "overruns_total",
			Help:      "Number of iterations exceeding the period.",
		}),
		Work: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "loop",
			Name:      "work_seconds",
			Help:      "Time spent in controllers per iteration.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 10),
		}),
		Elapsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "loop",
			Name:      "elapsed_seconds",
			Help:      "Virtual elapsed time of the loop.",
		}),
		Frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wire",
			Name:      "frames_total",
			Help:      "Number of frames transmitted.",
		}, []string{"command"}),
		Level: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "throttle",
			Name:      "level",
			Help:      "Latest throttle level.",
		}),
	}
	reg.MustRegister(m.Ticks, m.Overruns, m.Work, m.Elapsed, m.Frames, m.Level)
	return m
}

// TickDone implements framework.TickObserver.
func (m *Metrics) TickDone(s fx.TickStats) {
	m.Ticks.Inc()
	if s.Overrun() {
		m.Overruns.Inc()
	}
	m.Work.Observe(s.Work.Seconds())
	m.Elapsed.Set(s.Elapsed.Seconds())
}

// Decided implements throttle.Observer.
func (m *Metrics) Decided(d throttle.Decision) {
	m.Level.Set(float64(d.Level))
}

// FrameSent implements wire.SendObserver.
func (m *Metrics) FrameSent(cmd wire.Command, f wire.Frame) {
	m.Frames.WithLabelValues(cmd.Name).Inc()
}
