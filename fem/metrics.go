// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds counters and histograms of one run. Each run owns its registry
type Metrics struct {
	Registry    *prometheus.Registry
	Steps       prometheus.Counter   // converged time steps
	NewtonIts   prometheus.Counter   // Newton iterations
	LinearIts   prometheus.Counter   // linear solver iterations
	LinearFails prometheus.Counter   // linear solves that did not converge
	Assembly    prometheus.Histogram // assembly time in seconds
	ResidualU   prometheus.Gauge     // normalised residual of displacements at the last iteration
	Time        prometheus.Gauge     // current time
}

// NewMetrics allocates a new set of metrics on a new registry
func NewMetrics() (o *Metrics) {
	o = &Metrics{Registry: prometheus.NewRegistry()}
	f := promauto.With(o.Registry)
	o.Steps = f.NewCounter(prometheus.CounterOpts{
		Namespace: "mlsolver", Name: "time_steps_total",
		Help: "Number of converged time steps",
	})
	o.NewtonIts = f.NewCounter(prometheus.CounterOpts{
		Namespace: "mlsolver", Name: "newton_iterations_total",
		Help: "Number of Newton-Raphson iterations",
	})
	o.LinearIts = f.NewCounter(prometheus.CounterOpts{
		Namespace: "mlsolver", Name: "linear_iterations_total",
		Help: "Number of iterations of the linear solver",
	})
	o.LinearFails = f.NewCounter(prometheus.CounterOpts{
		Namespace: "mlsolver", Name: "linear_failures_total",
		Help: "Number of linear solves that did not converge",
	})
	o.Assembly = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mlsolver", Name: "assembly_seconds",
		Help:    "Time spent assembling the global system",
		Buckets: prometheus.ExponentialBuckets(1e-4, 4, 10),
	})
	o.ResidualU = f.NewGauge(prometheus.GaugeOpts{
		Namespace: "mlsolver", Name: "residual_u",
		Help: "Normalised residual of displacements at the last iteration",
	})
	o.Time = f.NewGauge(prometheus.GaugeOpts{
		Namespace: "mlsolver", Name: "time",
		Help: "Pseudo-time of the last converged step",
	})
	return
}

// ObserveAssembly records the duration of one assembly
func (o *Metrics) ObserveAssembly(d time.Duration) {
	if o == nil {
		return
	}
	o.Assembly.Observe(d.Seconds())
}

// ObserveIteration records one Newton iteration
func (o *Metrics) ObserveIteration(linIts int, linConverged bool, resU float64) {
	if o == nil {
		return
	}
	o.NewtonIts.Inc()
	o.LinearIts.Add(float64(linIts))
	if !linConverged {
		o.LinearFails.Inc()
	}
	o.ResidualU.Set(resU)
}

// ObserveStep records one converged time step
func (o *Metrics) ObserveStep(t float64) {
	if o == nil {
		return
	}
	o.Steps.Inc()
	o.Time.Set(t)
}

// Save writes all metrics to a file in the Prometheus text format
func (o *Metrics) Save(fn string) (err error) {
	if err = prometheus.WriteToTextfile(fn, o.Registry); err != nil {
		return chk.Err("cannot write metrics file %q:\n%v", fn, err)
	}
	return
}
