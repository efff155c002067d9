// Package metrics exports try-registration outcomes to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/xraph/vesselx"
)

const namespace = "vesselx"

// Collector is a vesselx.Observer that counts registration outcomes.
type Collector struct {
	registrations *prometheus.CounterVec
	keys          *prometheus.CounterVec
}

var _ vesselx.Observer = (*Collector)(nil)

// New creates a Collector and registers it with reg. A nil reg uses
// prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Try-registrations by outcome.",
		}, []string{"outcome"}),
		keys: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registration_keys_total",
			Help:      "Keys named by try-registrations, by outcome.",
		}, []string{"outcome"}),
	}

	for _, col := range []prometheus.Collector{c.registrations, c.keys} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}

	// Pre-create series so every outcome reports zero before it happens.
	for _, o := range []vesselx.Outcome{vesselx.OutcomeRegistered, vesselx.OutcomeSkipped, vesselx.OutcomeFailed} {
		c.registrations.WithLabelValues(o.String())
		c.keys.WithLabelValues(o.String())
	}

	return c, nil
}

// Observe implements vesselx.Observer.
func (c *Collector) Observe(e vesselx.Event) {
	label := e.Outcome.String()
	c.registrations.WithLabelValues(label).Inc()
	c.keys.WithLabelValues(label).Add(float64(len(e.Keys)))
}
