// Package metrics holds the Prometheus collectors the client reports to.
// A nil *Collectors is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "koywe_client"

// Grant labels for token grant counters.
const (
	GrantPassword     = "password"
	GrantRefreshToken = "refresh_token"
)

// Collectors counts dispatched requests by method and outcome, observes
// their latency and counts token grants by grant type and result.
type Collectors struct {
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	tokenGrants *prometheus.CounterVec
}

// New creates the collectors and registers them on reg. A nil reg leaves
// them unregistered, which is useful in tests. When one collector fails to
// register, those registered before it are removed from reg again.
func New(reg prometheus.Registerer) (*Collectors, error) {
	c := &Collectors{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of API requests by method and outcome.",
			},
			[]string{"method", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Latency of API requests, including token acquisition.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		tokenGrants: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "token_grants_total",
				Help:      "Token grant requests sent to the auth endpoint by grant type and result.",
			},
			[]string{"grant", "result"},
		),
	}

	if reg != nil {
		registered := make([]prometheus.Collector, 0, 3)
		for _, col := range []prometheus.Collector{c.requests, c.duration, c.tokenGrants} {
			if err := reg.Register(col); err != nil {
				for _, r := range registered {
					reg.Unregister(r)
				}
				return nil, err
			}
			registered = append(registered, col)
		}
	}
	return c, nil
}

// ObserveRequest records one dispatched request. outcome is "success" or an
// error kind name.
func (c *Collectors) ObserveRequest(method, outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(method, outcome).Inc()
	c.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveGrant records one token grant attempt.
func (c *Collectors) ObserveGrant(grant string, ok bool) {
	if c == nil {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	c.tokenGrants.WithLabelValues(grant, result).Inc()
}
