// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package arena

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics carries the server's Prometheus instruments on a private
// registry, so several servers (and tests) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	ActiveMatches   prometheus.Gauge
	Moves           prometheus.Counter
	FinishedMatches *prometheus.CounterVec
	MatchDuration   prometheus.Histogram
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ActiveMatches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_matches",
			Help:      "Number of matches currently in play",
		}),
		Moves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Total number of client moves fed into a match",
		}),
		FinishedMatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "finished_matches_total",
			Help:      "Total number of finished matches by result",
		}, []string{"result"}),
		MatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_duration_seconds",
			Help:      "Match duration from hello to outcome",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 12),
		}),
	}

	m.registry.MustRegister(
		m.ActiveMatches,
		m.Moves,
		m.FinishedMatches,
		m.MatchDuration,
	)

	return m
}

// Handler returns the scrape endpoint for this metrics set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
