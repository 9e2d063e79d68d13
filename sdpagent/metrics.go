// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdpagent

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "sdpagent"

// Metrics counts negotiation outcomes. A nil *Metrics records nothing.
type Metrics struct {
	offers          prometheus.Counter
	answers         prometheus.Counter
	rejected        *prometheus.CounterVec
	handlerFailures *prometheus.CounterVec
}

// NewMetrics creates the negotiation counters and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		offers: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "offers_total",
			Help:      "Total number of offers created.",
		}),
		answers: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "answers_total",
			Help:      "Total number of answers created.",
		}),
		rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "media_rejected_total",
			Help:      "Total number of offered media lines answered with port 0.",
		}, []string{"media"}),
		handlerFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "handler_failures_total",
			Help:      "Total number of media handler errors.",
		}, []string{"operation", "media", "protocol"}),
	}
}

func (m *Metrics) offerCreated() {
	if m == nil {
		return
	}
	m.offers.Inc()
}

func (m *Metrics) answerCreated() {
	if m == nil {
		return
	}
	m.answers.Inc()
}

func (m *Metrics) mediaRejected(media string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(media).Inc()
}

func (m *Metrics) handlerFailed(operation, media, protocol string) {
	if m == nil {
		return
	}
	m.handlerFailures.WithLabelValues(operation, media, protocol).Inc()
}
