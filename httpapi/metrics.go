package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
)

type apiMetrics struct {
	requests       *prometheus.CounterVec
	errorsByStatus *prometheus.CounterVec
	logins         *prometheus.CounterVec
}

func newAPIMetrics(reg prometheus.Registerer) *apiMetrics {
	m := &apiMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "classicmatch",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Requests handled, by route.",
		}, []string{"route"}),
		errorsByStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "classicmatch",
			Subsystem: "http",
			Name:      "errors_total",
			Help:      "Failed requests, by status text.",
		}, []string{"status"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "classicmatch",
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts, by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(m.requests, m.errorsByStatus, m.logins)
	return m
}
