package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Service encapsulates Prometheus instrumentation for the record store.
type Service struct {
	registry *prometheus.Registry

	recordsLoaded   *prometheus.CounterVec
	parseFailures   *prometheus.CounterVec
	fileRewrites    *prometheus.CounterVec
	rewriteFailures *prometheus.CounterVec
	loginAttempts   *prometheus.CounterVec
	lockouts        prometheus.Counter
}

// NewService registers the store collectors on a dedicated registry.
func NewService() *Service {
	registry := prometheus.NewRegistry()

	recordsLoaded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_records_loaded_total",
		Help: "Number of records successfully decoded per entity file.",
	}, []string{"entity"})
	parseFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_parse_failures_total",
		Help: "Number of malformed lines skipped during load per entity file.",
	}, []string{"entity"})
	fileRewrites := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_file_rewrites_total",
		Help: "Number of completed atomic file rewrites per entity file.",
	}, []string{"entity"})
	rewriteFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_rewrite_failures_total",
		Help: "Number of failed rewrite attempts that left the original file intact.",
	}, []string{"entity"})
	loginAttempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_login_attempts_total",
		Help: "Login attempts partitioned by outcome.",
	}, []string{"outcome"})
	lockouts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auth_lockouts_total",
		Help: "Number of identifiers locked after repeated failures.",
	})

	registry.MustRegister(recordsLoaded, parseFailures, fileRewrites, rewriteFailures, loginAttempts, lockouts)

	return &Service{
		registry:        registry,
		recordsLoaded:   recordsLoaded,
		parseFailures:   parseFailures,
		fileRewrites:    fileRewrites,
		rewriteFailures: rewriteFailures,
		loginAttempts:   loginAttempts,
		lockouts:        lockouts,
	}
}

// Registry exposes the underlying registry for embedding applications.
func (s *Service) Registry() *prometheus.Registry {
	if s == nil {
		return nil
	}
	return s.registry
}

// ObserveLoad records the outcome of one repository load.
func (s *Service) ObserveLoad(entity string, decoded, skipped int) {
	if s == nil {
		return
	}
	s.recordsLoaded.WithLabelValues(entity).Add(float64(decoded))
	if skipped > 0 {
		s.parseFailures.WithLabelValues(entity).Add(float64(skipped))
	}
}

// ObserveRewrite records one atomic rewrite attempt.
func (s *Service) ObserveRewrite(entity string, ok bool) {
	if s == nil {
		return
	}
	if ok {
		s.fileRewrites.WithLabelValues(entity).Inc()
		return
	}
	s.rewriteFailures.WithLabelValues(entity).Inc()
}

// ObserveLogin records a login attempt outcome ("success", "failure" or "locked").
func (s *Service) ObserveLogin(outcome string) {
	if s == nil {
		return
	}
	s.loginAttempts.WithLabelValues(outcome).Inc()
}

// ObserveLockout records a newly locked identifier.
func (s *Service) ObserveLockout() {
	if s == nil {
		return
	}
	s.lockouts.Inc()
}
