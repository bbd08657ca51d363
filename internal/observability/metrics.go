// Package observability bundles Prometheus metrics and OpenTelemetry tracing
// setup for the structure-generation surfaces.
package observability

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/materialsfoundry/crystal-generator/model"
)

// GeneratorCollector bundles Prometheus metrics for structure generation and
// the HTTP serving surface.
type GeneratorCollector struct {
	gatherer prometheus.Gatherer

	StructuresGenerated *prometheus.CounterVec
	GenerationFailures  *prometheus.CounterVec
	GenerationDuration  prometheus.Histogram
	StructureAtoms      prometheus.Histogram
	RegistryElements    prometheus.Gauge

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec
}

// NewGeneratorCollector registers generation metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewGeneratorCollector(reg prometheus.Registerer) (*GeneratorCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	generated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "structures_generated_total",
		Help: "Total number of structures generated, labeled by element and lattice family.",
	}, []string{"element", "family"})
	generated, err := registerCounterVec(reg, generated, "structures_generated_total")
	if err != nil {
		return nil, err
	}

	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "structure_generation_failures_total",
		Help: "Total number of failed generation requests, labeled by error kind.",
	}, []string{"kind"})
	failures, err = registerCounterVec(reg, failures, "structure_generation_failures_total")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "structure_generation_seconds",
		Help:    "Wall-clock time spent generating one structure.",
		Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5},
	}), "structure_generation_seconds")
	if err != nil {
		return nil, err
	}

	atoms, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "structure_atoms",
		Help:    "Atom count per generated structure.",
		Buckets: prometheus.ExponentialBuckets(2, 2, 14),
	}), "structure_atoms")
	if err != nil {
		return nil, err
	}

	registryElements, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "registry_elements",
		Help: "Current number of species in the element registry.",
	}), "registry_elements")
	if err != nil {
		return nil, err
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of handled HTTP requests, labeled by method, path, and status code.",
	}, []string{"method", "path", "code"})
	requests, err = registerCounterVec(reg, requests, "http_requests_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "path"})
	durations, err = registerHistogramVec(reg, durations, "http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &GeneratorCollector{
		gatherer:            gatherer,
		StructuresGenerated: generated,
		GenerationFailures:  failures,
		GenerationDuration:  duration,
		StructureAtoms:      atoms,
		RegistryElements:    registryElements,
		HTTPRequests:        requests,
		HTTPDurations:       durations,
	}, nil
}

// ObserveGeneration records one successful generation.
func (c *GeneratorCollector) ObserveGeneration(s model.Structure, elapsed time.Duration) {
	c.StructuresGenerated.WithLabelValues(s.Metadata.Element, s.Metadata.StructureType).Inc()
	c.GenerationDuration.Observe(elapsed.Seconds())
	c.StructureAtoms.Observe(float64(s.NumAtoms()))
}

// ObserveFailure records one failed generation under an error-kind label.
func (c *GeneratorCollector) ObserveFailure(kind string) {
	c.GenerationFailures.WithLabelValues(kind).Inc()
}

// Handler exposes the collector's gatherer in Prometheus text format.
func (c *GeneratorCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// Middleware records request counts and durations for an HTTP handler. The
// path label uses the route pattern, not the raw URL, to bound cardinality.
func (c *GeneratorCollector) Middleware(pattern string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		c.HTTPRequests.WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).Inc()
		c.HTTPDurations.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
