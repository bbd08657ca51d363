package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"

	"github.com/materialsfoundry/crystal-generator/model"
)

func sampleStructure() model.Structure {
	return model.Structure{
		Positions: make([][3]float64, 32),
		Numbers:   make([]int, 32),
		Metadata: model.Metadata{
			Element:       "Cu",
			StructureType: "fcc",
			NumAtoms:      32,
		},
	}
}

func TestObserveGenerationRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewGeneratorCollector(reg)
	if err != nil {
		t.Fatalf("NewGeneratorCollector: %v", err)
	}

	collector.ObserveGeneration(sampleStructure(), 2*time.Millisecond)

	if got := testutil.ToFloat64(collector.StructuresGenerated.WithLabelValues("Cu", "fcc")); got != 1 {
		t.Fatalf("structures_generated_total = %v, want 1", got)
	}
	if count := histogramSampleCount(t, reg, "structure_generation_seconds", nil); count != 1 {
		t.Fatalf("structure_generation_seconds sample_count = %d, want 1", count)
	}
	if count := histogramSampleCount(t, reg, "structure_atoms", nil); count != 1 {
		t.Fatalf("structure_atoms sample_count = %d, want 1", count)
	}
}

func TestObserveFailureRecordsKind(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewGeneratorCollector(reg)
	if err != nil {
		t.Fatalf("NewGeneratorCollector: %v", err)
	}

	collector.ObserveFailure("validation")
	collector.ObserveFailure("validation")
	collector.ObserveFailure("configuration")

	if got := testutil.ToFloat64(collector.GenerationFailures.WithLabelValues("validation")); got != 2 {
		t.Fatalf("validation failures = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.GenerationFailures.WithLabelValues("configuration")); got != 1 {
		t.Fatalf("configuration failures = %v, want 1", got)
	}
}

func TestMiddlewareRecordsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewGeneratorCollector(reg)
	if err != nil {
		t.Fatalf("NewGeneratorCollector: %v", err)
	}

	handler := collector.Middleware("/v1/structures", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/structures", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := testutil.ToFloat64(collector.HTTPRequests.WithLabelValues("POST", "/v1/structures", "422")); got != 1 {
		t.Fatalf("http_requests_total = %v, want 1", got)
	}
	if count := histogramSampleCount(t, reg, "http_request_duration_seconds", map[string]string{
		"method": "POST",
		"path":   "/v1/structures",
	}); count != 1 {
		t.Fatalf("http_request_duration_seconds sample_count = %d, want 1", count)
	}
}

func TestHandlerExposesRegistryGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewGeneratorCollector(reg)
	if err != nil {
		t.Fatalf("NewGeneratorCollector: %v", err)
	}
	collector.RegistryElements.Set(10)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("metrics handler status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "registry_elements 10") {
		t.Fatalf("metrics output missing registry gauge:\n%s", rec.Body.String())
	}
}

func TestNewGeneratorCollector_Reregistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewGeneratorCollector(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	// A second collector on the same registry must reuse the existing
	// collectors instead of failing.
	if _, err := NewGeneratorCollector(reg); err != nil {
		t.Fatalf("second registration: %v", err)
	}
}

func histogramSampleCount(t *testing.T, g prometheus.Gatherer, name string, labels map[string]string) uint64 {
	t.Helper()

	families, err := g.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if !matchLabels(m, labels) {
				continue
			}
			return m.GetHistogram().GetSampleCount()
		}
	}
	return 0
}

func matchLabels(m *dto.Metric, labels map[string]string) bool {
	have := map[string]string{}
	for _, lp := range m.GetLabel() {
		have[lp.GetName()] = lp.GetValue()
	}
	for k, v := range labels {
		if have[k] != v {
			return false
		}
	}
	return true
}
