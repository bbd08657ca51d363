// Package server exposes structure generation over a JSON/HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/materialsfoundry/crystal-generator/core"
	"github.com/materialsfoundry/crystal-generator/internal/logging"
	"github.com/materialsfoundry/crystal-generator/internal/observability"
	"github.com/materialsfoundry/crystal-generator/kb"
	"github.com/materialsfoundry/crystal-generator/model"
)

const defaultCacheSize = 256

// Server handles generation requests. Generation is deterministic, so
// responses are cached per normalized request in a bounded LRU; the cache
// lives here in the serving layer and the engine itself stays pure.
type Server struct {
	gen      *core.Generator
	registry *kb.Registry
	log      logging.Logger
	metrics  *observability.GeneratorCollector
	cache    *lru.Cache[string, model.Structure]
}

// Config controls server construction.
type Config struct {
	CacheSize int // ≤0 means defaultCacheSize
}

// New builds a Server. metrics may be nil, in which case no metrics are
// recorded and the /metrics route is omitted.
func New(gen *core.Generator, registry *kb.Registry, log logging.Logger, metrics *observability.GeneratorCollector, cfg Config) (*Server, error) {
	if log == nil {
		log = logging.Noop()
	}
	size := cfg.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, model.Structure](size)
	if err != nil {
		return nil, fmt.Errorf("create response cache: %w", err)
	}
	return &Server{
		gen:      gen,
		registry: registry,
		log:      log,
		metrics:  metrics,
		cache:    cache,
	}, nil
}

// Routes returns the HTTP handler for all server endpoints.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /v1/structures", s.instrument("/v1/structures", http.HandlerFunc(s.handleGenerate)))
	mux.Handle("GET /v1/elements", s.instrument("/v1/elements", http.HandlerFunc(s.handleElements)))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
	return mux
}

func (s *Server) instrument(pattern string, next http.Handler) http.Handler {
	if s.metrics == nil {
		return next
	}
	return s.metrics.Middleware(pattern, next)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	log := s.log.With(logging.String("request_id", requestID))
	ctx := r.Context()

	var req model.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body: "+err.Error())
		return
	}

	key := cacheKey(req)
	if cached, ok := s.cache.Get(key); ok {
		log.Debug(ctx, "structure served from cache", logging.String("key", key))
		writeJSON(w, http.StatusOK, cached)
		return
	}

	tracer := otel.Tracer("structure-server")
	ctx, span := tracer.Start(ctx, "GenerateStructure")
	span.SetAttributes(
		attribute.String("crystal.element", req.Element),
		attribute.String("crystal.structure_type", req.StructureType),
	)
	defer span.End()

	start := time.Now()
	structure, err := s.gen.Generate(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		status, kind := classify(err)
		if s.metrics != nil {
			s.metrics.ObserveFailure(kind)
		}
		log.Warn(ctx, "structure generation failed",
			logging.String("element", req.Element),
			logging.String("structure_type", req.StructureType),
			logging.String("kind", kind),
			logging.Err(err),
		)
		writeError(w, status, err.Error())
		return
	}

	if s.metrics != nil {
		s.metrics.ObserveGeneration(structure, elapsed)
	}
	s.cache.Add(key, structure)

	log.Info(ctx, "structure generated",
		logging.String("element", structure.Metadata.Element),
		logging.String("structure_type", structure.Metadata.StructureType),
		logging.Int("num_atoms", structure.NumAtoms()),
	)
	writeJSON(w, http.StatusOK, structure)
}

func (s *Server) handleElements(w http.ResponseWriter, r *http.Request) {
	type elementInfo struct {
		Symbol            string             `json:"symbol"`
		AtomicNumber      int                `json:"atomic_number"`
		SupportedFamilies []string           `json:"supported_structures"`
		LatticeConstants  map[string]float64 `json:"lattice_constants"`
		COverA            *float64           `json:"c_over_a,omitempty"`
	}

	elements := s.registry.List()
	out := make([]elementInfo, 0, len(elements))
	for _, p := range elements {
		info := elementInfo{
			Symbol:           p.Symbol,
			AtomicNumber:     p.AtomicNumber,
			LatticeConstants: make(map[string]float64, len(p.LatticeConstants)),
		}
		for _, f := range p.SupportedFamilies() {
			info.SupportedFamilies = append(info.SupportedFamilies, f.String())
			info.LatticeConstants[f.String()] = p.LatticeConstants[f]
		}
		if p.COverA > 0 {
			v := p.COverA
			info.COverA = &v
		}
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, out)
}

// classify maps engine error kinds to HTTP statuses: bad caller input is 400,
// unsupported pairings and unresolvable defaults are 422, and a failed
// post-generation sanity check is a server-side defect, 500.
func classify(err error) (status int, kind string) {
	switch {
	case errors.Is(err, core.ErrValidation):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, core.ErrConfiguration):
		return http.StatusUnprocessableEntity, "configuration"
	case errors.Is(err, core.ErrGeometry):
		return http.StatusInternalServerError, "geometry"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// cacheKey normalizes a request into a stable string key. Requests that rely
// on registry defaults key differently from ones passing the same values
// explicitly; both still generate identical structures.
func cacheKey(req model.Request) string {
	var b strings.Builder
	b.WriteString(req.Element)
	b.WriteByte('|')
	b.WriteString(strings.ToLower(strings.TrimSpace(req.StructureType)))
	b.WriteByte('|')
	if req.LatticeConstant != nil {
		fmt.Fprintf(&b, "%g", *req.LatticeConstant)
	}
	b.WriteByte('|')
	if req.COverA != nil {
		fmt.Fprintf(&b, "%g", *req.COverA)
	}
	size := req.EffectiveSize()
	fmt.Fprintf(&b, "|%d,%d,%d", size[0], size[1], size[2])
	return b.String()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
