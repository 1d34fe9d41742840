// Package server wires the HTTP boundary named only at its edges by spec.md
// §6: tile requests, the layer listing, the embedded map viewer, and the
// live stats dashboard. It is the collaborator surface — it depends on
// internal/reader for tiles and layers and on internal/tilecache for stats.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pspoerri/geotiles/internal/reader"
	"github.com/pspoerri/geotiles/internal/tilecache"
)

// Server bundles the dependencies the HTTP handlers need.
type Server struct {
	reader reader.Reader
	cache  *tilecache.Cache
	log    zerolog.Logger

	ready chan struct{}
}

// New constructs a Server. ready should be closed once the catalogue scan at
// startup completes; until then /healthz answers 503 (spec.md §9's "readiness
// gate" design note).
func New(r reader.Reader, cache *tilecache.Cache, log zerolog.Logger, ready chan struct{}) *Server {
	return &Server{reader: r, cache: cache, log: log, ready: ready}
}

// Handler builds the full chi router: request ID + access log + panic
// recovery and CORS, all applied globally to every route.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.accessLog)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/healthz", s.handleHealthz)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/tiles/{layer}/{z}/{x}/{y}", s.handleTile)
	r.Get("/layers", s.handleLayers)
	r.Get("/map", s.handleMap)
	r.Get("/stats", s.handleStats)
	r.Get("/stats/ws", s.handleStatsWS)

	return r
}

// accessLog logs method, path, status and duration with structured fields
// (SPEC_FULL.md §A.1).
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		s.log.Info().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", requestIDFromContext(req.Context())).
			Msg("request")
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	select {
	case <-s.ready:
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	default:
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("catalogue scan in progress"))
	}
}
