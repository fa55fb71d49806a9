// Package server exposes the answer engine over HTTP, mirroring the API the
// browser extension already speaks.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"jobradar/internal/answerer"
	"jobradar/internal/databank"
	"jobradar/internal/history"
	"jobradar/internal/metrics"
)

// Server holds the engine and its collaborators.
type Server struct {
	answerer *answerer.Service
	databank *databank.Store
	history  *history.Store
	metrics  *metrics.Metrics
	keepLast int
}

// New creates the HTTP server. keepLast bounds the usage-history size.
func New(svc *answerer.Service, db *databank.Store, hist *history.Store, m *metrics.Metrics, keepLast int) *Server {
	if keepLast <= 0 {
		keepLast = 1000
	}
	return &Server{answerer: svc, databank: db, history: hist, metrics: m, keepLast: keepLast}
}

// Routes returns the chi router with all API endpoints mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	// The extension runs from a chrome-extension:// origin; allow anything,
	// same as the original backend did.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/api/health", s.handleHealth)
	r.Post("/api/parse-and-answer", s.handleParseAndAnswer)
	r.Post("/api/debug/extract-questions", s.handleDebugExtract)
	r.Post("/api/track-answer", s.handleTrackAnswer)
	r.Get("/api/answer-history", s.handleAnswerHistory)
	r.Get("/api/qa-databank", s.handleQADatabank)
	r.Get("/api/metrics", s.handleMetrics)

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
