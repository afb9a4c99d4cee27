package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jcooky/go-din"

	"github.com/habiliai/signalrank/artifact"
	"github.com/habiliai/signalrank/config"
	"github.com/habiliai/signalrank/directory"
	"github.com/habiliai/signalrank/internal/metrics"
	"github.com/habiliai/signalrank/internal/mylog"
	"github.com/habiliai/signalrank/jsonrpc"
)

type Server struct {
	logger    *slog.Logger
	directory directory.Manager
	artifacts artifact.Service
	metrics   *metrics.Metrics
	rpc       http.Handler
}

// NewHandler assembles the REST API, JSON-RPC endpoint, health check and
// metrics behind CORS and panic recovery.
func NewHandler(c *din.Container) http.Handler {
	s := &Server{
		logger:    din.MustGetT[*mylog.Logger](c),
		directory: din.MustGetT[directory.Manager](c),
		artifacts: din.MustGetT[artifact.Service](c),
		metrics:   din.MustGetT[*metrics.Metrics](c),
		rpc:       jsonrpc.NewHandler(c, jsonrpc.WithArtifacts()),
	}

	return s.Handler()
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(withAccessLog(s.logger, s.metrics))

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/generate", s.generate).Methods(http.MethodPost)
	api.HandleFunc("/badge/{slug:[a-z0-9-]+}.svg", s.badge).Methods(http.MethodGet)
	api.HandleFunc("/agents", s.listAgents).Methods(http.MethodGet)
	api.HandleFunc("/agents", s.submitAgent).Methods(http.MethodPost)
	api.HandleFunc("/agents/{slug}", s.getAgent).Methods(http.MethodGet)
	api.HandleFunc("/agents/{slug}", s.deleteAgent).Methods(http.MethodDelete)
	api.HandleFunc("/compare", s.compareAgents).Methods(http.MethodGet)

	router.Handle("/rpc", s.rpc).Methods(http.MethodPost)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			s.logger.Warn("failed to write health response", mylog.Err(err))
		}
	}).Methods(http.MethodGet)
	router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", RequestIDHeader}),
		handlers.ExposedHeaders([]string{"Content-Length", "Content-Type", RequestIDHeader}),
		handlers.MaxAge(86400),
	)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		router.ServeHTTP(w, r.WithContext(ctx))
	})

	return cors(withRecovery(s.logger)(withRequestID(handler)))
}

// New builds the HTTP server listening on the configured address.
func New(c *din.Container) *http.Server {
	cfg := din.MustGetT[*config.ServerConfig](c)

	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           NewHandler(c),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
