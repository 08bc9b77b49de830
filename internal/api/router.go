package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mkoss/manhunt/internal/middleware"
	"github.com/mkoss/manhunt/internal/services/phase"
	"github.com/mkoss/manhunt/internal/services/registry"
	"github.com/mkoss/manhunt/internal/ws"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	Logger      *slog.Logger
	Registry    *registry.Service
	Phase       *phase.Controller
	Hub         *ws.Hub
	Broadcaster *ws.Broadcaster
	WSHandler   http.HandlerFunc
}

// NewRouter creates the router: the WebSocket endpoint plus a small
// operational surface
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	loggingMiddleware := middleware.Logging(cfg.Logger)

	// The game endpoint. Recovery applies here too: a panicking
	// connection handler unwinds through its cleanup defers and the
	// process stays up.
	wsRoute := r.PathPrefix("/ws").Subrouter()
	wsRoute.Use(recoveryMiddleware)
	wsRoute.HandleFunc("", cfg.WSHandler).Methods(http.MethodGet)

	// Operational endpoints
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	api.HandleFunc("/status", statusHandler(cfg)).Methods(http.MethodGet)

	r.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)

	return r
}
