package factory

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/mkoss/manhunt/internal/dependencies/clock"
	"github.com/mkoss/manhunt/internal/dependencies/random"
	"github.com/mkoss/manhunt/internal/services/phase"
	"github.com/mkoss/manhunt/internal/services/registry"
	"github.com/mkoss/manhunt/internal/ws"
)

// Defaults carried over from the first deployment of this game
const (
	DefaultTickRateHz      = 30
	DefaultSpeedMultiplier = 5.0
)

// App contains all wired application components
type App struct {
	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Core
	Registry    *registry.Service
	Phase       *phase.Controller
	Hub         *ws.Hub
	Broadcaster *ws.Broadcaster
	WSHandler   http.HandlerFunc
}

// Config holds configuration for the application factory
type Config struct {
	// TickRateHz is the broadcast frequency (default 30)
	TickRateHz int
	// SpeedMultiplier scales move intent deltas (default 5)
	SpeedMultiplier float64
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	if cfg.TickRateHz == 0 {
		cfg.TickRateHz = DefaultTickRateHz
	}
	if cfg.TickRateHz < 0 {
		return nil, errors.New("TickRateHz must be positive")
	}
	if cfg.SpeedMultiplier == 0 {
		cfg.SpeedMultiplier = DefaultSpeedMultiplier
	}

	return newWithDependencies(clock.New(), random.New(), cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful
// for testing)
func newWithDependencies(clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *App {
	reg := registry.New(clk, logger)
	phaseController := phase.NewController(reg, clk, logger)
	hub := ws.NewHub(logger)
	broadcaster := ws.NewBroadcaster(reg, phaseController, hub, cfg.TickRateHz, logger)
	wsHandler := ws.Handler(ws.HandlerConfig{
		Logger:          logger,
		Registry:        reg,
		Phase:           phaseController,
		Hub:             hub,
		Clock:           clk,
		Random:          rnd,
		SpeedMultiplier: cfg.SpeedMultiplier,
	})

	return &App{
		Clock:       clk,
		Random:      rnd,
		Registry:    reg,
		Phase:       phaseController,
		Hub:         hub,
		Broadcaster: broadcaster,
		WSHandler:   wsHandler,
	}
}
