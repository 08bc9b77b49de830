package factory

import (
	"log/slog"

	"github.com/mkoss/manhunt/internal/dependencies/clock"
	"github.com/mkoss/manhunt/internal/dependencies/random"
)

// NewForTest creates an App wired with the given (usually mocked) clock
// and random dependencies
func NewForTest(cfg Config, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	if cfg.TickRateHz == 0 {
		cfg.TickRateHz = DefaultTickRateHz
	}
	if cfg.SpeedMultiplier == 0 {
		cfg.SpeedMultiplier = DefaultSpeedMultiplier
	}
	return newWithDependencies(clk, rnd, cfg, logger)
}
