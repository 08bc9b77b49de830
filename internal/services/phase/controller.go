package phase

import (
	"log/slog"
	"sync"

	"github.com/mkoss/manhunt/internal/dependencies/clock"
	"github.com/mkoss/manhunt/internal/model"
	"github.com/mkoss/manhunt/internal/services/registry"
)

// Controller owns the single process-wide round state. StartRound is the
// only mutation; its mutex serializes concurrent startGame intents so
// exactly one reset-and-assign runs at a time.
type Controller struct {
	mu    sync.RWMutex
	phase model.GamePhase

	registry *registry.Service
	clock    clock.Clock
	logger   *slog.Logger
}

// NewController creates a controller in the NotStarted state
func NewController(reg *registry.Service, clk clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		registry: reg,
		clock:    clk,
		logger:   logger.With(slog.String("component", "phase")),
	}
}

// StartRound begins a new round with the currently registered players.
// With fewer than model.MinPlayersToStart players it returns
// ErrInsufficientPlayers and leaves all state untouched; callers treat
// that as a silent rejection, never surfaced to clients.
//
// The first k joiners become cops (k per model.CopCountFor), the rest
// robbers. Every player's completion flag is reset, and any prior round's
// assignment is overwritten.
func (c *Controller) StartRound() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := c.registry.OrderedIDs()
	if len(ids) < model.MinPlayersToStart {
		c.logger.Debug("round start rejected",
			slog.Int("players", len(ids)),
			slog.Int("required", model.MinPlayersToStart))
		return model.ErrInsufficientPlayers
	}

	k := model.CopCountFor(len(ids))
	cops := make([]model.PlayerID, k)
	copy(cops, ids[:k])
	robbers := make([]model.PlayerID, len(ids)-k)
	copy(robbers, ids[k:])

	c.registry.ResetCompletedStages()
	for _, id := range cops {
		_ = c.registry.SetRole(id, model.RoleCop)
	}
	for _, id := range robbers {
		_ = c.registry.SetRole(id, model.RoleRobber)
	}

	c.phase = model.GamePhase{
		Started:   true,
		Completed: false,
		Cops:      cops,
		Robbers:   robbers,
		StartedAt: c.clock.Now(),
	}

	c.logger.Info("round started",
		slog.Int("players", len(ids)),
		slog.Int("cops", len(cops)),
		slog.Int("robbers", len(robbers)))
	return nil
}

// Snapshot returns a copy of the current round state
func (c *Controller) Snapshot() model.GamePhase {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot := c.phase
	snapshot.Cops = append([]model.PlayerID(nil), c.phase.Cops...)
	snapshot.Robbers = append([]model.PlayerID(nil), c.phase.Robbers...)
	return snapshot
}
