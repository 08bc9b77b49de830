package ws

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkoss/manhunt/internal/protocol"
	"github.com/mkoss/manhunt/internal/services/phase"
	"github.com/mkoss/manhunt/internal/services/registry"
)

// Broadcaster is the authoritative tick loop: at a fixed rate it
// snapshots the registry and round state, serializes one state frame,
// and fans it out through the hub. It runs for the process lifetime;
// no per-tick failure can escape the loop.
type Broadcaster struct {
	registry *registry.Service
	phase    *phase.Controller
	hub      *Hub
	interval time.Duration
	logger   *slog.Logger
}

// NewBroadcaster creates a broadcaster ticking at the given rate
func NewBroadcaster(
	reg *registry.Service,
	phaseController *phase.Controller,
	hub *Hub,
	tickRateHz int,
	logger *slog.Logger,
) *Broadcaster {
	return &Broadcaster{
		registry: reg,
		phase:    phaseController,
		hub:      hub,
		interval: time.Second / time.Duration(tickRateHz),
		logger:   logger.With(slog.String("component", "broadcaster")),
	}
}

// Interval returns the configured tick period
func (b *Broadcaster) Interval() time.Duration {
	return b.interval
}

// Run ticks until the context is cancelled
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	b.logger.Info("broadcaster started",
		slog.Duration("tick_interval", b.interval))

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("broadcaster stopped")
			return
		case <-ticker.C:
			b.tick()
		}
	}
}

// tick builds and fans out one snapshot
func (b *Broadcaster) tick() {
	players := b.registry.Snapshot()
	round := b.phase.Snapshot()

	frame, err := protocol.EncodeStateMessage(players, round)
	if err != nil {
		// Encoding the snapshot types cannot fail in practice; absorb
		// rather than let anything terminate the loop
		b.logger.Error("state encode failed", slog.Any("error", err))
		return
	}

	b.hub.Broadcast(frame)
}
