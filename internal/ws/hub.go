package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mkoss/manhunt/internal/model"
)

// Hub tracks the live connections eligible for broadcast. Exactly one
// client is registered per player id, mirroring the registry's
// one-record-per-connection invariant.
type Hub struct {
	mu      sync.RWMutex
	clients map[model.PlayerID]*Client
	logger  *slog.Logger
}

// NewHub creates an empty hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[model.PlayerID]*Client),
		logger:  logger.With(slog.String("component", "hub")),
	}
}

// Register adds a client to the broadcast set
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client.playerID] = client
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("client registered",
		slog.String("player_id", string(client.playerID)),
		slog.Int("total_clients", count))
}

// Unregister removes a client and ends its write pump. Unregistering an
// absent id is a no-op, so cleanup paths stay idempotent.
func (h *Hub) Unregister(playerID model.PlayerID) {
	h.mu.Lock()
	client, ok := h.clients[playerID]
	if ok {
		delete(h.clients, playerID)
	}
	count := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}
	client.CloseSend()
	h.logger.Info("client unregistered",
		slog.String("player_id", string(client.playerID)),
		slog.Duration("connection_duration", time.Since(client.connectedAt)),
		slog.Int("total_clients", count))
}

// Broadcast offers a frame to every registered client. A full client
// buffer drops the frame for that client only; delivery to the rest of
// the set continues.
func (h *Hub) Broadcast(frame []byte) {
	h.mu.RLock()
	dropped := 0
	for _, client := range h.clients {
		if !client.Enqueue(frame) {
			dropped++
			h.logger.Warn("frame dropped - client buffer full",
				slog.String("player_id", string(client.playerID)))
		}
	}
	h.mu.RUnlock()
}

// ClientCount returns the number of registered clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
