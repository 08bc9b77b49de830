package registry

import (
	"log/slog"
	"sync"

	"github.com/mkoss/manhunt/internal/dependencies/clock"
	"github.com/mkoss/manhunt/internal/model"
)

// Service is the authoritative player registry: one record per open
// connection. A single RWMutex guards every record field, so a snapshot
// can never observe a partially-written record. Join order is tracked so
// role assignment at round start is deterministic.
//
// All reads return copies; records never escape the lock.
type Service struct {
	mu      sync.RWMutex
	players map[model.PlayerID]*model.Player
	order   []model.PlayerID

	clock  clock.Clock
	logger *slog.Logger
}

// New creates an empty registry
func New(clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		players: make(map[model.PlayerID]*model.Player),
		clock:   clk,
		logger:  logger.With(slog.String("component", "registry")),
	}
}

// Create inserts a record with connection-time defaults for the given id
func (s *Service) Create(id model.PlayerID) (model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[id]; ok {
		return model.Player{}, model.ErrDuplicatePlayer
	}

	player := model.NewPlayer(id, s.clock.Now())
	s.players[id] = player
	s.order = append(s.order, id)

	s.logger.Info("player registered",
		slog.String("player_id", string(id)),
		slog.Int("total_players", len(s.players)))
	return *player, nil
}

// Remove deletes a record. Removing an absent id is a no-op so racing
// cleanup paths stay idempotent.
func (s *Service) Remove(id model.PlayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[id]; !ok {
		return
	}
	delete(s.players, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	s.logger.Info("player removed",
		slog.String("player_id", string(id)),
		slog.Int("total_players", len(s.players)))
}

// Get returns a copy of the record for the given id
func (s *Service) Get(id model.PlayerID) (model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, ok := s.players[id]
	if !ok {
		return model.Player{}, model.ErrPlayerNotFound
	}
	return *player, nil
}

// MoveBy translates a player's position by the given (already scaled)
// deltas. The read-modify-write happens under the registry lock.
func (s *Service) MoveBy(id model.PlayerID, dx, dy float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[id]
	if !ok {
		return model.ErrPlayerNotFound
	}
	player.X += dx
	player.Y += dy
	return nil
}

// SetCompletedStage records a player's self-reported completion flag
func (s *Service) SetCompletedStage(id model.PlayerID, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[id]
	if !ok {
		return model.ErrPlayerNotFound
	}
	player.CompletedStage = completed
	return nil
}

// SetUsername replaces a player's display name
func (s *Service) SetUsername(id model.PlayerID, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[id]
	if !ok {
		return model.ErrPlayerNotFound
	}
	player.Username = username
	return nil
}

// SetRole assigns a player's team for the current round
func (s *Service) SetRole(id model.PlayerID, role model.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[id]
	if !ok {
		return model.ErrPlayerNotFound
	}
	player.Role = role
	return nil
}

// ResetCompletedStages clears every player's completion flag; called at
// round start
func (s *Service) ResetCompletedStages() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, player := range s.players {
		player.CompletedStage = false
	}
}

// Snapshot returns a point-in-time copy of every record in join order
func (s *Service) Snapshot() []model.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]model.Player, 0, len(s.order))
	for _, id := range s.order {
		if player, ok := s.players[id]; ok {
			snapshot = append(snapshot, *player)
		}
	}
	return snapshot
}

// OrderedIDs returns every registered id in join order
func (s *Service) OrderedIDs() []model.PlayerID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]model.PlayerID, len(s.order))
	copy(ids, s.order)
	return ids
}

// Count returns the number of registered players
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}
