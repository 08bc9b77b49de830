package protocol

import (
	"encoding/json"

	"github.com/mkoss/manhunt/internal/model"
)

// Server-to-client message type tags
const (
	TypeInit  = "init"
	TypeState = "state"
)

// InitMessage is sent once to a client immediately after it connects
type InitMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// NewInitMessage builds the init frame for a newly assigned player id
func NewInitMessage(id model.PlayerID) InitMessage {
	return InitMessage{Type: TypeInit, ID: string(id)}
}

// PlayerState is a player's externally-visible fields as broadcast to
// clients; the connection handle is never serialized
type PlayerState struct {
	PlayerID       string  `json:"playerId"`
	PlayerType     string  `json:"playerType"`
	CompletedStage bool    `json:"completedStage"`
	Username       string  `json:"username"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
}

// GameState is the round state as broadcast to clients
type GameState struct {
	StageStarted   bool     `json:"stageStarted"`
	StageCompleted bool     `json:"stageCompleted"`
	Cops           []string `json:"cops"`
	Robbers        []string `json:"robbers"`
}

// StateMessage is the full world snapshot broadcast every tick
type StateMessage struct {
	Type      string                 `json:"type"`
	Players   map[string]PlayerState `json:"players"`
	GameState GameState              `json:"gameState"`
}

// PlayerStateFromModel converts a player record to its wire form
func PlayerStateFromModel(p model.Player) PlayerState {
	return PlayerState{
		PlayerID:       string(p.ID),
		PlayerType:     string(p.Role),
		CompletedStage: p.CompletedStage,
		Username:       p.Username,
		X:              p.X,
		Y:              p.Y,
	}
}

// GameStateFromModel converts the round state to its wire form.
// Cops and robbers always marshal as arrays, never null.
func GameStateFromModel(phase model.GamePhase) GameState {
	cops := make([]string, len(phase.Cops))
	for i, id := range phase.Cops {
		cops[i] = string(id)
	}
	robbers := make([]string, len(phase.Robbers))
	for i, id := range phase.Robbers {
		robbers[i] = string(id)
	}
	return GameState{
		StageStarted:   phase.Started,
		StageCompleted: phase.Completed,
		Cops:           cops,
		Robbers:        robbers,
	}
}

// NewStateMessage builds the tick broadcast from registry and phase snapshots
func NewStateMessage(players []model.Player, phase model.GamePhase) StateMessage {
	states := make(map[string]PlayerState, len(players))
	for _, p := range players {
		states[string(p.ID)] = PlayerStateFromModel(p)
	}
	return StateMessage{
		Type:      TypeState,
		Players:   states,
		GameState: GameStateFromModel(phase),
	}
}

// EncodeStateMessage marshals the broadcast into a single text frame
func EncodeStateMessage(players []model.Player, phase model.GamePhase) ([]byte, error) {
	return json.Marshal(NewStateMessage(players, phase))
}
