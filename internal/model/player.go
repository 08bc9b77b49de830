package model

import "time"

// PlayerID uniquely identifies a player for the lifetime of its connection
type PlayerID string

// Role is a player's team assignment for the current round
type Role string

const (
	// RoleUnassigned is the role of every player before a round starts
	RoleUnassigned Role = ""
	RoleCop        Role = "COP"
	RoleRobber     Role = "ROBBER"
)

// DefaultUsername is shown for players that never set a username
const DefaultUsername = "Anonymous"

// Player is the authoritative record for one connected client.
// Position and flags are mutated only by that client's own intents;
// the role is assigned by the phase controller at round start.
type Player struct {
	ID             PlayerID
	Username       string
	Role           Role
	CompletedStage bool
	X              float64
	Y              float64
	JoinedAt       time.Time
}

// NewPlayer returns a player record with connection-time defaults
func NewPlayer(id PlayerID, joinedAt time.Time) *Player {
	return &Player{
		ID:       id,
		Username: DefaultUsername,
		Role:     RoleUnassigned,
		JoinedAt: joinedAt,
	}
}
