package model

import "time"

// GamePhase is the process-wide round state. There is exactly one
// instance, owned by the phase controller; copies of it are embedded in
// every broadcast.
type GamePhase struct {
	Started   bool
	Completed bool
	Cops      []PlayerID
	Robbers   []PlayerID
	StartedAt time.Time // zero until the first round starts
}

// MinPlayersToStart is the admission-control gate: a round cannot start
// with fewer registered players than this.
const MinPlayersToStart = 2

// CopCountFor returns how many of the first joiners become cops for a
// round started with playerCount registered players.
func CopCountFor(playerCount int) int {
	if playerCount > 5 {
		return 2
	}
	return 1
}
