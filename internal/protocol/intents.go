package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Client-to-server message type tags
const (
	TypeMove           = "move"
	TypeStageCompleted = "stageCompleted"
	TypeStartGame      = "startGame"
	TypeSetUsername    = "setUsername"
)

var (
	// ErrMalformedFrame indicates a frame that is not a JSON object or is
	// missing a required field. The connection stays open.
	ErrMalformedFrame = errors.New("malformed frame")
	// ErrUnknownType indicates a frame whose type tag is not part of the
	// protocol. The frame is ignored and the connection stays open.
	ErrUnknownType = errors.New("unknown message type")
)

// Intent is a decoded client request. The set of implementations is
// closed: every inbound frame maps to exactly one of the variants below
// or to a decode error.
type Intent interface {
	isIntent()
}

// MoveIntent requests a position change, expressed as per-message deltas
// that the server scales by its speed multiplier
type MoveIntent struct {
	DX float64
	DY float64
}

// StageCompletedIntent reports whether the player has reached the stage exit
type StageCompletedIntent struct {
	Completed bool
}

// StartGameIntent requests that a new round start
type StartGameIntent struct{}

// SetUsernameIntent sets the player's display name
type SetUsernameIntent struct {
	Username string
}

func (MoveIntent) isIntent()           {}
func (StageCompletedIntent) isIntent() {}
func (StartGameIntent) isIntent()      {}
func (SetUsernameIntent) isIntent()    {}

// envelope is the superset of all inbound frame fields. Pointers
// distinguish absent fields from zero values.
type envelope struct {
	Type           string   `json:"type"`
	DX             *float64 `json:"dx"`
	DY             *float64 `json:"dy"`
	StageCompleted *bool    `json:"stageCompleted"`
	Username       *string  `json:"username"`
}

// DecodeIntent maps one inbound text frame to its intent variant.
// Invalid JSON and missing required fields return ErrMalformedFrame;
// an unrecognized type tag returns ErrUnknownType.
func DecodeIntent(data []byte) (Intent, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}

	switch env.Type {
	case TypeMove:
		if env.DX == nil || env.DY == nil {
			return nil, fmt.Errorf("%w: move requires dx and dy", ErrMalformedFrame)
		}
		return MoveIntent{DX: *env.DX, DY: *env.DY}, nil

	case TypeStageCompleted:
		if env.StageCompleted == nil {
			return nil, fmt.Errorf("%w: stageCompleted requires stageCompleted", ErrMalformedFrame)
		}
		return StageCompletedIntent{Completed: *env.StageCompleted}, nil

	case TypeStartGame:
		return StartGameIntent{}, nil

	case TypeSetUsername:
		if env.Username == nil {
			return nil, fmt.Errorf("%w: setUsername requires username", ErrMalformedFrame)
		}
		return SetUsernameIntent{Username: *env.Username}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}
}
