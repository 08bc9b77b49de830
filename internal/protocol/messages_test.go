package protocol

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoss/manhunt/internal/model"
)

func TestInitMessageWireShape(t *testing.T) {
	data, err := json.Marshal(NewInitMessage("abc123"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"init","id":"abc123"}`, string(data))
}

func TestStateMessageWireShape(t *testing.T) {
	p1 := model.NewPlayer("p1", time.Now())
	p1.Username = "alice"
	p1.Role = model.RoleCop
	p1.X = 12.5
	p1.Y = -3

	p2 := model.NewPlayer("p2", time.Now())
	p2.Role = model.RoleRobber
	p2.CompletedStage = true

	phase := model.GamePhase{
		Started: true,
		Cops:    []model.PlayerID{"p1"},
		Robbers: []model.PlayerID{"p2"},
	}

	data, err := EncodeStateMessage([]model.Player{*p1, *p2}, phase)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"type": "state",
		"players": {
			"p1": {"playerId":"p1","playerType":"COP","completedStage":false,"username":"alice","x":12.5,"y":-3},
			"p2": {"playerId":"p2","playerType":"ROBBER","completedStage":true,"username":"Anonymous","x":0,"y":0}
		},
		"gameState": {"stageStarted":true,"stageCompleted":false,"cops":["p1"],"robbers":["p2"]}
	}`, string(data))
}

func TestGameStateRolesNeverNull(t *testing.T) {
	data, err := json.Marshal(GameStateFromModel(model.GamePhase{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"stageStarted":false,"stageCompleted":false,"cops":[],"robbers":[]}`, string(data))
}

func TestUnassignedRoleSerializesEmpty(t *testing.T) {
	state := PlayerStateFromModel(*model.NewPlayer("p1", time.Now()))
	assert.Equal(t, "", state.PlayerType)
}
