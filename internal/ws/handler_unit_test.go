package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoss/manhunt/internal/dependencies/mocks"
	"github.com/mkoss/manhunt/internal/model"
	"github.com/mkoss/manhunt/internal/services/registry"
	"github.com/mkoss/manhunt/internal/testutil"
)

func TestCreatePlayerRetriesOnCollision(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	rnd := mocks.NewMockRandom()
	reg := registry.New(clk, testutil.NopLogger())

	_, err := reg.Create("taken")
	require.NoError(t, err)

	rnd.QueueString("taken", "taken", "fresh")

	cfg := HandlerConfig{
		Registry: reg,
		Random:   rnd,
	}
	id, player := createPlayer(cfg)

	assert.Equal(t, model.PlayerID("fresh"), id)
	assert.Equal(t, model.PlayerID("fresh"), player.ID)
	assert.Equal(t, model.DefaultUsername, player.Username)
	assert.Equal(t, 2, reg.Count())
}
