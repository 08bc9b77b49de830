package registry

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mkoss/manhunt/internal/dependencies/mocks"
	"github.com/mkoss/manhunt/internal/model"
	"github.com/mkoss/manhunt/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.clock, testutil.NopLogger())
}

// Create tests

func (s *ServiceSuite) TestCreateHasConnectionDefaults() {
	player, err := s.service.Create("p1")
	s.Require().NoError(err)

	s.Equal(model.PlayerID("p1"), player.ID)
	s.Equal(model.DefaultUsername, player.Username)
	s.Equal(model.RoleUnassigned, player.Role)
	s.False(player.CompletedStage)
	s.Zero(player.X)
	s.Zero(player.Y)
	s.Equal(s.clock.Now(), player.JoinedAt)
}

func (s *ServiceSuite) TestCreateDuplicateFails() {
	_, err := s.service.Create("p1")
	s.Require().NoError(err)

	_, err = s.service.Create("p1")
	s.ErrorIs(err, model.ErrDuplicatePlayer)
	s.Equal(1, s.service.Count())
}

// Remove tests

func (s *ServiceSuite) TestRemoveDeletesRecord() {
	_, _ = s.service.Create("p1")
	s.service.Remove("p1")

	_, err := s.service.Get("p1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
	s.Equal(0, s.service.Count())
}

func (s *ServiceSuite) TestRemoveIsIdempotent() {
	_, _ = s.service.Create("p1")
	_, _ = s.service.Create("p2")

	s.service.Remove("p1")
	s.service.Remove("p1")

	s.Equal(1, s.service.Count())
	s.Equal([]model.PlayerID{"p2"}, s.service.OrderedIDs())
}

func (s *ServiceSuite) TestRemoveUnknownIsNoOp() {
	s.NotPanics(func() { s.service.Remove("nope") })
}

// Mutation tests

func (s *ServiceSuite) TestMoveByAccumulates() {
	_, _ = s.service.Create("p1")

	s.Require().NoError(s.service.MoveBy("p1", 50, 100))
	s.Require().NoError(s.service.MoveBy("p1", -10, 5))

	player, err := s.service.Get("p1")
	s.Require().NoError(err)
	s.Equal(40.0, player.X)
	s.Equal(105.0, player.Y)
}

func (s *ServiceSuite) TestMutatorsOnUnknownPlayerFail() {
	s.ErrorIs(s.service.MoveBy("nope", 1, 1), model.ErrPlayerNotFound)
	s.ErrorIs(s.service.SetCompletedStage("nope", true), model.ErrPlayerNotFound)
	s.ErrorIs(s.service.SetUsername("nope", "x"), model.ErrPlayerNotFound)
	s.ErrorIs(s.service.SetRole("nope", model.RoleCop), model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestSetCompletedStageAndReset() {
	_, _ = s.service.Create("p1")
	_, _ = s.service.Create("p2")

	s.Require().NoError(s.service.SetCompletedStage("p1", true))
	player, _ := s.service.Get("p1")
	s.True(player.CompletedStage)

	s.service.ResetCompletedStages()
	player, _ = s.service.Get("p1")
	s.False(player.CompletedStage)
}

func (s *ServiceSuite) TestSetUsername() {
	_, _ = s.service.Create("p1")
	s.Require().NoError(s.service.SetUsername("p1", "alice"))

	player, _ := s.service.Get("p1")
	s.Equal("alice", player.Username)
}

// Snapshot tests

func (s *ServiceSuite) TestSnapshotIsJoinOrdered() {
	for _, id := range []model.PlayerID{"c", "a", "b"} {
		_, _ = s.service.Create(id)
	}

	snapshot := s.service.Snapshot()
	s.Require().Len(snapshot, 3)
	s.Equal(model.PlayerID("c"), snapshot[0].ID)
	s.Equal(model.PlayerID("a"), snapshot[1].ID)
	s.Equal(model.PlayerID("b"), snapshot[2].ID)
}

func (s *ServiceSuite) TestSnapshotIsACopy() {
	_, _ = s.service.Create("p1")

	snapshot := s.service.Snapshot()
	snapshot[0].X = 999

	player, _ := s.service.Get("p1")
	s.Zero(player.X)
}

// Concurrency tests

func (s *ServiceSuite) TestConcurrentCreatesAreAllRegistered() {
	const n = 64

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.service.Create(model.PlayerID(fmt.Sprintf("p%d", i)))
			s.NoError(err)
		}(i)
	}
	wg.Wait()

	s.Equal(n, s.service.Count())
	s.Len(s.service.OrderedIDs(), n)
}

func (s *ServiceSuite) TestSnapshotUnderConcurrentMutation() {
	const n = 16
	for i := 0; i < n; i++ {
		_, _ = s.service.Create(model.PlayerID(fmt.Sprintf("p%d", i)))
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id model.PlayerID) {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					// Each writer moves in lockstep on both axes so a
					// torn record would be observable below
					_ = s.service.MoveBy(id, 1, 1)
				}
			}
		}(model.PlayerID(fmt.Sprintf("p%d", i)))
	}

	for i := 0; i < 100; i++ {
		for _, player := range s.service.Snapshot() {
			s.Equal(player.X, player.Y, "snapshot exposed a torn record")
		}
	}

	close(stop)
	wg.Wait()
}
