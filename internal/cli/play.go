package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkoss/manhunt/internal/protocol"
)

// stateReadTimeout bounds how long play commands wait for the broadcast
// that reflects their intent
const stateReadTimeout = 10 * time.Second

func newMoveCmd() *cobra.Command {
	var dx, dy float64

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Join, send a move intent, and print the resulting position",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := client.Dial()
			if err != nil {
				return err
			}
			defer session.Close()

			err = session.Send(map[string]any{
				"type": protocol.TypeMove,
				"dx":   dx,
				"dy":   dy,
			})
			if err != nil {
				return err
			}

			state, err := session.ReadState(stateReadTimeout)
			if err != nil {
				return err
			}
			me, ok := state.Players[session.ID]
			if !ok {
				return fmt.Errorf("own player %s missing from broadcast", session.ID)
			}
			fmt.Printf("player %s at (%.1f, %.1f)\n", session.ID, me.X, me.Y)
			return nil
		},
	}

	cmd.Flags().Float64Var(&dx, "dx", 0, "X delta")
	cmd.Flags().Float64Var(&dy, "dy", 0, "Y delta")
	return cmd
}

func newCompleteCmd() *cobra.Command {
	var done bool

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Join and report stage completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := client.Dial()
			if err != nil {
				return err
			}
			defer session.Close()

			err = session.Send(map[string]any{
				"type":           protocol.TypeStageCompleted,
				"stageCompleted": done,
			})
			if err != nil {
				return err
			}

			state, err := session.ReadState(stateReadTimeout)
			if err != nil {
				return err
			}
			me := state.Players[session.ID]
			fmt.Printf("player %s completedStage=%v\n", session.ID, me.CompletedStage)
			return nil
		},
	}

	cmd.Flags().BoolVar(&done, "done", true, "Completion flag value")
	return cmd
}

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Join and request a round start",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := client.Dial()
			if err != nil {
				return err
			}
			defer session.Close()

			if err := session.Send(map[string]any{"type": protocol.TypeStartGame}); err != nil {
				return err
			}

			state, err := session.ReadState(stateReadTimeout)
			if err != nil {
				return err
			}
			gs := state.GameState
			if !gs.StageStarted {
				fmt.Println("round not started (needs at least 2 connected players)")
				return nil
			}
			fmt.Printf("round started: cops=%v robbers=%v\n", gs.Cops, gs.Robbers)
			return nil
		},
	}
}

func newUsernameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "username <name>",
		Short: "Join and set a username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := client.Dial()
			if err != nil {
				return err
			}
			defer session.Close()

			err = session.Send(map[string]any{
				"type":     protocol.TypeSetUsername,
				"username": args[0],
			})
			if err != nil {
				return err
			}

			state, err := session.ReadState(stateReadTimeout)
			if err != nil {
				return err
			}
			me := state.Players[session.ID]
			fmt.Printf("player %s username=%q\n", session.ID, me.Username)
			return nil
		},
	}
}
