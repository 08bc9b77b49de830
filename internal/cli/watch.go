package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Join as a spectating player and print state broadcasts",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := client.Dial()
			if err != nil {
				return err
			}
			defer session.Close()

			fmt.Printf("connected as %s\n", session.ID)

			for i := 0; i < count; i++ {
				state, err := session.ReadState(10 * time.Second)
				if err != nil {
					return err
				}
				if cfg.Output == "json" {
					if err := printJSON(state); err != nil {
						return err
					}
					continue
				}
				fmt.Printf("tick %d: %d players, stageStarted=%v cops=%v robbers=%v\n",
					i+1, len(state.Players),
					state.GameState.StageStarted,
					state.GameState.Cops,
					state.GameState.Robbers)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 10, "Number of state broadcasts to print")
	return cmd
}
