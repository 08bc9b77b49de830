package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := client.GetRaw("/healthz")
			if err != nil {
				return err
			}
			fmt.Println(body)
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show live server state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var status map[string]any
			if err := client.Get("/api/v1/status", &status); err != nil {
				return err
			}
			if cfg.Output == "json" {
				return printJSON(status)
			}
			fmt.Printf("players:        %v\n", status["players"])
			fmt.Printf("clients:        %v\n", status["clients"])
			fmt.Printf("stage started:  %v\n", status["stage_started"])
			fmt.Printf("stage complete: %v\n", status["stage_completed"])
			fmt.Printf("tick interval:  %vms\n", status["tick_interval_ms"])
			return nil
		},
	}
}
