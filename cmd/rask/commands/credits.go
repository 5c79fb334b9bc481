package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) creditsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "credits",
		Short: "Show remaining credits",
		Long: `Show the total and used minutes, videos and free lipsync minutes.

Examples:
  rask credits
  rask credits --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			credits, err := a.client.GetCredits(cmd.Context())
			if err != nil {
				return fmt.Errorf("get credits failed: %w", err)
			}
			return a.outputResult(cmd, credits)
		},
	}
}
