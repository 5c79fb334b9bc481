package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MimeLyc/rask-sdk-go/pkg/rask"
)

func (a *app) lipsyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lipsync",
		Short: "Lipsync tasks",
		Long: `Lipsync tasks.

Check a project's video for faces, then run lipsync on the dubbed video.`,
	}

	checkFaceCmd := &cobra.Command{
		Use:   "check-face <project_id>",
		Short: "Check the video for faces",
		Args:  idArgs("project id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := a.client.RunCheckFaceTask(cmd.Context(), mustID(args[0]))
			if err != nil {
				return fmt.Errorf("check face failed: %w", err)
			}
			return a.outputResult(cmd, task)
		},
	}

	var multipleSpeakers, free bool
	runCmd := &cobra.Command{
		Use:   "run <project_id>",
		Short: "Run lipsync",
		Long: `Queue a lipsync run for a project.

Examples:
  rask lipsync run <project-id> --multiple-speakers
  rask lipsync run <project-id> -f lipsync.yaml`,
		Args: idArgs("project id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req rask.LipsyncTaskData
			if a.inputFile != "" {
				if err := a.loadRequest(&req); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("multiple-speakers") {
				req.IsMultipleSpeakers = &multipleSpeakers
			}
			if cmd.Flags().Changed("free") {
				req.IsFreeLipsync = &free
			}

			task, err := a.client.RunLipsyncTask(cmd.Context(), mustID(args[0]), req)
			if err != nil {
				return fmt.Errorf("run lipsync failed: %w", err)
			}
			return a.outputResult(cmd, task)
		},
	}
	runCmd.Flags().BoolVar(&multipleSpeakers, "multiple-speakers", false, "the video has several speakers on screen")
	runCmd.Flags().BoolVar(&free, "free", false, "use free lipsync minutes")

	infoCmd := &cobra.Command{
		Use:   "info <project_id>",
		Short: "Show lipsync state",
		Args:  idArgs("project id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.client.GetLipsyncInfo(cmd.Context(), mustID(args[0]))
			if err != nil {
				return fmt.Errorf("get lipsync info failed: %w", err)
			}
			return a.outputResult(cmd, info)
		},
	}

	cmd.AddCommand(checkFaceCmd, runCmd, infoCmd)
	return cmd
}
