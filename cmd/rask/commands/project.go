package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MimeLyc/rask-sdk-go/internal/watch"
	"github.com/MimeLyc/rask-sdk-go/pkg/rask"
)

func (a *app) projectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Dubbing projects",
		Long: `Dubbing projects.

Create projects for uploaded videos, start generation, assign voices and
follow their progress.`,
	}

	cmd.AddCommand(
		a.projectCreateCommand(),
		a.projectGetCommand(),
		a.projectListCommand(),
		a.projectGenerateCommand(),
		a.projectPatchCommand(),
		a.projectVoicesCommand(),
		a.projectWatchCommand(),
	)
	return cmd
}

func (a *app) projectCreateCommand() *cobra.Command {
	var (
		videoID, name, srcLang, dstLang string
		transcriptID, glossaryID        string
		numSpeakers                     int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Long: `Create a dubbing project for an uploaded video.

The request is read from -f, or built from flags.

Example request file (project.yaml):
  video_id: 3b241101-e2bb-4255-8caf-4136c566a962
  name: Keynote
  dst_lang: de
  num_speakers: 2

Examples:
  rask project create -f project.yaml
  rask project create --video-id <media-id> --dst-lang de`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req rask.ProjectCreate
			if a.inputFile != "" {
				if err := a.loadRequest(&req); err != nil {
					return err
				}
			} else {
				if videoID != "" {
					id, err := parseID("video id", videoID)
					if err != nil {
						return err
					}
					req.VideoID = id
				}
				req.Name, req.SrcLang, req.DstLang = name, srcLang, dstLang
				if numSpeakers > 0 {
					req.NumSpeakers = &numSpeakers
				}
				if transcriptID != "" {
					id, err := parseID("transcript id", transcriptID)
					if err != nil {
						return err
					}
					req.TranscriptID = &id
				}
				if glossaryID != "" {
					id, err := parseID("glossary id", glossaryID)
					if err != nil {
						return err
					}
					req.GlossaryID = &id
				}
			}

			project, err := a.client.CreateProject(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("create project failed: %w", err)
			}
			return a.outputResult(cmd, project)
		},
	}

	cmd.Flags().StringVar(&videoID, "video-id", "", "id of the uploaded video")
	cmd.Flags().StringVar(&name, "name", "", "project name")
	cmd.Flags().StringVar(&srcLang, "src-lang", "", "source language (default: detected)")
	cmd.Flags().StringVar(&dstLang, "dst-lang", "", "destination language")
	cmd.Flags().IntVar(&numSpeakers, "num-speakers", 0, "number of speakers (default: detected)")
	cmd.Flags().StringVar(&transcriptID, "transcript-id", "", "use an existing transcription")
	cmd.Flags().StringVar(&glossaryID, "glossary-id", "", "glossary to translate with")
	return cmd
}

func (a *app) projectGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <project_id>",
		Short: "Get a project",
		Args:  idArgs("project id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := a.client.GetProject(cmd.Context(), mustID(args[0]))
			if err != nil {
				return fmt.Errorf("get project failed: %w", err)
			}
			return a.outputResult(cmd, project)
		},
	}
}

func (a *app) projectListCommand() *cobra.Command {
	var query rask.ProjectListQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long: `List projects, newest first.

Examples:
  rask project list --limit 20
  rask project list --name keynote --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.client.ListProjects(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("list projects failed: %w", err)
			}
			return a.outputResult(cmd, list)
		},
	}

	cmd.Flags().IntVar(&query.Offset, "offset", 0, "number of projects to skip")
	cmd.Flags().IntVar(&query.Limit, "limit", 10, "maximum number of projects")
	cmd.Flags().StringVar(&query.Name, "name", "", "filter by name")
	return cmd
}

func (a *app) projectGenerateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "generate <project_id>",
		Short: "Start generating the dubbed video",
		Args:  idArgs("project id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := a.client.GenerateProject(cmd.Context(), mustID(args[0]))
			if err != nil {
				return fmt.Errorf("generate project failed: %w", err)
			}
			return a.outputResult(cmd, project)
		},
	}
}

func (a *app) projectPatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "patch <project_id>",
		Short: "Update a project",
		Long: `Rename a project, change its speaker count or assign voices.

Example request file (patch.yaml):
  voice:
    SPEAKER_00: 0b1f6e0e-8f4c-4d84-9b0b-3f1c9f3f9a10
    SPEAKER_01: 5d9c2a1e-7a3b-4c5d-8e9f-0a1b2c3d4e5f

Examples:
  rask project patch <project-id> -f patch.yaml`,
		Args: idArgs("project id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req rask.ProjectPatch
			if err := a.loadRequest(&req); err != nil {
				return err
			}

			project, err := a.client.PatchProject(cmd.Context(), mustID(args[0]), req)
			if err != nil {
				return fmt.Errorf("patch project failed: %w", err)
			}
			return a.outputResult(cmd, project)
		},
	}
}

func (a *app) projectVoicesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "voices <project_id>",
		Short: "List voices available for a project",
		Args:  idArgs("project id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			voices, err := a.client.GetProjectVoices(cmd.Context(), mustID(args[0]))
			if err != nil {
				return fmt.Errorf("get voices failed: %w", err)
			}
			return a.outputResult(cmd, voices)
		},
	}
}

func (a *app) projectWatchCommand() *cobra.Command {
	var schedule string

	cmd := &cobra.Command{
		Use:   "watch <project_id>",
		Short: "Wait until a project finishes",
		Long: `Poll a project until it is done or has failed, logging each status
change. The schedule defaults to RASK_WATCH_SCHEDULE.

Examples:
  rask project watch <project-id>
  rask project watch <project-id> --schedule "@every 1m"`,
		Args: idArgs("project id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if schedule == "" {
				schedule = a.cfg.Watch.Schedule
			}

			w, err := watch.New(a.client, schedule, watch.WithLogger(a.logger))
			if err != nil {
				return err
			}

			project, err := w.Watch(cmd.Context(), mustID(args[0]))
			if err != nil && !errors.Is(err, watch.ErrProjectFailed) {
				return fmt.Errorf("watch project failed: %w", err)
			}
			if outErr := a.outputResult(cmd, project); outErr != nil {
				return outErr
			}
			return err
		},
	}

	cmd.Flags().StringVar(&schedule, "schedule", "", "cron schedule for polling")
	return cmd
}
