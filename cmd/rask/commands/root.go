package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MimeLyc/rask-sdk-go/internal/config"
	"github.com/MimeLyc/rask-sdk-go/pkg/log"
	"github.com/MimeLyc/rask-sdk-go/pkg/rask"
)

// app holds the global flags and the state shared by all commands.
type app struct {
	envFile    string
	logFile    string
	inputFile  string
	outputFile string
	outputJSON bool
	verbose    bool

	cfg     *config.Config
	client  *rask.Client
	logger  *log.Logger
	closers []io.Closer
}

// NewRootCommand builds the rask command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "rask",
		Short: "Rask API CLI tool",
		Long: `Rask CLI - A command line interface for the Rask dubbing API.

This tool allows you to:
  - Upload media and create dubbing projects
  - Edit transcriptions, or import and export them as SRT
  - Manage glossaries used for translation
  - Run lipsync on translated videos

Credentials are read from RASK_CLIENT_ID and RASK_CLIENT_SECRET.

Examples:
  # Upload a video and create a project
  rask media upload talk.mp4 --kind video
  rask project create --video-id <media-id> --dst-lang de

  # Wait for the project to finish
  rask project watch <project-id>

  # Pipe output to another command
  rask project list --json | jq '.projects[].status'
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	// Global persistent flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", ".env", ".env file to load before reading the environment")
	flags.StringVar(&a.logFile, "log-file", "", "write logs to this file instead of stderr")
	flags.StringVarP(&a.inputFile, "file", "f", "", "input request file (YAML or JSON)")
	flags.StringVarP(&a.outputFile, "output", "o", "", "output file (default: stdout)")
	flags.BoolVar(&a.outputJSON, "json", false, "output as JSON (for piping)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(a.creditsCommand())
	rootCmd.AddCommand(a.mediaCommand())
	rootCmd.AddCommand(a.projectCommand())
	rootCmd.AddCommand(a.lipsyncCommand())
	rootCmd.AddCommand(a.transcriptionCommand())
	rootCmd.AddCommand(a.glossaryCommand())

	return rootCmd
}

func (a *app) init() error {
	opts := []config.Option{config.WithDotEnv(a.envFile)}
	if a.verbose {
		opts = append(opts, config.WithLogLevel(log.LevelDebug))
	}

	cfg, err := config.NewFromEnv(opts...)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	a.cfg = cfg

	a.logger = log.NewLogger(cfg.Log.Level)
	if a.logFile != "" {
		fileLogger, err := log.NewFileLogger(a.logFile, cfg.Log.Level)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, fileLogger)
		a.logger = fileLogger.Logger
	}
	log.SetLogger(a.logger)

	client, err := rask.NewClient(cfg.Client(), rask.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.client = client
	return nil
}

func (a *app) close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
	a.closers = nil
}
