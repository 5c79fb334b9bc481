package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MimeLyc/rask-sdk-go/internal/srt"
	"github.com/MimeLyc/rask-sdk-go/pkg/rask"
)

func (a *app) transcriptionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcription",
		Short: "Transcriptions and segments",
		Long: `Transcriptions and segments.

Create transcriptions from request files or SRT subtitles, edit the segments
of a project's transcription and export it as SRT.

Timestamps use the HH:MM:SS,ffffff format, e.g. 00:01:02,500000.
Speakers are named SPEAKER_<n>; either all segments of a transcription name
a speaker or none does.`,
	}

	cmd.AddCommand(
		a.transcriptionCreateCommand(),
		a.transcriptionUploadSRTCommand(),
		a.transcriptionGetCommand(),
		a.transcriptionExportCommand(),
		a.transcriptionAddSegmentsCommand(),
		a.transcriptionPatchSegmentsCommand(),
		a.transcriptionDeleteSegmentCommand(),
	)
	return cmd
}

func parseSide(s string) (srt.Side, error) {
	switch s {
	case "src", "":
		return srt.Source, nil
	case "dst":
		return srt.Destination, nil
	default:
		return srt.Source, fmt.Errorf("invalid side %q, use src or dst", s)
	}
}

func (a *app) transcriptionCreateCommand() *cobra.Command {
	var fromSRT, lang, side string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a transcription",
		Long: `Create a transcription from a request file, or convert a local SRT file
into segments before sending it.

Example request file (transcription.yaml):
  segments:
    - start: "00:00:01,000000"
      end: "00:00:03,500000"
      speaker: SPEAKER_00
      src: {text: "Hello and welcome.", lang: en}

Examples:
  rask transcription create -f transcription.yaml
  rask transcription create --srt talk.srt --side src`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req rask.TranscriptionCreate
			if fromSRT != "" {
				s, err := parseSide(side)
				if err != nil {
					return err
				}
				file, err := srt.ReadFile(fromSRT)
				if err != nil {
					return err
				}
				a.logger.Debug("Read %d cues from %s (language %s)", len(file.Cues), fromSRT, file.Language)
				if req.Segments, err = srt.Segments(file, s, lang); err != nil {
					return err
				}
			} else if err := a.loadRequest(&req); err != nil {
				return err
			}

			created, err := a.client.CreateTranscription(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("create transcription failed: %w", err)
			}
			return a.outputResult(cmd, created)
		},
	}

	cmd.Flags().StringVar(&fromSRT, "srt", "", "convert a local SRT file into segments")
	cmd.Flags().StringVar(&lang, "lang", "", "language of the SRT text (default: detected)")
	cmd.Flags().StringVar(&side, "side", "src", "segment side the SRT text fills: src or dst")
	return cmd
}

func (a *app) transcriptionUploadSRTCommand() *cobra.Command {
	var srcPath, srcLang, dstPath, dstLang string

	cmd := &cobra.Command{
		Use:   "upload-srt",
		Short: "Create a transcription from SRT files",
		Long: `Upload source and/or destination SRT files and let the server build the
transcription.

Examples:
  rask transcription upload-srt --src talk.en.srt --src-lang en
  rask transcription upload-srt --src talk.en.srt --dst talk.de.srt --dst-lang de`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			upload := rask.SRTUpload{SrcLang: srcLang, DstLang: dstLang}

			if srcPath != "" {
				f, err := os.Open(srcPath)
				if err != nil {
					return fmt.Errorf("cannot open file: %w", err)
				}
				defer f.Close()
				upload.Src = f
			}
			if dstPath != "" {
				f, err := os.Open(dstPath)
				if err != nil {
					return fmt.Errorf("cannot open file: %w", err)
				}
				defer f.Close()
				upload.Dst = f
			}

			created, err := a.client.CreateTranscriptionSRT(cmd.Context(), upload)
			if err != nil {
				return fmt.Errorf("upload SRT failed: %w", err)
			}
			return a.outputResult(cmd, created)
		},
	}

	cmd.Flags().StringVar(&srcPath, "src", "", "source language SRT file")
	cmd.Flags().StringVar(&srcLang, "src-lang", "", "source language")
	cmd.Flags().StringVar(&dstPath, "dst", "", "destination language SRT file")
	cmd.Flags().StringVar(&dstLang, "dst-lang", "", "destination language")
	return cmd
}

func (a *app) transcriptionGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <project_id>",
		Short: "Get a project's transcription",
		Args:  idArgs("project id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := a.client.GetProjectTranscription(cmd.Context(), mustID(args[0]))
			if err != nil {
				return fmt.Errorf("get transcription failed: %w", err)
			}
			return a.outputResult(cmd, tr)
		},
	}
}

func (a *app) transcriptionExportCommand() *cobra.Command {
	var side string

	cmd := &cobra.Command{
		Use:   "export <project_id>",
		Short: "Export a project's transcription as SRT",
		Long: `Write one side of a project's transcription as SRT to -o or stdout.

Examples:
  rask transcription export <project-id> --side dst -o talk.de.srt`,
		Args: idArgs("project id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := parseSide(side)
			if err != nil {
				return err
			}

			tr, err := a.client.GetProjectTranscription(cmd.Context(), mustID(args[0]))
			if err != nil {
				return fmt.Errorf("get transcription failed: %w", err)
			}

			file, err := srt.FromTranscription(tr, s)
			if err != nil {
				return err
			}
			if a.outputFile != "" {
				return srt.WriteFile(a.outputFile, file)
			}
			return srt.Write(cmd.OutOrStdout(), file)
		},
	}

	cmd.Flags().StringVar(&side, "side", "dst", "segment text to export: src or dst")
	return cmd
}

func (a *app) transcriptionAddSegmentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-segments <project_id>",
		Short: "Add segments to a project's transcription",
		Long: `Add segments to a project's transcription.

Examples:
  rask transcription add-segments <project-id> -f segments.yaml`,
		Args: idArgs("project id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req rask.TranscriptionSegmentsCreate
			if err := a.loadRequest(&req); err != nil {
				return err
			}

			tr, err := a.client.AddProjectTranscriptionSegments(cmd.Context(), mustID(args[0]), req)
			if err != nil {
				return fmt.Errorf("add segments failed: %w", err)
			}
			return a.outputResult(cmd, tr)
		},
	}
}

func (a *app) transcriptionPatchSegmentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "patch-segments <project_id>",
		Short: "Update segments of a project's transcription",
		Long: `Update segments of a project's transcription. Timestamps are changed
only when both start and end are given.

Example request file (patch.yaml):
  segments:
    - id: 6f1d0c3a-2b4e-4f6a-8c9d-0e1f2a3b4c5d
      dst: {text: "Hallo und willkommen.", lang: de}

Examples:
  rask transcription patch-segments <project-id> -f patch.yaml`,
		Args: idArgs("project id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req rask.TranscriptionSegmentsPatch
			if err := a.loadRequest(&req); err != nil {
				return err
			}

			tr, err := a.client.PatchProjectTranscriptionSegments(cmd.Context(), mustID(args[0]), req)
			if err != nil {
				return fmt.Errorf("patch segments failed: %w", err)
			}
			return a.outputResult(cmd, tr)
		},
	}
}

func (a *app) transcriptionDeleteSegmentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-segment <project_id> <segment_id>",
		Short: "Delete a segment",
		Args:  idArgs("project id", "segment id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := a.client.DeleteProjectTranscriptionSegment(cmd.Context(), mustID(args[0]), mustID(args[1]))
			if err != nil {
				return fmt.Errorf("delete segment failed: %w", err)
			}
			return a.outputResult(cmd, deleted)
		},
	}
}
