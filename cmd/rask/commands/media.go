package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MimeLyc/rask-sdk-go/pkg/rask"
)

func (a *app) mediaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Media library",
		Long: `Media library.

Upload local files or register links, and inspect uploaded media.`,
	}

	var kind, name string

	uploadCmd := &cobra.Command{
		Use:   "upload <file_path>",
		Short: "Upload a media file",
		Long: `Upload a local video, audio or image file.

Examples:
  rask media upload talk.mp4
  rask media upload cover.png --kind image --name "Cover"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("cannot open file: %w", err)
			}
			defer file.Close()

			if info, err := file.Stat(); err == nil {
				a.logger.Debug("File: %s (%d bytes)", args[0], info.Size())
			}

			media, err := a.client.CreateMediaFile(cmd.Context(), rask.MediaUpload{
				File: file,
				Name: name,
				Kind: rask.MediaKind(kind),
			})
			if err != nil {
				return fmt.Errorf("upload failed: %w", err)
			}
			return a.outputResult(cmd, media)
		},
	}
	uploadCmd.Flags().StringVar(&kind, "kind", "", "media kind: video, audio or image (default: detected)")
	uploadCmd.Flags().StringVar(&name, "name", "", "media name (default: file name)")

	linkCmd := &cobra.Command{
		Use:   "link <url>",
		Short: "Create media from a link",
		Long: `Create media from a public link.

Examples:
  rask media link https://example.com/talk.mp4 --kind video`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			media, err := a.client.CreateMediaLink(cmd.Context(), rask.MediaCreateLink{
				Link: args[0],
				Kind: rask.MediaKind(kind),
				Name: name,
			})
			if err != nil {
				return fmt.Errorf("create media link failed: %w", err)
			}
			return a.outputResult(cmd, media)
		},
	}
	linkCmd.Flags().StringVar(&kind, "kind", "", "media kind: video, audio or image")
	linkCmd.Flags().StringVar(&name, "name", "", "media name")

	getCmd := &cobra.Command{
		Use:   "get <media_id>",
		Short: "Get media details",
		Args:  idArgs("media id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			media, err := a.client.GetMedia(cmd.Context(), mustID(args[0]))
			if err != nil {
				return fmt.Errorf("get media failed: %w", err)
			}
			return a.outputResult(cmd, media)
		},
	}

	cmd.AddCommand(uploadCmd, linkCmd, getCmd)
	return cmd
}
