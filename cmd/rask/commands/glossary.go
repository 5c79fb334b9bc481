package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MimeLyc/rask-sdk-go/internal/glossary"
	"github.com/MimeLyc/rask-sdk-go/pkg/rask"
)

func (a *app) glossaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glossary",
		Short: "Glossaries",
		Long: `Glossaries.

A glossary maps source words to the words the translation must use. Words
may not be empty, contain tabs or newlines, or start or end with whitespace.

Local glossary files are JSON objects named glossary.<src>-<dst>.json.`,
	}

	cmd.AddCommand(
		a.glossaryCreateCommand(),
		a.glossaryGetCommand(),
		a.glossaryUpdateCommand(),
		a.glossaryDeleteCommand(),
	)
	return cmd
}

func (a *app) glossaryCreateCommand() *cobra.Command {
	var fromFile, name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a glossary",
		Long: `Create a glossary from a request file, or from a local glossary file
whose name gives the language pair.

Example request file (glossary.yaml):
  name: Product terms
  src_lang: en
  dst_lang: de
  entries:
    checkout: Kasse
    cart: Warenkorb

Examples:
  rask glossary create -f glossary.yaml
  rask glossary create --from glossary.en-de.json --name "Product terms"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req rask.GlossaryCreate
			if fromFile != "" {
				var err error
				if req, err = glossary.LoadCreate(fromFile, name); err != nil {
					return err
				}
			} else if err := a.loadRequest(&req); err != nil {
				return err
			}

			g, err := a.client.CreateGlossary(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("create glossary failed: %w", err)
			}
			return a.outputResult(cmd, g)
		},
	}

	cmd.Flags().StringVar(&fromFile, "from", "", "local glossary.<src>-<dst>.json file")
	cmd.Flags().StringVar(&name, "name", "", "glossary name, used with --from")
	return cmd
}

func (a *app) glossaryGetCommand() *cobra.Command {
	var saveDir string

	cmd := &cobra.Command{
		Use:   "get <glossary_id>",
		Short: "Get a glossary",
		Long: `Get a glossary. With --save the entries are also written to a local
glossary file in the given directory.

Examples:
  rask glossary get <glossary-id> --save .`,
		Args: idArgs("glossary id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.client.GetGlossary(cmd.Context(), mustID(args[0]))
			if err != nil {
				return fmt.Errorf("get glossary failed: %w", err)
			}

			if saveDir != "" {
				path := glossary.FilePath(saveDir, g.SrcLang, g.DstLang)
				if err := glossary.Save(path, g.Entries); err != nil {
					return fmt.Errorf("save glossary: %w", err)
				}
				a.logger.Info("Saved glossary %s to %s", g.ID, path)
			}
			return a.outputResult(cmd, g)
		},
	}

	cmd.Flags().StringVar(&saveDir, "save", "", "directory to save the entries to")
	return cmd
}

func (a *app) glossaryUpdateCommand() *cobra.Command {
	var fromFile, name string

	cmd := &cobra.Command{
		Use:   "update <glossary_id>",
		Short: "Update a glossary",
		Long: `Rename a glossary and replace its entries. Without entries only the
name changes.

Examples:
  rask glossary update <glossary-id> -f glossary.yaml
  rask glossary update <glossary-id> --name "Product terms" --from glossary.en-de.json`,
		Args: idArgs("glossary id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req rask.GlossaryUpdate
			if a.inputFile != "" {
				if err := a.loadRequest(&req); err != nil {
					return err
				}
			}
			if name != "" {
				req.Name = name
			}
			if fromFile != "" {
				entries, err := glossary.Load(fromFile)
				if err != nil {
					return err
				}
				req.Entries = entries
			}

			g, err := a.client.UpdateGlossary(cmd.Context(), mustID(args[0]), req)
			if err != nil {
				return fmt.Errorf("update glossary failed: %w", err)
			}
			return a.outputResult(cmd, g)
		},
	}

	cmd.Flags().StringVar(&fromFile, "from", "", "replace entries with a local glossary file")
	cmd.Flags().StringVar(&name, "name", "", "new glossary name")
	return cmd
}

func (a *app) glossaryDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <glossary_id>",
		Short: "Delete a glossary",
		Args:  idArgs("glossary id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := a.client.DeleteGlossary(cmd.Context(), mustID(args[0]))
			if err != nil {
				return fmt.Errorf("delete glossary failed: %w", err)
			}
			return a.outputResult(cmd, deleted)
		},
	}
}
