package cli

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"scene-crowdin/internal/crowdin"
	"scene-crowdin/internal/export"
)

func (a *app) crowdinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crowdin",
		Short: "Convert upload files to and from the Crowdin string list",
	}
	cmd.AddCommand(a.crowdinStringsCmd())
	cmd.AddCommand(a.crowdinApplyCmd())
	return cmd
}

func (a *app) crowdinStringsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strings <upload-file>",
		Short: "Print the Crowdin string list of an upload file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			languages, _ := cmd.Flags().GetStringSlice("lang")
			if !cmd.Flags().Changed("lang") {
				languages = []string{a.cfg.SourceLang, a.cfg.ReferenceLang, a.cfg.TargetLang}
			}
			out, _ := cmd.Flags().GetString("output")

			f, err := crowdin.LoadFile(args[0])
			if err != nil {
				return err
			}
			list, err := crowdin.BuildStrings(f, languages)
			if err != nil {
				return err
			}
			log.Info().Str("file", args[0]).Int("strings", len(list)).Msg("Built string list")
			return output(cmd, out, export.FormatJSON, list)
		},
	}

	cmd.Flags().StringSlice("lang", crowdin.DefaultLanguages, "Languages whose translations are sent")
	cmd.Flags().StringP("output", "o", "", "Output file (default stdout)")

	return cmd
}

func (a *app) crowdinApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <upload-file> <strings-file> <output-file>",
		Short: "Write a translated Crowdin string list back into an upload file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := crowdin.LoadFile(args[0])
			if err != nil {
				return err
			}
			list, err := crowdin.LoadStrings(args[1])
			if err != nil {
				return err
			}

			if err := crowdin.Apply(f, list); err != nil {
				var joined interface{ Unwrap() []error }
				if errors.As(err, &joined) {
					for _, e := range joined.Unwrap() {
						log.Warn().Err(e).Msg("Skipped string")
					}
				} else {
					log.Warn().Err(err).Msg("Skipped strings")
				}
			}

			if err := export.WriteJSON(args[2], f); err != nil {
				return err
			}
			log.Info().Str("output", args[2]).Int("strings", len(list)).Msg("Applied string list")
			return nil
		},
	}
}
