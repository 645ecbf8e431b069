package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"scene-crowdin/internal/batch"
	"scene-crowdin/internal/export"
	"scene-crowdin/internal/extract"
	"scene-crowdin/internal/filewalker"
	"scene-crowdin/internal/parser"
)

func (a *app) extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <scene-file>",
		Short: "Extract the lines of one scene-script export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.cfg.ExtractOptions()
			if simplified, _ := cmd.Flags().GetBool("simplified"); simplified {
				opts.Simplified = true
			}
			format, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("output")
			return runExtract(cmd, args[0], out, format, opts)
		},
	}

	cmd.Flags().Bool("simplified", false, "Only keep character, text and translations")
	cmd.Flags().String("format", export.FormatJSON, "Output format: json or yaml")
	cmd.Flags().StringP("output", "o", "", "Output file (default stdout)")

	return cmd
}

func runExtract(cmd *cobra.Command, path, out, format string, opts extract.Options) error {
	if err := requireFile(path); err != nil {
		return err
	}
	doc, err := parser.Load(path)
	if err != nil {
		return err
	}
	extracted, err := extract.Extract(doc, opts)
	if err != nil {
		return err
	}
	log.Info().
		Str("file", path).
		Int("scenes", len(extracted.Texts)).
		Int("lines", extracted.Lines()).
		Msg("Extracted scene script")
	return output(cmd, out, format, extracted)
}

func (a *app) mergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <source-file> <reference-file>",
		Short: "Merge the source and reference exports of one scene file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("output")
			return a.runMerge(args[0], args[1], out)
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file (default extracted<id>.json)")

	return cmd
}

func (a *app) runMerge(sourcePath, referencePath, out string) error {
	for _, p := range []string{sourcePath, referencePath} {
		if err := requireFile(p); err != nil {
			return err
		}
	}
	if out == "" {
		name, err := filewalker.DefaultOutputName(sourcePath, referencePath)
		if err != nil {
			return err
		}
		out = name
	}

	p := a.processor("")
	merged, err := p.MergePair(filewalker.FilePair{
		Name:          out,
		SourcePath:    sourcePath,
		ReferencePath: referencePath,
	})
	if err != nil {
		return err
	}
	if err := export.WriteJSON(out, merged); err != nil {
		return err
	}

	log.Info().
		Str("output", out).
		Int("scenes", len(merged.Texts)).
		Int("lines", merged.Lines()).
		Msg("Merged scene files")
	return nil
}

func (a *app) batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <source-dir> <reference-dir> <output-dir>",
		Short: "Merge every scene file pair of two language folders",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.processor(args[2])
			if cmd.Flags().Changed("workers") {
				p.Workers, _ = cmd.Flags().GetInt("workers")
			}
			return runBatch(cmd, p, args[0], args[1])
		},
	}

	cmd.Flags().Int("workers", 1, "Number of file pairs processed at once")

	return cmd
}

func runBatch(cmd *cobra.Command, p *batch.Processor, sourceDir, referenceDir string) error {
	ctx, cancel := setupContext()
	defer cancel()

	if p.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", p.Workers)
	}

	pairs, err := filewalker.Pair(sourceDir, referenceDir)
	if err != nil {
		return err
	}

	results, err := p.Run(ctx, pairs)
	if err != nil {
		return err
	}

	failed := renderSummary(cmd.OutOrStdout(), results)
	if failed > 0 {
		return fmt.Errorf("%d of %d file pairs failed", failed, len(results))
	}
	return nil
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <merged-file>...",
		Short: "Check merged files against the upload schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args)
		},
	}
}

func runValidate(paths []string) error {
	invalid := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err == nil {
			err = export.Validate(data)
		}
		if err != nil {
			invalid++
			log.Error().Err(err).Str("file", path).Msg("Invalid merged file")
			continue
		}
		log.Info().Str("file", path).Msg("Valid")
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d files are invalid", invalid, len(paths))
	}
	return nil
}

func (a *app) processor(outputDir string) *batch.Processor {
	return &batch.Processor{
		OutputDir: outputDir,
		Extract:   a.cfg.ExtractOptions(),
		Merge:     a.cfg.MergeOptions(),
		Workers:   a.cfg.WorkerCount,
	}
}
