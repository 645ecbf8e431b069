// Package batch runs extraction and merge over every file pair of two
// language folders, isolating failures to the pair that caused them.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"scene-crowdin/internal/export"
	"scene-crowdin/internal/extract"
	"scene-crowdin/internal/filewalker"
	"scene-crowdin/internal/merge"
	"scene-crowdin/internal/parser"
	"scene-crowdin/internal/translation"
	"scene-crowdin/internal/worker"
)

// LockName is the advisory lock file created in the output folder.
const LockName = ".scene-crowdin.lock"

// ErrOutputLocked is returned when another run holds the output folder.
var ErrOutputLocked = errors.New("output folder is locked by another run")

// Result describes what happened to one pair.
type Result struct {
	Pair   filewalker.FilePair
	Output string
	Scenes int
	Lines  int
	Err    error
}

// Processor turns file pairs into merged documents in OutputDir.
type Processor struct {
	OutputDir string
	Extract   extract.Options
	Merge     merge.Options
	Workers   int
	// Format is the output encoding, FormatJSON when empty.
	Format string
}

// MergePair loads, extracts and merges one pair without writing anything.
func (p *Processor) MergePair(pair filewalker.FilePair) (*translation.MergedDocument, error) {
	source, err := p.extractSide(pair.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	reference, err := p.extractSide(pair.ReferencePath)
	if err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}
	return merge.Merge(source, reference, p.Merge)
}

// ProcessPair merges one pair and writes it under its Crowdin output name.
func (p *Processor) ProcessPair(ctx context.Context, pair filewalker.FilePair) (Result, error) {
	result := Result{Pair: pair}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	merged, err := p.MergePair(pair)
	if err != nil {
		return result, fmt.Errorf("%s: %w", pair.Name, err)
	}

	primary := pair.SourcePath
	if primary == "" {
		primary = pair.ReferencePath
	}
	result.Output = filepath.Join(p.OutputDir, filewalker.CrowdinOutputName(primary))
	if err := export.Write(result.Output, p.Format, merged); err != nil {
		return result, fmt.Errorf("%s: %w", pair.Name, err)
	}

	result.Scenes = len(merged.Texts)
	result.Lines = merged.Lines()
	zerolog.Ctx(ctx).Info().
		Str("pair", pair.Name).
		Str("output", result.Output).
		Int("scenes", result.Scenes).
		Int("lines", result.Lines).
		Msg("Merged pair")
	return result, nil
}

// Run processes every pair. It only fails as a whole when the output
// folder cannot be locked; per-pair errors are reported in the results.
func (p *Processor) Run(ctx context.Context, pairs []filewalker.FilePair) ([]Result, error) {
	if err := os.MkdirAll(p.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	lock := flock.New(filepath.Join(p.OutputDir, LockName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock output folder: %w", err)
	}
	if !locked {
		return nil, ErrOutputLocked
	}
	defer lock.Unlock()

	logger := log.With().Str("run", uuid.NewString()).Logger()
	ctx = logger.WithContext(ctx)
	logger.Info().Int("pairs", len(pairs)).Str("output", p.OutputDir).Int("workers", p.Workers).Msg("Starting batch")

	pool := worker.NewPool(p.Workers, p.ProcessPair)
	tasks := pool.Execute(ctx, pairs)

	results := make([]Result, len(tasks))
	failed := 0
	for i, task := range tasks {
		results[i] = task.Result
		results[i].Pair = task.Input
		results[i].Err = task.Err
		if task.Err != nil {
			failed++
		}
	}

	logger.Info().Int("pairs", len(pairs)).Int("failed", failed).Msg("Batch complete")
	return results, nil
}

// extractSide returns nil for an absent file.
func (p *Processor) extractSide(path string) (*translation.Document, error) {
	if path == "" {
		return nil, nil
	}
	doc, err := parser.Load(path)
	if err != nil {
		return nil, err
	}
	return extract.Extract(doc, p.Extract)
}
