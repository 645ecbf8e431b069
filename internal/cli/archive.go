package cli

import (
	"fmt"
	"path/filepath"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"scene-crowdin/internal/export"
	"scene-crowdin/internal/filewalker"
	"scene-crowdin/internal/graph"
	"scene-crowdin/internal/parser"
	"scene-crowdin/internal/store"
	"scene-crowdin/internal/translation"
)

func (a *app) archiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <merged-dir>",
		Short: "Store the merged files of a folder in the line archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runArchive(args[0])
		},
	}
}

func (a *app) runArchive(dir string) error {
	ctx, cancel := setupContext()
	defer cancel()

	paths, err := filewalker.ListScenes(dir)
	if err != nil {
		return err
	}

	s, err := store.Open(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.EnsureSchema(ctx); err != nil {
		return err
	}

	total := 0
	for _, path := range paths {
		var doc translation.MergedDocument
		if err := export.ReadJSON(path, &doc); err != nil {
			log.Error().Err(err).Str("file", path).Msg("Skipping unreadable merged file")
			continue
		}
		n, err := s.Upsert(ctx, store.LinesFromMerged(filepath.Base(path), &doc))
		if err != nil {
			return fmt.Errorf("archive %s: %w", path, err)
		}
		total += n
	}

	log.Info().Int("files", len(paths)).Int("lines", total).Msg("Archive complete")
	return nil
}

func (a *app) graphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph <scene-dir>",
		Short: "Load the choice flow of scene scripts into Neo4j",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGraph(args[0])
		},
	}
}

func (a *app) runGraph(dir string) error {
	ctx, cancel := setupContext()
	defer cancel()

	paths, err := filewalker.ListScenes(dir)
	if err != nil {
		return err
	}

	driver, err := neo4j.NewDriverWithContext(a.cfg.Neo4jURI, neo4j.BasicAuth(a.cfg.Neo4jUser, a.cfg.Neo4jPassword, ""))
	if err != nil {
		return fmt.Errorf("connect Neo4j: %w", err)
	}
	defer driver.Close(ctx)
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("verify Neo4j connectivity: %w", err)
	}
	log.Info().Msg("Connected to Neo4j")

	builder := graph.NewBuilder(driver)
	if err := builder.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure graph schema: %w", err)
	}
	querier := graph.NewQuerier(driver)

	for _, path := range paths {
		doc, err := parser.Load(path)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("Skipping unreadable scene script")
			continue
		}
		if _, _, err := builder.UpsertDocument(ctx, doc); err != nil {
			return err
		}

		unreachable, err := querier.Unreachable(ctx, doc.FileTitle())
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("Failed to query unreachable scenes")
			continue
		}
		if len(unreachable) > 1 {
			log.Warn().Str("file", path).Strs("scenes", unreachable).Msg("Scenes no choice leads to")
		}
	}
	return nil
}
