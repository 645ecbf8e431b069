package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"

	"scene-crowdin/internal/parser"
)

// Builder writes scene flow graphs to Neo4j.
type Builder struct {
	driver neo4j.DriverWithContext
}

// NewBuilder creates a new graph builder.
func NewBuilder(driver neo4j.DriverWithContext) *Builder {
	return &Builder{driver: driver}
}

// EnsureSchema creates constraints and indexes on the Neo4j database.
func (b *Builder) EnsureSchema(ctx context.Context) error {
	session := b.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT IF NOT EXISTS FOR (s:Scene) REQUIRE (s.file, s.label) IS UNIQUE",
	}

	for _, c := range constraints {
		if _, err := session.Run(ctx, c, nil); err != nil {
			return fmt.Errorf("create constraint: %w", err)
		}
	}

	log.Info().Msg("Graph schema ensured")
	return nil
}

// UpsertDocument stores the scenes of doc and the choices between them.
// Targets that name no scene of the file get a bare node so the dangling
// jump stays visible.
func (b *Builder) UpsertDocument(ctx context.Context, doc *parser.Document) (int, int, error) {
	if doc == nil {
		return 0, 0, nil
	}
	nodes := Nodes(doc)
	edges := Edges(doc)

	session := b.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	for _, n := range nodes {
		_, err := session.Run(ctx, `
			MERGE (s:Scene {file: $file, label: $label})
			SET s.title = $title,
			    s.kind = $kind,
			    s.lines = $lines
		`, map[string]any{
			"file":  n.File,
			"label": n.Label,
			"title": n.Title,
			"kind":  n.Kind,
			"lines": n.Lines,
		})
		if err != nil {
			return 0, 0, fmt.Errorf("upsert scene %s: %w", n.Label, err)
		}
	}

	for _, e := range edges {
		_, err := session.Run(ctx, `
			MATCH (a:Scene {file: $file, label: $from})
			MERGE (b:Scene {file: $file, label: $to})
			MERGE (a)-[c:CHOICE {position: $position}]->(b)
			SET c.text = $text
		`, map[string]any{
			"file":     e.File,
			"from":     e.From,
			"to":       e.To,
			"position": e.Position,
			"text":     e.Text,
		})
		if err != nil {
			return len(nodes), 0, fmt.Errorf("link %s to %s: %w", e.From, e.To, err)
		}
	}

	log.Info().
		Str("file", doc.Name).
		Int("scenes", len(nodes)).
		Int("choices", len(edges)).
		Msg("Stored scene flow")
	return len(nodes), len(edges), nil
}
