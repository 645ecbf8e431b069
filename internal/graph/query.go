package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// Querier reads scene flow graphs from Neo4j.
type Querier struct {
	driver neo4j.DriverWithContext
}

// NewQuerier creates a new graph querier.
func NewQuerier(driver neo4j.DriverWithContext) *Querier {
	return &Querier{driver: driver}
}

// Unreachable lists the scenes of a file that no choice leads to. The
// first scene of a file is normally among them.
func (q *Querier) Unreachable(ctx context.Context, file string) ([]string, error) {
	session := q.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (s:Scene {file: $file})
		WHERE NOT ()-[:CHOICE]->(s)
		RETURN s.label AS label
		ORDER BY label
	`, map[string]any{"file": file})
	if err != nil {
		return nil, fmt.Errorf("query unreachable scenes: %w", err)
	}

	var labels []string
	for result.Next(ctx) {
		label, _ := result.Record().Get("label")
		labels = append(labels, fmt.Sprintf("%v", label))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("read unreachable scenes: %w", err)
	}

	log.Debug().Str("file", file).Int("count", len(labels)).Msg("Unreachable scenes")
	return labels, nil
}
