// Package graph maps the choice flow of scene scripts into Neo4j so that
// translators can see where each selection leads.
package graph

import "scene-crowdin/internal/parser"

// Node is a scene of one file.
type Node struct {
	File  string
	Label string
	Title string
	Kind  string
	Lines int
}

// Edge is one choice leading from a selection scene to its target.
type Edge struct {
	File     string
	From     string
	To       string
	Text     string
	Position int
}

// Nodes lists the dialogue and choice scenes of doc in document order.
func Nodes(doc *parser.Document) []Node {
	if doc == nil {
		return nil
	}
	file := doc.FileTitle()
	nodes := make([]Node, 0, len(doc.Scenes))
	for _, s := range doc.Scenes {
		if s.Kind == parser.KindUnknown {
			continue
		}
		nodes = append(nodes, Node{
			File:  file,
			Label: s.Label,
			Title: s.Title,
			Kind:  s.Kind.String(),
			Lines: len(s.Lines) + len(s.Choices),
		})
	}
	return nodes
}

// Edges lists every choice with a target. Choices without one end the
// flow and produce no edge.
func Edges(doc *parser.Document) []Edge {
	if doc == nil {
		return nil
	}
	file := doc.FileTitle()
	var edges []Edge
	for _, s := range doc.Scenes {
		if s.Kind != parser.KindChoice {
			continue
		}
		for i, c := range s.Choices {
			if c.Target == nil || *c.Target == "" {
				continue
			}
			edges = append(edges, Edge{File: file, From: s.Label, To: *c.Target, Text: c.Text, Position: i})
		}
	}
	return edges
}
