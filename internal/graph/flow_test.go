package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-crowdin/internal/parser"
)

const script = `{"name": "pm01_02.txt.scn.m.json", "scenes": [
  {"label": "*start", "title": "Start", "texts": [["Eru", null, "Where to?"]]},
  {"label": "*ask", "title": "Ask", "selects": [
    {"text": "Left", "target": "*left*"},
    {"text": "Stay"},
    {"text": "Right", "target": "*right"}
  ]},
  {"label": "*left", "title": "Left", "texts": [[null, null, "..."]]},
  {"label": "*note"}
]}`

func load(t *testing.T) *parser.Document {
	t.Helper()
	var doc parser.Document
	require.NoError(t, json.Unmarshal([]byte(script), &doc))
	return &doc
}

func TestNodes(t *testing.T) {
	nodes := Nodes(load(t))
	require.Len(t, nodes, 3)
	assert.Equal(t, Node{File: "pm01_02", Label: "start", Title: "Start", Kind: parser.KindDialogue.String(), Lines: 1}, nodes[0])
	assert.Equal(t, 3, nodes[1].Lines)
	assert.Equal(t, "left", nodes[2].Label)
}

func TestEdges(t *testing.T) {
	edges := Edges(load(t))
	assert.Equal(t, []Edge{
		{File: "pm01_02", From: "ask", To: "left", Text: "Left", Position: 0},
		{File: "pm01_02", From: "ask", To: "right", Text: "Right", Position: 2},
	}, edges)
}

func TestNilDocument(t *testing.T) {
	assert.Nil(t, Nodes(nil))
	assert.Nil(t, Edges(nil))
}
