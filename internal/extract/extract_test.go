package extract

import (
	"encoding/json"
	"fmt"
	"testing"

	"scene-crowdin/internal/parser"
	"scene-crowdin/internal/translation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

func sampleDocument() *parser.Document {
	return &parser.Document{
		Name: "pm00_01.txt.scn.m.json",
		Scenes: []parser.Scene{
			{
				Kind:  parser.KindDialogue,
				Label: "s1",
				Title: "T",
				Lines: []parser.Line{
					{Character: str("Eru"), Alias: str("Girl"), Text: "Hi!"},
					{Text: "..."},
				},
			},
			{
				Kind:  parser.KindChoice,
				Label: "sel",
				Title: "Choose",
				Choices: []parser.Choice{
					{Text: "Go", Target: str("s2")},
					{Text: "Stay"},
				},
			},
			{Kind: parser.KindUnknown, Label: "jump"},
		},
	}
}

func TestExtractDialogue(t *testing.T) {
	doc, err := Extract(sampleDocument(), Options{})
	require.NoError(t, err)

	assert.Equal(t, "pm00_01.txt.scn.m.json", doc.Filename)
	assert.Equal(t, []string{"filename:pm00_01.txt.scn.m.json"}, doc.Labels.Strings())

	scene := doc.Texts["s1"]
	require.Len(t, scene, 2)

	first, ok := scene["pm00_01-s1.00"]
	require.True(t, ok)
	assert.Equal(t, "Eru", first.Character)
	assert.Equal(t, "Hi!", first.Text)
	assert.Empty(t, first.Translations)
	require.NotNil(t, first.LineMeta)
	assert.False(t, first.IsHidden)
	assert.Equal(t, DefaultContext, first.Context)
	assert.Equal(t, "character:Eru", first.CustomData)
	assert.Equal(t, translation.Labels{
		{Key: "character", Value: "Eru"},
		{Key: "scene-type", Value: "default"},
		{Key: "scene-label", Value: "s1"},
		{Key: "scene-title", Value: "T"},
		{Key: "before-revealing-name", Value: "Girl"},
		{Key: "filename", Value: "pm00_01.txt.scn.m.json"},
	}, first.Labels)

	second, ok := scene["pm00_01-s1.01"]
	require.True(t, ok)
	assert.Equal(t, VoiceOff, second.Character)
	assert.Equal(t, "character:voice-off", second.CustomData)
	_, hasAlias := second.Labels.Get("before-revealing-name")
	assert.False(t, hasAlias)
}

func TestExtractChoices(t *testing.T) {
	doc, err := Extract(sampleDocument(), Options{Context: "note"})
	require.NoError(t, err)

	scene := doc.Texts["sel"]
	require.Len(t, scene, 2)

	goChoice := scene["pm00_01-sel.00"]
	assert.Empty(t, goChoice.Character)
	assert.Equal(t, "note", goChoice.Context)
	assert.Equal(t, "character:pending", goChoice.CustomData)
	assert.Equal(t, []string{
		"scene-type:selection",
		"scene-label:sel",
		"scene-title:Choose",
		"scene-target:s2",
		"filename:pm00_01.txt.scn.m.json",
	}, goChoice.Labels.Strings())

	stay := scene["pm00_01-sel.01"]
	target, ok := stay.Labels.Get("scene-target")
	require.True(t, ok)
	assert.Equal(t, NoTarget, target)
}

func TestExtractSkipsUnknownScenes(t *testing.T) {
	doc, err := Extract(sampleDocument(), Options{})
	require.NoError(t, err)
	assert.NotContains(t, doc.Texts, "jump")
	assert.Len(t, doc.Texts, 2)
	assert.Equal(t, 4, doc.Lines())
}

func TestExtractSimplified(t *testing.T) {
	doc, err := Extract(sampleDocument(), Options{Simplified: true})
	require.NoError(t, err)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var raw map[string]map[string]map[string]map[string]any
	var top map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &top))
	assert.NotContains(t, top, "filename")
	assert.NotContains(t, top, "labels")

	require.NoError(t, json.Unmarshal(data, &raw))
	for _, scene := range raw["texts"] {
		for id, record := range scene {
			for _, key := range []string{"isHidden", "context", "labels", "customData"} {
				assert.NotContains(t, record, key, "line %s", id)
			}
			assert.Contains(t, record, "text")
			assert.Contains(t, record, "translations")
		}
	}
	assert.Equal(t, "Eru", raw["texts"]["s1"]["pm00_01-s1.00"]["character"])
}

func TestExtractFullJSONShape(t *testing.T) {
	doc, err := Extract(sampleDocument(), Options{})
	require.NoError(t, err)

	data, err := json.Marshal(doc.Texts["s1"]["pm00_01-s1.01"])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"character": "voice-off",
		"text": "...",
		"translations": {},
		"isHidden": false,
		"context": "jap context",
		"labels": ["character:voice-off", "scene-type:default", "scene-label:s1", "scene-title:T", "filename:pm00_01.txt.scn.m.json"],
		"customData": "character:voice-off"
	}`, string(data))
}

func TestExtractIdentifiersFollowDocumentOrder(t *testing.T) {
	lines := make([]parser.Line, 120)
	for i := range lines {
		lines[i] = parser.Line{Character: str("A"), Text: fmt.Sprintf("line %d", i)}
	}
	doc := &parser.Document{
		Name:   "long.json",
		Scenes: []parser.Scene{{Kind: parser.KindDialogue, Label: "x", Title: "t", Lines: lines}},
	}

	out, err := Extract(doc, Options{})
	require.NoError(t, err)
	require.Len(t, out.Texts["x"], len(lines))
	for i := range lines {
		id := fmt.Sprintf("long-x.%02d", i)
		require.Contains(t, out.Texts["x"], id)
		assert.Equal(t, lines[i].Text, out.Texts["x"][id].Text)
	}
	assert.Contains(t, out.Texts["x"], "long-x.100")
}

func TestExtractDuplicateLabelOverwrites(t *testing.T) {
	doc := &parser.Document{
		Name: "dup.json",
		Scenes: []parser.Scene{
			{Kind: parser.KindDialogue, Label: "a", Title: "first", Lines: []parser.Line{{Text: "1"}, {Text: "2"}}},
			{Kind: parser.KindChoice, Label: "a", Title: "second", Choices: []parser.Choice{{Text: "c"}}},
		},
	}

	out, err := Extract(doc, Options{})
	require.NoError(t, err)
	require.Len(t, out.Texts["a"], 1)
	assert.Equal(t, "c", out.Texts["a"]["dup-a.00"].Text)
}

func TestExtractNilDocument(t *testing.T) {
	_, err := Extract(nil, Options{})
	assert.ErrorIs(t, err, ErrNoDocument)
}
