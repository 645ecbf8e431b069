package translation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelText(t *testing.T) {
	l := NewLabel(LabelSceneTarget, "none")
	assert.Equal(t, "scene-target:none", l.String())

	var back Label
	require.NoError(t, back.UnmarshalText([]byte("character:Eru: the girl")))
	assert.Equal(t, Label{Key: "character", Value: "Eru: the girl"}, back)

	assert.Error(t, back.UnmarshalText([]byte("no separator")))
}

func TestLabelsJSON(t *testing.T) {
	labels := Labels{
		NewLabel(LabelCharacter, "voice-off"),
		NewLabel(LabelSceneType, SceneTypeDefault),
	}
	data, err := json.Marshal(labels)
	require.NoError(t, err)
	assert.JSONEq(t, `["character:voice-off", "scene-type:default"]`, string(data))

	var back Labels
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, labels, back)

	v, ok := back.Get(LabelSceneType)
	assert.True(t, ok)
	assert.Equal(t, SceneTypeDefault, v)
	_, ok = back.Get(LabelSceneTarget)
	assert.False(t, ok)
	assert.Equal(t, []string{"character:voice-off", "scene-type:default"}, back.Strings())
}

func TestIdentifierAndStatus(t *testing.T) {
	assert.Equal(t, "pm00_01-s1.07", Identifier("pm00_01", "s1", 7))
	assert.Equal(t, "pm00_01-s1.120", Identifier("pm00_01", "s1", 120))
	assert.Equal(t, StatusApproved, NewTranslation("x").Status)
	assert.Equal(t, Translation{Status: StatusUntranslated}, NewTranslation(""))
}
