package filewalker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneID(t *testing.T) {
	id, ok := SceneID("/data/en/pm12_03.txt.scn.m.json")
	require.True(t, ok)
	assert.Equal(t, "12_03", id)

	_, ok = SceneID("/data/en/other.json")
	assert.False(t, ok)
}

func TestDefaultOutputName(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		reference string
		want      string
	}{
		{"both match", "en/pm00_01.txt.scn.m.json", "ja/pm00_01.txt.scn.m.json", "extracted00_01.json"},
		{"source only", "en/pm00_02.txt.scn.m.json", "ja/custom.json", "extracted00_02.json"},
		{"reference only", "", "ja/pm03_04.txt.scn.m.json", "extracted03_04.json"},
		{"neither", "a.json", "b.json", "extracted.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DefaultOutputName(tt.source, tt.reference)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultOutputNameMismatch(t *testing.T) {
	_, err := DefaultOutputName("pm00_01.txt.scn.m.json", "pm00_02.txt.scn.m.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSceneMismatch)

	var mismatch *SceneMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "00_01", mismatch.SourceID)
	assert.Equal(t, "00_02", mismatch.ReferenceID)
}

func TestCrowdinOutputName(t *testing.T) {
	assert.Equal(t, "pm00_01.txt_crowdin.json", CrowdinOutputName("/in/pm00_01.txt.scn.m.json"))
	assert.Equal(t, "chapter_crowdin.json", CrowdinOutputName("/in/chapter.json"))
	assert.Equal(t, "extracted_crowdin.json", CrowdinOutputName(""))
	assert.Equal(t, "extracted_crowdin.json", CrowdinOutputName("/in/.json"))
}
