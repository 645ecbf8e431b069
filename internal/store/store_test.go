package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-crowdin/internal/textutil"
	"scene-crowdin/internal/translation"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	s, err := Open(ctx, "sqlite://"+filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(s.Close)
	require.NoError(t, s.EnsureSchema(ctx))
	return s
}

func mergedDoc(text string) *translation.MergedDocument {
	return &translation.MergedDocument{Texts: map[string]translation.MergedScene{
		"s1": {
			"pm00_01-s1.00": {
				Text:    text,
				Context: "Original Text: やあ！",
				Translations: map[string]translation.Translation{
					"ja":    translation.NewTranslation("やあ！"),
					"es-ES": translation.NewTranslation(""),
				},
			},
			"pm00_01-s1.01": {Text: "Bye", Translations: map[string]translation.Translation{}},
		},
	}}
}

func TestOpenUnsupported(t *testing.T) {
	_, err := Open(context.Background(), "mysql://localhost/db")
	assert.ErrorIs(t, err, ErrUnsupportedURL)
}

func TestUpsertAndList(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	n, err := s.Upsert(ctx, LinesFromMerged("pm00_01.txt_crowdin.json", mergedDoc("Hi!")))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	lines, err := s.List(ctx, "pm00_01.txt_crowdin.json")
	require.NoError(t, err)
	require.Len(t, lines, 2)

	first := lines[0]
	assert.Equal(t, "pm00_01-s1.00", first.Identifier)
	assert.Equal(t, "s1", first.Scene)
	assert.Equal(t, "Hi!", first.Text)
	assert.Equal(t, textutil.Hash("Hi!"), first.SourceHash)
	assert.Equal(t, translation.StatusApproved, first.Translations["ja"].Status)
	assert.Equal(t, translation.StatusUntranslated, first.Translations["es-ES"].Status)
	assert.False(t, first.UpdatedAt.IsZero())
}

func TestUpsertReplaces(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	_, err := s.Upsert(ctx, LinesFromMerged("a.json", mergedDoc("Hi!")))
	require.NoError(t, err)
	_, err = s.Upsert(ctx, LinesFromMerged("a.json", mergedDoc("Hello!")))
	require.NoError(t, err)
	_, err = s.Upsert(ctx, LinesFromMerged("b.json", mergedDoc("Hi!")))
	require.NoError(t, err)

	lines, err := s.List(ctx, "a.json")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Hello!", lines[0].Text)

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestUpsertManyBatches(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	scene := translation.MergedScene{}
	for i := range batchSize*2 + 5 {
		scene[translation.Identifier("big", "s", i)] = translation.MergedRecord{Text: "x", Translations: map[string]translation.Translation{}}
	}
	doc := &translation.MergedDocument{Texts: map[string]translation.MergedScene{"s": scene}}

	n, err := s.Upsert(ctx, LinesFromMerged("big.json", doc))
	require.NoError(t, err)
	assert.Equal(t, batchSize*2+5, n)

	lines, err := s.List(ctx, "big.json")
	require.NoError(t, err)
	assert.Len(t, lines, batchSize*2+5)
}

func TestLinesFromMergedNil(t *testing.T) {
	assert.Nil(t, LinesFromMerged("x", nil))
}
