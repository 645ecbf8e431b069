package store

import (
	"scene-crowdin/internal/textutil"
	"scene-crowdin/internal/translation"
)

// LinesFromMerged flattens a merged document into archive rows for file.
func LinesFromMerged(file string, doc *translation.MergedDocument) []Line {
	if doc == nil {
		return nil
	}
	lines := make([]Line, 0, doc.Lines())
	for scene, records := range doc.Texts {
		for id, rec := range records {
			lines = append(lines, Line{
				File:         file,
				Scene:        scene,
				Identifier:   id,
				SourceHash:   textutil.Hash(rec.Text),
				Text:         rec.Text,
				Context:      rec.Context,
				Translations: rec.Translations,
			})
		}
	}
	return lines
}
