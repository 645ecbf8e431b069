// Package merge joins the extracted documents of two languages into one
// upload-ready document with an empty slot for the target language.
package merge

import (
	"errors"

	"scene-crowdin/internal/translation"
)

// ErrNoInput is returned when neither side of a merge is present.
var ErrNoInput = errors.New("no input document on either side of the merge")

// Default language triple and fallback sentences.
const (
	DefaultSourceLang         = "en"
	DefaultReferenceLang      = "ja"
	DefaultTargetLang         = "es-ES"
	DefaultNoSourceText       = "(No English source available)"
	DefaultNoReferenceText    = "(No Japanese source available)"
	DefaultNoReferenceContext = "No Japanese source available, probably it's original content."

	contextPrefix = "Original Text: "
)

// Options carries the language tags and the sentences substituted for a
// missing side.
type Options struct {
	SourceLang    string
	ReferenceLang string
	TargetLang    string

	NoSourceText       string
	NoReferenceText    string
	NoReferenceContext string
}

// DefaultOptions returns the English/Japanese/Spanish setup.
func DefaultOptions() Options {
	return Options{
		SourceLang:         DefaultSourceLang,
		ReferenceLang:      DefaultReferenceLang,
		TargetLang:         DefaultTargetLang,
		NoSourceText:       DefaultNoSourceText,
		NoReferenceText:    DefaultNoReferenceText,
		NoReferenceContext: DefaultNoReferenceContext,
	}
}

// Merge performs a full outer join over (scene label, identifier). The
// source side provides the primary text; the reference side is demoted to
// a translation slot and to the context note. Either document may be nil,
// not both.
func Merge(source, reference *translation.Document, opts Options) (*translation.MergedDocument, error) {
	if source == nil && reference == nil {
		return nil, ErrNoInput
	}

	scenesA := scenesOf(source)
	scenesB := scenesOf(reference)

	merged := &translation.MergedDocument{
		Texts: make(map[string]translation.MergedScene, len(scenesA)),
	}

	for _, label := range unionKeys(scenesA, scenesB) {
		linesA := scenesA[label]
		linesB := scenesB[label]

		scene := make(translation.MergedScene, len(linesA))
		for _, id := range unionKeys(linesA, linesB) {
			scene[id] = mergeLine(linesA, linesB, id, opts)
		}
		merged.Texts[label] = scene
	}

	return merged, nil
}

func mergeLine(linesA, linesB translation.Scene, id string, opts Options) translation.MergedRecord {
	sourceText := opts.NoSourceText
	if rec, ok := linesA[id]; ok {
		sourceText = rec.Text
	}

	referenceText := opts.NoReferenceText
	context := opts.NoReferenceContext
	if rec, ok := linesB[id]; ok {
		referenceText = rec.Text
		if rec.Text != "" {
			context = contextPrefix + rec.Text
		}
	}

	// Status follows the substituted text, so a missing side still reads
	// as approved with its fallback sentence.
	return translation.MergedRecord{
		Text: sourceText,
		Translations: map[string]translation.Translation{
			opts.SourceLang:    translation.NewTranslation(sourceText),
			opts.ReferenceLang: translation.NewTranslation(referenceText),
			opts.TargetLang:    {Text: "", Status: translation.StatusUntranslated},
		},
		Context: context,
	}
}

func scenesOf(doc *translation.Document) map[string]translation.Scene {
	if doc == nil || doc.Texts == nil {
		return map[string]translation.Scene{}
	}
	return doc.Texts
}

// unionKeys returns every key present in either map, once.
func unionKeys[V any](a, b map[string]V) []string {
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	return keys
}
