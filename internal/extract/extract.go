// Package extract turns scene-script exports into per-line translation
// documents keyed by scene label and line identifier.
package extract

import (
	"errors"

	"scene-crowdin/internal/parser"
	"scene-crowdin/internal/translation"

	"github.com/rs/zerolog/log"
)

const (
	// VoiceOff stands in for the speaker of narration lines.
	VoiceOff = "voice-off"
	// PendingCharacter marks choice lines, whose speaker is not known yet.
	PendingCharacter = "pending"
	// NoTarget is written when a choice carries no jump target.
	NoTarget = "none"
	// DefaultContext is the placeholder note put on every extracted line.
	DefaultContext = "jap context"
)

// ErrNoDocument is returned when Extract is called without a document.
var ErrNoDocument = errors.New("no scene-script document")

// Options controls the shape of the extracted document.
type Options struct {
	// Simplified drops isHidden, context, labels and customData from every
	// line, and filename/labels from the document.
	Simplified bool
	// Context is written to each line's context field. Empty means DefaultContext.
	Context string
}

// Extract builds the translation document of one scene-script export.
func Extract(doc *parser.Document, opts Options) (*translation.Document, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	if opts.Context == "" {
		opts.Context = DefaultContext
	}

	e := &extractor{
		opts:      opts,
		fileTitle: doc.FileTitle(),
		globals:   translation.Labels{translation.NewLabel(translation.LabelFilename, doc.Name)},
	}

	texts := make(map[string]translation.Scene, len(doc.Scenes))
	for i := range doc.Scenes {
		scene := &doc.Scenes[i]

		var lines translation.Scene
		switch scene.Kind {
		case parser.KindDialogue:
			lines = e.dialogue(scene)
		case parser.KindChoice:
			lines = e.choices(scene)
		default:
			log.Debug().Str("file", doc.Name).Str("scene", scene.Label).Msg("Skipping scene without texts or selects")
			continue
		}

		if _, dup := texts[scene.Label]; dup {
			log.Warn().Str("file", doc.Name).Str("scene", scene.Label).Msg("Duplicate scene label, later scene replaces earlier one")
		}
		texts[scene.Label] = lines
	}

	out := &translation.Document{Texts: texts}
	if !opts.Simplified {
		out.Filename = doc.Name
		out.Labels = e.globals
	}
	return out, nil
}

type extractor struct {
	opts      Options
	fileTitle string
	globals   translation.Labels
}

func (e *extractor) dialogue(scene *parser.Scene) translation.Scene {
	lines := make(translation.Scene, len(scene.Lines))
	for i, line := range scene.Lines {
		character := VoiceOff
		if line.Character != nil {
			character = *line.Character
		}

		record := translation.LineRecord{
			Character:    character,
			Text:         line.Text,
			Translations: map[string]translation.Translation{},
		}

		if !e.opts.Simplified {
			labels := translation.Labels{
				translation.NewLabel(translation.LabelCharacter, character),
				translation.NewLabel(translation.LabelSceneType, translation.SceneTypeDefault),
				translation.NewLabel(translation.LabelSceneLabel, scene.Label),
				translation.NewLabel(translation.LabelSceneTitle, scene.Title),
			}
			if line.Alias != nil {
				labels = append(labels, translation.NewLabel(translation.LabelBeforeRevealingName, *line.Alias))
			}
			record.LineMeta = e.meta(labels, character)
		}

		lines[translation.Identifier(e.fileTitle, scene.Label, i)] = record
	}
	return lines
}

func (e *extractor) choices(scene *parser.Scene) translation.Scene {
	lines := make(translation.Scene, len(scene.Choices))
	for i, choice := range scene.Choices {
		target := NoTarget
		if choice.Target != nil {
			target = *choice.Target
		}

		record := translation.LineRecord{
			Text:         choice.Text,
			Translations: map[string]translation.Translation{},
		}

		if !e.opts.Simplified {
			labels := translation.Labels{
				translation.NewLabel(translation.LabelSceneType, translation.SceneTypeSelection),
				translation.NewLabel(translation.LabelSceneLabel, scene.Label),
				translation.NewLabel(translation.LabelSceneTitle, scene.Title),
				translation.NewLabel(translation.LabelSceneTarget, target),
			}
			record.LineMeta = e.meta(labels, PendingCharacter)
		}

		lines[translation.Identifier(e.fileTitle, scene.Label, i)] = record
	}
	return lines
}

func (e *extractor) meta(labels translation.Labels, character string) *translation.LineMeta {
	all := make(translation.Labels, 0, len(labels)+len(e.globals))
	all = append(all, labels...)
	all = append(all, e.globals...)
	return &translation.LineMeta{
		IsHidden:   false,
		Context:    e.opts.Context,
		Labels:     all,
		CustomData: translation.NewLabel(translation.LabelCharacter, character).String(),
	}
}
