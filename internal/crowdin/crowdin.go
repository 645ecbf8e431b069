// Package crowdin converts upload files to and from the string list of the
// Crowdin custom file format.
package crowdin

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"scene-crowdin/internal/placeholder"
	"scene-crowdin/internal/translation"
)

// ErrNoLanguages is returned when strings are requested for no language.
var ErrNoLanguages = errors.New("languages list is empty")

// DefaultLanguages are sent when the platform does not pass target languages.
var DefaultLanguages = []string{"en", "ja", "es-ES"}

// Item is a line of an upload file. It covers both extracted and merged
// documents, so every annotation is optional.
type Item struct {
	Text         string                             `json:"text"`
	Translations map[string]translation.Translation `json:"translations"`
	Context      string                             `json:"context"`
	Labels       translation.Labels                 `json:"labels,omitempty"`
	IsHidden     bool                               `json:"isHidden,omitempty"`
	CustomData   string                             `json:"customData,omitempty"`
}

// File is an upload file: scene label to identifier to item.
type File struct {
	Texts map[string]map[string]Item `json:"texts"`
}

// String is one entry of the platform string list.
type String struct {
	Identifier   string                             `json:"identifier"`
	Text         string                             `json:"text"`
	Labels       translation.Labels                 `json:"labels"`
	IsHidden     bool                               `json:"isHidden"`
	Context      string                             `json:"context"`
	CustomData   string                             `json:"customData"`
	Translations map[string]translation.Translation `json:"translations"`
}

// LoadFile reads an upload file from disk.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read upload file: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if f.Texts == nil {
		f.Texts = map[string]map[string]Item{}
	}
	return &f, nil
}

// LoadStrings reads a string list from disk.
func LoadStrings(path string) ([]String, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read string list: %w", err)
	}
	var out []String
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return out, nil
}

// BuildStrings lists every line of f, restricting translations to the
// requested languages present on the line. Scenes and identifiers are
// walked in sorted order.
func BuildStrings(f *File, languages []string) ([]String, error) {
	if len(languages) == 0 {
		return nil, ErrNoLanguages
	}

	var out []String
	for _, scene := range sortedKeys(f.Texts) {
		items := f.Texts[scene]
		for _, id := range sortedKeys(items) {
			item := items[id]
			s := String{
				Identifier:   id,
				Text:         item.Text,
				Labels:       item.Labels,
				IsHidden:     item.IsHidden,
				Context:      item.Context,
				CustomData:   item.CustomData,
				Translations: make(map[string]translation.Translation),
			}
			for _, lang := range languages {
				tr, ok := item.Translations[lang]
				if !ok {
					continue
				}
				if tr.Status == "" {
					tr.Status = translation.StatusUntranslated
				}
				s.Translations[lang] = tr
			}
			out = append(out, s)
		}
	}
	return out, nil
}

// Apply writes a string list back into f. Strings without a scene label or
// pointing at an unknown line are skipped; every such problem is reported
// in the returned error while the remaining strings are still applied.
// Translations whose format variables differ from the text are applied
// and reported.
func Apply(f *File, list []String) error {
	var errs []error
	for _, s := range list {
		scene, ok := s.Labels.Get(translation.LabelSceneLabel)
		if !ok {
			errs = append(errs, fmt.Errorf("%s: no %q label", s.Identifier, translation.LabelSceneLabel))
			continue
		}
		item, ok := f.Texts[scene][s.Identifier]
		if !ok {
			errs = append(errs, fmt.Errorf("%s: not in the source file", s.Identifier))
			continue
		}

		item.Text = s.Text
		item.Context = s.Context
		item.CustomData = s.CustomData
		item.IsHidden = s.IsHidden
		item.Labels = slices.Clone(s.Labels)
		slices.Reverse(item.Labels)

		if item.Translations == nil {
			item.Translations = make(map[string]translation.Translation)
		}
		for lang, tr := range s.Translations {
			if tr.Text == "" {
				continue
			}
			item.Translations[lang] = tr
			if missing, extra := placeholder.Diff(s.Text, tr.Text); len(missing)+len(extra) > 0 {
				errs = append(errs, fmt.Errorf("%s: %s translation variables differ (missing %v, extra %v)", s.Identifier, lang, missing, extra))
			}
		}
		f.Texts[scene][s.Identifier] = item
	}
	return errors.Join(errs...)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
