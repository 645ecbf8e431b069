package translation

import "fmt"

// Translation statuses understood by the platform.
const (
	StatusApproved     = "approved"
	StatusUntranslated = "untranslated"
)

// LineRecord is one extracted line keyed by its identifier.
type LineRecord struct {
	// Character is set on dialogue lines only.
	Character    string                 `json:"character,omitempty" yaml:"character,omitempty"`
	Text         string                 `json:"text" yaml:"text"`
	Translations map[string]Translation `json:"translations" yaml:"translations"`
	*LineMeta    `yaml:",inline,omitempty"`
}

// LineMeta holds the annotations dropped in simplified mode.
type LineMeta struct {
	IsHidden   bool   `json:"isHidden" yaml:"isHidden"`
	Context    string `json:"context" yaml:"context"`
	Labels     Labels `json:"labels" yaml:"labels"`
	CustomData string `json:"customData" yaml:"customData"`
}

// Scene maps line identifiers to records.
type Scene map[string]LineRecord

// Document is the extractor output for one scene-script export.
type Document struct {
	Filename string           `json:"filename,omitempty" yaml:"filename,omitempty"`
	Labels   Labels           `json:"labels,omitempty" yaml:"labels,omitempty"`
	Texts    map[string]Scene `json:"texts" yaml:"texts"`
}

// Lines counts the line records across all scenes.
func (d *Document) Lines() int {
	n := 0
	for _, scene := range d.Texts {
		n += len(scene)
	}
	return n
}

// Translation is one language slot of a merged record.
type Translation struct {
	Text   string `json:"text" yaml:"text"`
	Status string `json:"status" yaml:"status"`
}

// NewTranslation derives the status from whether text is empty.
func NewTranslation(text string) Translation {
	status := StatusUntranslated
	if text != "" {
		status = StatusApproved
	}
	return Translation{Text: text, Status: status}
}

// MergedRecord carries every known language variant of a line.
type MergedRecord struct {
	Text         string                 `json:"text" yaml:"text"`
	Translations map[string]Translation `json:"translations" yaml:"translations"`
	Context      string                 `json:"context" yaml:"context"`
}

// MergedScene maps line identifiers to merged records.
type MergedScene map[string]MergedRecord

// MergedDocument is the merger output, ready for upload.
type MergedDocument struct {
	Texts map[string]MergedScene `json:"texts" yaml:"texts"`
}

// Lines counts the merged records across all scenes.
func (d *MergedDocument) Lines() int {
	n := 0
	for _, scene := range d.Texts {
		n += len(scene)
	}
	return n
}

// Identifier builds the per-line join key "{fileTitle}-{label}.{index:02d}".
func Identifier(fileTitle, sceneLabel string, index int) string {
	return fmt.Sprintf("%s-%s.%02d", fileTitle, sceneLabel, index)
}
