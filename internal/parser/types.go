package parser

import "strings"

// SceneKind tells which shape a scene was decoded from.
type SceneKind int

const (
	// KindUnknown is a scene with neither a line sequence nor a choice list.
	KindUnknown SceneKind = iota
	// KindDialogue is a scene carrying "texts" line tuples.
	KindDialogue
	// KindChoice is a scene carrying "selects" choices.
	KindChoice
)

func (k SceneKind) String() string {
	switch k {
	case KindDialogue:
		return "dialogue"
	case KindChoice:
		return "choice"
	default:
		return "unknown"
	}
}

// Document is one scene-script export from the game engine.
type Document struct {
	// Name is the filename-like export name, e.g. "pm00_01.txt.scn.m.json".
	Name string
	// Scenes keeps the export order.
	Scenes []Scene
}

// FileTitle returns the part of Name before the first dot. It prefixes
// every line identifier derived from the document.
func (d *Document) FileTitle() string {
	title, _, _ := strings.Cut(d.Name, ".")
	return title
}

// Scene is a tagged variant: exactly one of Lines or Choices is meaningful,
// depending on Kind.
type Scene struct {
	Kind SceneKind
	// Label is stored with surrounding '*' characters stripped.
	Label   string
	Title   string
	Lines   []Line
	Choices []Choice
}

// Line is one dialogue tuple (character, alias, text).
type Line struct {
	// Character is nil for narration.
	Character *string
	// Alias is the name shown before the character is revealed, if any.
	Alias *string
	Text  string
}

// Choice is one entry of a selection scene.
type Choice struct {
	Text string
	// Target is the stripped label of the scene this choice jumps to, nil
	// when the export carries no target.
	Target *string
}

// StripLabel removes the '*' markers the engine puts around scene labels.
func StripLabel(label string) string {
	return strings.Trim(label, "*")
}
