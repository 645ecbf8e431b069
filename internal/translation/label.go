package translation

import (
	"fmt"
	"strings"
)

// Label keys written on extracted line records.
const (
	LabelCharacter           = "character"
	LabelSceneType           = "scene-type"
	LabelSceneLabel          = "scene-label"
	LabelSceneTitle          = "scene-title"
	LabelSceneTarget         = "scene-target"
	LabelBeforeRevealingName = "before-revealing-name"
	LabelFilename            = "filename"
)

// Scene type values.
const (
	SceneTypeDefault   = "default"
	SceneTypeSelection = "selection"
)

// Label is a structured key/value annotation. It is serialized as
// "key:value" only when written out.
type Label struct {
	Key   string
	Value string
}

// NewLabel builds a label.
func NewLabel(key, value string) Label {
	return Label{Key: key, Value: value}
}

func (l Label) String() string {
	return l.Key + ":" + l.Value
}

func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText splits on the first colon, so values may contain colons.
func (l *Label) UnmarshalText(text []byte) error {
	key, value, ok := strings.Cut(string(text), ":")
	if !ok {
		return fmt.Errorf("label %q: missing ':' separator", text)
	}
	l.Key, l.Value = key, value
	return nil
}

// Labels is an ordered label list.
type Labels []Label

// Get returns the value of the first label with the given key.
func (ls Labels) Get(key string) (string, bool) {
	for _, l := range ls {
		if l.Key == key {
			return l.Value, true
		}
	}
	return "", false
}

// Strings renders every label in order.
func (ls Labels) Strings() []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.String()
	}
	return out
}
