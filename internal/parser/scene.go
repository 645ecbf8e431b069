package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// UnmarshalJSON decodes a scene-script export, deciding each scene's kind
// from the keys it carries.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name   *string            `json:"name"`
		Scenes *[]json.RawMessage `json:"scenes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if raw.Name == nil {
		return missing("", "name")
	}
	if raw.Scenes == nil {
		return missing("", "scenes")
	}

	d.Name = *raw.Name
	d.Scenes = make([]Scene, 0, len(*raw.Scenes))
	for i, rs := range *raw.Scenes {
		scene, err := decodeScene(rs, fmt.Sprintf("scenes[%d]", i))
		if err != nil {
			return err
		}
		d.Scenes = append(d.Scenes, scene)
	}
	return nil
}

func decodeScene(data json.RawMessage, path string) (Scene, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Scene{}, fmt.Errorf("decode %s: %w", path, err)
	}

	var scene Scene
	label, err := requiredString(fields, path, "label")
	if err != nil {
		return Scene{}, err
	}
	scene.Label = StripLabel(label)

	// "selects" wins over "texts": the choice list is what ends up in the
	// output when an export carries both.
	switch {
	case present(fields, "selects"):
		scene.Kind = KindChoice
	case present(fields, "texts"):
		scene.Kind = KindDialogue
	default:
		return scene, nil
	}

	if scene.Title, err = requiredString(fields, path, "title"); err != nil {
		return Scene{}, err
	}

	if scene.Kind == KindChoice {
		scene.Choices, err = decodeChoices(fields["selects"], path+".selects")
	} else {
		scene.Lines, err = decodeLines(fields["texts"], path+".texts")
	}
	if err != nil {
		return Scene{}, err
	}
	return scene, nil
}

func decodeLines(data json.RawMessage, path string) ([]Line, error) {
	var tuples [][]json.RawMessage
	if err := json.Unmarshal(data, &tuples); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	lines := make([]Line, 0, len(tuples))
	for i, tuple := range tuples {
		linePath := fmt.Sprintf("%s[%d]", path, i)
		if len(tuple) < 3 {
			return nil, missing(linePath, "text")
		}

		var line Line
		if err := json.Unmarshal(tuple[0], &line.Character); err != nil {
			return nil, fmt.Errorf("decode %s character: %w", linePath, err)
		}
		if err := json.Unmarshal(tuple[1], &line.Alias); err != nil {
			return nil, fmt.Errorf("decode %s alias: %w", linePath, err)
		}
		var text *string
		if err := json.Unmarshal(tuple[2], &text); err != nil {
			return nil, fmt.Errorf("decode %s text: %w", linePath, err)
		}
		if text != nil {
			line.Text = *text
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// decodeChoices accepts the usual array form and the object form keyed by
// position ("0", "1", ...) seen in some exports.
func decodeChoices(data json.RawMessage, path string) ([]Choice, error) {
	var items []json.RawMessage
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		var keyed map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &keyed); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		keys := make([]string, 0, len(keyed))
		for k := range keyed {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return positionLess(keys[i], keys[j]) })
		for _, k := range keys {
			items = append(items, keyed[k])
		}
	} else if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	choices := make([]Choice, 0, len(items))
	for i, item := range items {
		choicePath := fmt.Sprintf("%s[%d]", path, i)
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil {
			return nil, fmt.Errorf("decode %s: %w", choicePath, err)
		}

		text, err := requiredString(fields, choicePath, "text")
		if err != nil {
			return nil, err
		}
		choice := Choice{Text: text}
		if present(fields, "target") {
			var target string
			if err := json.Unmarshal(fields["target"], &target); err != nil {
				return nil, fmt.Errorf("decode %s target: %w", choicePath, err)
			}
			target = StripLabel(target)
			choice.Target = &target
		}
		choices = append(choices, choice)
	}
	return choices, nil
}

// present reports whether key exists with a non-null value.
func present(fields map[string]json.RawMessage, key string) bool {
	v, ok := fields[key]
	return ok && !bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

func requiredString(fields map[string]json.RawMessage, path, key string) (string, error) {
	if !present(fields, key) {
		return "", missing(path, key)
	}
	var s string
	if err := json.Unmarshal(fields[key], &s); err != nil {
		return "", fmt.Errorf("decode %s %s: %w", path, key, err)
	}
	return s, nil
}

func positionLess(a, b string) bool {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return ai < bi
	}
	return a < b
}
