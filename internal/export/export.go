// Package export writes translation documents to disk and checks merged
// documents before upload.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Format names accepted by Write.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// EncodeJSON writes v as UTF-8 JSON with 2-space indentation. Non-ASCII
// text and HTML characters are written as-is.
func EncodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// EncodeYAML writes v as YAML with 2-space indentation.
func EncodeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return encoder.Close()
}

// Encode dispatches on format.
func Encode(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON, "":
		return EncodeJSON(w, v)
	case FormatYAML, "yml":
		return EncodeYAML(w, v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Write encodes v and writes it to path, creating parent folders.
func Write(path, format string, v any) error {
	var buf bytes.Buffer
	if err := Encode(&buf, format, v); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteJSON is Write with FormatJSON.
func WriteJSON(path string, v any) error {
	return Write(path, FormatJSON, v)
}

// ReadJSON decodes the JSON file at path into v.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
