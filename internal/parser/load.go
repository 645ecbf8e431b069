package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/japanese"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads and decodes a scene-script export. Files are expected in
// UTF-8; Shift-JIS exports from older tool versions are converted first.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene script: %w", err)
	}

	data, err = normalizeEncoding(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	log.Debug().Str("file", path).Str("name", doc.Name).Int("scenes", len(doc.Scenes)).Msg("Loaded scene script")
	return &doc, nil
}

func normalizeEncoding(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}
	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("shift-jis: %w", err)
	}
	return decoded, nil
}
