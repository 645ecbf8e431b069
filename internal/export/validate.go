package export

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/merged.schema.json
var mergedSchema []byte

// ErrInvalidDocument is wrapped by Validate when the document does not
// match the merged document schema.
var ErrInvalidDocument = errors.New("merged document does not match schema")

// Validate checks a merged document before it is uploaded.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(mergedSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("schema validate: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(problems, "; "))
}
