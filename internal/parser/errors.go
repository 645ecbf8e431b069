package parser

import (
	"errors"
	"fmt"
)

// ErrFieldMissing is matched by every FieldMissingError.
var ErrFieldMissing = errors.New("required field missing")

// FieldMissingError reports a required key absent from a scene-script document.
type FieldMissingError struct {
	// Path locates the object that lacks the field, e.g. "scenes[3].texts[0]".
	Path  string
	Field string
}

func (e *FieldMissingError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %q", ErrFieldMissing, e.Field)
	}
	return fmt.Sprintf("%s: %q in %s", ErrFieldMissing, e.Field, e.Path)
}

func (e *FieldMissingError) Is(target error) bool {
	return target == ErrFieldMissing
}

func missing(path, field string) error {
	return &FieldMissingError{Path: path, Field: field}
}
