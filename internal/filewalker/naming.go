package filewalker

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrSceneMismatch is matched by SceneMismatchError and by pairing
// failures where nothing could be matched.
var ErrSceneMismatch = errors.New("scene mismatch")

// SceneMismatchError reports two files that should describe the same scene
// but carry different scene ids.
type SceneMismatchError struct {
	SourceID    string
	ReferenceID string
}

func (e *SceneMismatchError) Error() string {
	return fmt.Sprintf("the selected files are from different scenes (%s, %s)", e.SourceID, e.ReferenceID)
}

func (e *SceneMismatchError) Is(target error) bool {
	return target == ErrSceneMismatch
}

const (
	sceneSuffix   = ".txt.scn.m.json"
	crowdinSuffix = ".txt_crowdin.json"
	crowdinMarker = "_crowdin"
	genericName   = "extracted"
)

var sceneIDPattern = regexp.MustCompile(`pm(\d{2}_\d{2})\.txt\.scn\.m\.json`)

// SceneID extracts the "NN_NN" id from a pm<NN_NN>.txt.scn.m.json path.
func SceneID(path string) (string, bool) {
	m := sceneIDPattern.FindStringSubmatch(path)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// DefaultOutputName names the merge of a single pair: extracted<id>.json
// when either file carries a scene id, extracted.json otherwise. Either
// path may be empty.
func DefaultOutputName(sourcePath, referencePath string) (string, error) {
	sourceID, sourceOK := SceneID(sourcePath)
	referenceID, referenceOK := SceneID(referencePath)

	switch {
	case sourceOK && referenceOK:
		if sourceID != referenceID {
			return "", &SceneMismatchError{SourceID: sourceID, ReferenceID: referenceID}
		}
		return genericName + sourceID + SceneExtension, nil
	case sourceOK:
		return genericName + sourceID + SceneExtension, nil
	case referenceOK:
		return genericName + referenceID + SceneExtension, nil
	default:
		return genericName + SceneExtension, nil
	}
}

// CrowdinOutputName names the batch output of a scene export.
func CrowdinOutputName(path string) string {
	base := filepath.Base(path)
	if path == "" || base == "." || base == string(filepath.Separator) {
		return genericName + crowdinMarker + SceneExtension
	}
	if strings.HasSuffix(base, sceneSuffix) {
		return strings.TrimSuffix(base, sceneSuffix) + crowdinSuffix
	}
	stem := strings.TrimSuffix(base, SceneExtension)
	if stem == "" {
		stem = genericName
	}
	return stem + crowdinMarker + SceneExtension
}
