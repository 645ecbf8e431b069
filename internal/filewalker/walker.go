package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// SceneExtension is the only file type paired across language folders.
const SceneExtension = ".json"

// FilePair holds the source- and reference-language exports sharing a base
// name. A side without a file has an empty path.
type FilePair struct {
	Name          string
	SourcePath    string
	ReferencePath string
}

// HasSource reports whether the source-language file exists.
func (p FilePair) HasSource() bool { return p.SourcePath != "" }

// HasReference reports whether the reference-language file exists.
func (p FilePair) HasReference() bool { return p.ReferencePath != "" }

// Pair matches the scene exports of two language folders by file name.
// Files present on one side only are kept with the other side empty.
func Pair(sourceDir, referenceDir string) ([]FilePair, error) {
	sourceFiles, err := listScenes(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("list source folder: %w", err)
	}
	referenceFiles, err := listScenes(referenceDir)
	if err != nil {
		return nil, fmt.Errorf("list reference folder: %w", err)
	}

	names := make(map[string]struct{}, len(sourceFiles)+len(referenceFiles))
	for name := range sourceFiles {
		names[name] = struct{}{}
	}
	for name := range referenceFiles {
		names[name] = struct{}{}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no scene files in %s or %s", ErrSceneMismatch, sourceDir, referenceDir)
	}

	pairs := make([]FilePair, 0, len(names))
	for name := range names {
		pair := FilePair{Name: name}
		if sourceFiles[name] {
			pair.SourcePath = filepath.Join(sourceDir, name)
		}
		if referenceFiles[name] {
			pair.ReferencePath = filepath.Join(referenceDir, name)
		}
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Name < pairs[j].Name })

	log.Info().
		Int("pairs", len(pairs)).
		Int("source", len(sourceFiles)).
		Int("reference", len(referenceFiles)).
		Msg("Paired scene files")
	return pairs, nil
}

// listScenes returns the scene export names directly inside dir.
func listScenes(dir string) (map[string]bool, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read folder: %w", err)
	}

	files := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), SceneExtension) {
			files[entry.Name()] = true
		}
	}
	return files, nil
}

// ListScenes returns the scene export paths directly inside dir, sorted.
func ListScenes(dir string) ([]string, error) {
	files, err := listScenes(dir)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(files))
	for name := range files {
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}
