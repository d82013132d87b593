// Package file stores training sets as YAML or JSON documents on the local
// filesystem.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/dsl"
)

// Parse decodes a YAML or JSON training set document.
func Parse(data []byte) (*domain.TrainingSet, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse training set: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", dsl.ErrMalformedDocument)
	}
	return dsl.Decode(raw)
}

// LoadFile reads a training set document. When the document has no name,
// the file name without extension is used.
func LoadFile(path string) (*domain.TrainingSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTrainingSetNotFound, path)
		}
		return nil, fmt.Errorf("failed to read training set file: %w", err)
	}

	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if set.Name == "" {
		set.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return set, nil
}

// Marshal encodes a training set as YAML, or as JSON when path ends in .json.
func Marshal(set *domain.TrainingSet, path string) ([]byte, error) {
	doc := dsl.Encode(*set)
	if filepath.Ext(path) == ".json" {
		return json.MarshalIndent(doc, "", "  ")
	}
	return yaml.Marshal(doc)
}
