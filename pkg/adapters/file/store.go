package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/ostia/pkg/domain"
)

// extensions lists the recognized document extensions in lookup order.
var extensions = []string{".yaml", ".yml", ".json"}

// Store implements ports.TrainingStore using the local filesystem.
// Each training set is one document named after the set.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".ostia/training".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".ostia", "training")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) find(name string) (string, bool) {
	for _, ext := range extensions {
		p := filepath.Join(s.BasePath, name+ext)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// Save writes the training set atomically. An existing document keeps its
// format; new ones are written as YAML.
func (s *Store) Save(ctx context.Context, set *domain.TrainingSet) error {
	if set.Name == "" {
		return fmt.Errorf("training set name cannot be empty")
	}
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure training directory: %w", err)
	}

	destPath, exists := s.find(set.Name)
	if !exists {
		destPath = filepath.Join(s.BasePath, set.Name+".yaml")
	}

	data, err := Marshal(set, destPath)
	if err != nil {
		return fmt.Errorf("failed to marshal training set: %w", err)
	}

	// Write to a temp file in the same directory so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+set.Name+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if exists {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing training set for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to training set: %w", err)
	}
	return nil
}

// Load reads a training set by name.
func (s *Store) Load(ctx context.Context, name string) (*domain.TrainingSet, error) {
	if name == "" {
		return nil, fmt.Errorf("training set name cannot be empty")
	}
	path, ok := s.find(name)
	if !ok {
		return nil, domain.ErrTrainingSetNotFound
	}

	set, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	set.Name = name
	return set, nil
}

// Delete removes the training set document.
func (s *Store) Delete(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("training set name cannot be empty")
	}
	path, ok := s.find(name)
	if !ok {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete training set file: %w", err)
	}
	return nil
}

// List returns the names of all training set documents.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list training sets: %w", err)
	}

	var names []string
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || !slices.Contains(extensions, ext) || strings.HasPrefix(entry.Name(), "tmp-") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names, nil
}
