// Package loam reads training sets from a Loam document workspace, where each
// Markdown, YAML or JSON document holds one training set in its frontmatter.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"

	"github.com/aretw0/ostia/pkg/domain"
)

// Loader adapts the Loam library to the ports.TrainingLoader interface.
type Loader struct {
	Repo *loam.TypedRepository[TrainingMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[TrainingMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at path and wraps it in a Loader.
// Strict mode makes every adapter (Markdown, JSON, YAML) report numbers as
// json.Number, so numeric symbols keep their spelling.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[TrainingMetadata](repo)), nil
}

type entry struct {
	docID string
	meta  TrainingMetadata
}

// index lists the repository and maps each training set name to its document.
func (l *Loader) index(ctx context.Context) (map[string]entry, []string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loam list failed: %w", err)
	}

	byName := make(map[string]entry, len(docs))
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		name := doc.Data.Name
		if name == "" {
			name = trimExtension(doc.ID)
		}

		if existing, ok := byName[name]; ok {
			return nil, nil, fmt.Errorf("collision detected: training set '%s' is defined in both '%s' and '%s'", name, existing.docID, doc.ID)
		}
		byName[name] = entry{docID: doc.ID, meta: doc.Data}
		names = append(names, name)
	}
	return byName, names, nil
}

// Load decodes the training set stored in the document named name.
func (l *Loader) Load(ctx context.Context, name string) (*domain.TrainingSet, error) {
	byName, _, err := l.index(ctx)
	if err != nil {
		return nil, err
	}
	e, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTrainingSetNotFound, name)
	}

	set, err := e.meta.TrainingSet()
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", e.docID, err)
	}
	set.Name = name
	return set, nil
}

// List lists all training sets in the repository.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	_, names, err := l.index(ctx)
	return names, err
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
