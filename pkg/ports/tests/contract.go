package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/ports"
)

// TrainingLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.TrainingLoader.
// expected maps each training set name the loader must expose to its sample.
func TrainingLoaderContractTest(t *testing.T, loader ports.TrainingLoader, expected map[string]domain.Sample) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load_Success", func(t *testing.T) {
		for name, sample := range expected {
			set, err := loader.Load(ctx, name)
			if err != nil {
				t.Fatalf("unexpected error loading training set %s: %v", name, err)
			}
			if len(set.Sample) != len(sample) {
				t.Fatalf("sample size mismatch for %s. got %d, want %d", name, len(set.Sample), len(sample))
			}
			for i, p := range sample {
				got := set.Sample[i]
				if !got.Input.Equal(p.Input) || !got.Output.Equal(p.Output) {
					t.Errorf("pair %d of %s: got (%q, %q), want (%q, %q)", i, name, got.Input, got.Output, p.Input, p.Output)
				}
			}
		}
	})

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := loader.Load(ctx, "non-existent-set")
		if !errors.Is(err, domain.ErrTrainingSetNotFound) {
			t.Errorf("expected ErrTrainingSetNotFound for non-existent set, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		names, err := loader.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing training sets: %v", err)
		}

		if len(names) != len(expected) {
			t.Errorf("expected %d training sets, got %d", len(expected), len(names))
		}

		lookup := make(map[string]bool)
		for _, name := range names {
			lookup[name] = true
		}
		for name := range expected {
			if !lookup[name] {
				t.Errorf("training set %s missing from list", name)
			}
		}
	})
}
