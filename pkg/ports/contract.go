package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ostia/pkg/domain"
)

// RunTrainingStoreContract runs a suite of tests to verify that a TrainingStore implementation
// adheres to the defined interface contract.
func RunTrainingStoreContract(t *testing.T, store TrainingStore) {
	ctx := context.Background()
	name := "contract-test-" + time.Now().Format("20060102150405")

	newSet := func(name string) *domain.TrainingSet {
		return &domain.TrainingSet{
			Name:           name,
			InputAlphabet:  domain.ParseAlphabet("a", "b"),
			OutputAlphabet: domain.ParseAlphabet("0", "1"),
			Sample:         domain.ParseSample("ab", "01", "ba", "10", "", ""),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		set := newSet(name)
		require.NoError(t, store.Save(ctx, set), "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, name, loaded.Name)
		assert.Equal(t, set.InputAlphabet, loaded.InputAlphabet)
		assert.Equal(t, set.OutputAlphabet, loaded.OutputAlphabet)
		require.Len(t, loaded.Sample, len(set.Sample))
		for i, p := range set.Sample {
			assert.True(t, p.Input.Equal(loaded.Sample[i].Input), "pair %d input", i)
			assert.True(t, p.Output.Equal(loaded.Sample[i].Output), "pair %d output", i)
		}
	})

	t.Run("Save Isolates Caller", func(t *testing.T) {
		set := newSet(name + "-isolated")
		require.NoError(t, store.Save(ctx, set))
		defer func() { _ = store.Delete(ctx, set.Name) }()

		set.Sample[0].Output[0] = "x"
		loaded, err := store.Load(ctx, set.Name)
		require.NoError(t, err)
		assert.Equal(t, "01", loaded.Sample[0].Output.String())
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrTrainingSetNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, newSet(name)))
		require.NoError(t, store.Delete(ctx, name), "Delete should not return error")

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrTrainingSetNotFound, "Load after Delete should return ErrTrainingSetNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		require.NoError(t, store.Save(ctx, newSet(id1)))
		require.NoError(t, store.Save(ctx, newSet(id2)))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
	})
}
