package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ostia/pkg/adapters/file"
	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/ports"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunTrainingStoreContract(t, store)
}

func TestFileStore_DefaultPath(t *testing.T) {
	store := file.New("")
	assert.Equal(t, filepath.Join(".ostia", "training"), store.BasePath)
}

func TestFileStore_ReadsHandWrittenDocuments(t *testing.T) {
	dir := t.TempDir()
	yamlDoc := `
input_alphabet: [a, b]
output_alphabet: [0, 1]
sample:
  - [ab, "01"]
  - [ba, "10"]
`
	jsonDoc := `{"separator": " ", "sample": [["the cat", "le chat"]]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "binary.yml"), []byte(yamlDoc), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "words.json"), []byte(jsonDoc), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	store := file.New(dir)
	ctx := context.Background()

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"binary", "words"}, names)

	binary, err := store.Load(ctx, "binary")
	require.NoError(t, err)
	assert.Equal(t, "binary", binary.Name)
	assert.Equal(t, []string{"0", "1"}, binary.OutputAlphabet.Strings())

	words, err := store.Load(ctx, "words")
	require.NoError(t, err)
	assert.Equal(t, []string{"le", "chat"}, words.Sample[0].Output.Strings())

	// Saving keeps the original format.
	words.Sample = append(words.Sample, domain.Pair{Input: domain.Word{"the", "dog"}, Output: domain.Word{"le", "chien"}})
	require.NoError(t, store.Save(ctx, words))
	_, err = os.Stat(filepath.Join(dir, "words.json"))
	assert.NoError(t, err)

	reloaded, err := store.Load(ctx, "words")
	require.NoError(t, err)
	assert.Len(t, reloaded.Sample, 2)
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := file.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, domain.ErrTrainingSetNotFound)
}

func TestParse_Malformed(t *testing.T) {
	_, err := file.Parse([]byte("sample: [[a]]"))
	assert.Error(t, err)

	_, err = file.Parse([]byte(""))
	assert.Error(t, err)
}
