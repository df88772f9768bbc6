package curated

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "curated.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAndGet(t *testing.T) {
	path := writeFile(t, `{"hadiths":[{"collection":"Bukhari","number":1,"sindhi":"عملن جو دارومدار نيتن تي آهي"}]}`)

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	got, err := r.Get("bukhari", 1)
	require.NoError(t, err)
	assert.Equal(t, "عملن جو دارومدار نيتن تي آهي", got.Sindhi)

	_, err = r.Get("bukhari", 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadMissingFile(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestLoadRejectsIncompleteEntries(t *testing.T) {
	_, err := Load(writeFile(t, `{"hadiths":[{"collection":"muslim","number":0,"sindhi":"x"}]}`))
	assert.Error(t, err)

	_, err = Load(writeFile(t, `{"hadiths":`))
	assert.Error(t, err)
}

func TestCuratedDataFileLoads(t *testing.T) {
	r, err := Load("../../data/curated_hadith.json")
	require.NoError(t, err)
	_, err = r.Get("bukhari", 1)
	assert.NoError(t, err)
}
