package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/config"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/notify"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/storage"
)

func TestNewWithoutInfrastructure(t *testing.T) {
	t.Setenv("CURATED_HADITH_PATH", "../../data/curated_hadith.json")
	t.Setenv("EXPORT_DIR", filepath.Join(t.TempDir(), "exports"))
	cfg, err := config.Load()
	require.NoError(t, err)

	a, err := New(context.Background(), cfg, "test")
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, notify.Nop{}, a.Publisher)
	assert.IsType(t, &storage.LocalStorage{}, a.Storage)
	assert.Equal(t, []string{"google", "mymemory"}, a.Engine.Providers())
}

func TestNewEngineAddsLibreTranslate(t *testing.T) {
	t.Setenv("LIBRETRANSLATE_URL", "http://localhost:5000/translate")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"google", "mymemory", "libretranslate"}, NewEngine(cfg).Providers())
}
