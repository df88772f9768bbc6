package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/model"
)

func entry(key string, score float64, expires *time.Time) *model.TranslationEntry {
	return &model.TranslationEntry{
		Key:            key,
		SourceLang:     "ur",
		TargetLang:     "sd",
		SourceText:     "متن " + key,
		TranslatedText: "ترجمو " + key,
		Provider:       "google",
		Method:         "translated",
		Score:          score,
		ExpiresAt:      expires,
	}
}

// exerciseStore runs the same contract against every Store implementation.
func exerciseStore(t *testing.T, store Store) {
	ctx := context.Background()
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	_, err := store.GetTranslation(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	written, err := store.UpsertTranslation(ctx, entry("a", 0.6, &future))
	require.NoError(t, err)
	assert.True(t, written)

	lower := entry("a", 0.4, &future)
	lower.TranslatedText = "worse"
	written, err = store.UpsertTranslation(ctx, lower)
	require.NoError(t, err)
	assert.False(t, written, "lower score must not replace a live entry")

	got, err := store.GetTranslation(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "ترجمو a", got.TranslatedText)
	assert.InDelta(t, 0.6, got.Score, 1e-9)

	higher := entry("a", 0.9, &future)
	higher.TranslatedText = "better"
	written, err = store.UpsertTranslation(ctx, higher)
	require.NoError(t, err)
	assert.True(t, written)

	_, err = store.UpsertTranslation(ctx, entry("b", 0.2, &past))
	require.NoError(t, err)
	written, err = store.UpsertTranslation(ctx, entry("b", 0.1, &future))
	require.NoError(t, err)
	assert.True(t, written, "expired entries are replaced regardless of score")

	_, err = store.UpsertTranslation(ctx, entry("c", 0.3, &future))
	require.NoError(t, err)

	queue, err := store.ListTranslations(ctx, 0.5, 10)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, "b", queue[0].Key)
	assert.Equal(t, "c", queue[1].Key)

	verified, err := store.VerifyTranslation(ctx, "c", "درست ترجمو")
	require.NoError(t, err)
	assert.True(t, verified.Verified)
	assert.Equal(t, "درست ترجمو", verified.TranslatedText)
	assert.Nil(t, verified.ExpiresAt)

	written, err = store.UpsertTranslation(ctx, entry("c", 0.99, &future))
	require.NoError(t, err)
	assert.False(t, written, "verified entries are never overwritten")

	_, err = store.VerifyTranslation(ctx, "missing", "x")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.UpsertTranslation(ctx, entry("d", 0.5, &past))
	require.NoError(t, err)
	n, err := store.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	all, err := store.AllTranslations(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{all[0].Key, all[1].Key, all[2].Key})
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestPostgresStore(t *testing.T) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, InitTestDB("../../migrations"))
	_, err := DB.Exec(`TRUNCATE translations;`)
	require.NoError(t, err)

	exerciseStore(t, TestStore)
}

func TestRunMigrationsWithMissingPath(t *testing.T) {
	err := RunMigrations("./does-not-exist")
	assert.NoError(t, err, "an empty migrations directory is valid")
}
