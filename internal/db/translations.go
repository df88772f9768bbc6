package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/model"
)

const translationColumns = `
	key, source_lang, target_lang, source_text, translated_text,
	provider, method, score, verified, expires_at, created_at, updated_at`

func (s *pgStore) GetTranslation(ctx context.Context, key string) (*model.TranslationEntry, error) {
	var e model.TranslationEntry
	query := `SELECT` + translationColumns + ` FROM translations WHERE key = $1;`

	err := s.db.GetContext(ctx, &e, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to get translation")
		return nil, err
	}
	return &e, nil
}

func (s *pgStore) UpsertTranslation(ctx context.Context, e *model.TranslationEntry) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO translations
		(key, source_lang, target_lang, source_text, translated_text, provider, method, score, verified, expires_at, created_at, updated_at)
		VALUES
		($1,  $2,          $3,          $4,          $5,              $6,       $7,     $8,    $9,       $10,        now(),      now())
		ON CONFLICT (key) DO UPDATE SET
		translated_text = EXCLUDED.translated_text,
		provider        = EXCLUDED.provider,
		method          = EXCLUDED.method,
		score           = EXCLUDED.score,
		verified        = EXCLUDED.verified,
		expires_at      = EXCLUDED.expires_at,
		updated_at      = now()
		WHERE NOT translations.verified
		AND (translations.score <= EXCLUDED.score OR translations.expires_at < now());`,
		e.Key, e.SourceLang, e.TargetLang, e.SourceText, e.TranslatedText,
		e.Provider, e.Method, e.Score, e.Verified, e.ExpiresAt,
	)
	if err != nil {
		log.Error().Err(err).Str("key", e.Key).Msg("Failed to upsert translation")
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *pgStore) VerifyTranslation(ctx context.Context, key, text string) (*model.TranslationEntry, error) {
	var e model.TranslationEntry
	query := `
		UPDATE translations
		SET
		translated_text = COALESCE(NULLIF($2, ''), translated_text),
		provider        = 'editor',
		score           = 1,
		verified        = true,
		expires_at      = NULL,
		updated_at      = now()
		WHERE key = $1
		RETURNING` + translationColumns + `;`

	err := s.db.GetContext(ctx, &e, query, key, text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to verify translation")
		return nil, err
	}
	return &e, nil
}

func (s *pgStore) ListTranslations(ctx context.Context, maxScore float64, limit int) ([]model.TranslationEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	var all []model.TranslationEntry
	query := `SELECT` + translationColumns + `
		FROM translations
		WHERE NOT verified AND score <= $1
		ORDER BY score ASC, updated_at DESC
		LIMIT $2;`

	if err := s.db.SelectContext(ctx, &all, query, maxScore, limit); err != nil {
		log.Error().Err(err).Msg("Failed to list translations")
		return nil, fmt.Errorf("list translations: %w", err)
	}
	return all, nil
}

func (s *pgStore) AllTranslations(ctx context.Context) ([]model.TranslationEntry, error) {
	var all []model.TranslationEntry
	query := `SELECT` + translationColumns + ` FROM translations ORDER BY key;`

	if err := s.db.SelectContext(ctx, &all, query); err != nil {
		log.Error().Err(err).Msg("Failed to read translations")
		return nil, fmt.Errorf("read translations: %w", err)
	}
	return all, nil
}

func (s *pgStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM translations WHERE NOT verified AND expires_at IS NOT NULL AND expires_at < $1;`, now)
	if err != nil {
		log.Error().Err(err).Msg("Failed to delete expired translations")
		return 0, err
	}
	return res.RowsAffected()
}
