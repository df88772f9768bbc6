// exposes a Store interface for the translation memory
package db

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/model"
)

var ErrNotFound = errors.New("translation not found")

type Store interface {
	GetTranslation(ctx context.Context, key string) (*model.TranslationEntry, error)
	// UpsertTranslation stores e unless the existing row is verified, or is
	// unexpired and scored higher. It reports whether the row was written.
	UpsertTranslation(ctx context.Context, e *model.TranslationEntry) (bool, error)
	VerifyTranslation(ctx context.Context, key, text string) (*model.TranslationEntry, error)
	ListTranslations(ctx context.Context, maxScore float64, limit int) ([]model.TranslationEntry, error)
	AllTranslations(ctx context.Context) ([]model.TranslationEntry, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(db *sqlx.DB) Store {
	return &pgStore{db: db}
}
