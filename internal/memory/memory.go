// Package memory is the translation memory: machine and editor translations
// keyed by the content they translate, with a confidence score and a TTL for
// entries nobody has verified.
package memory

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zeebo/blake3"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/cache"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/db"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/model"
)

const cachePrefix = "tm:"

// Memory reads through a cache in front of a db.Store.
type Memory struct {
	store db.Store
	cache cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

func New(store db.Store, c cache.Cache, ttl time.Duration) *Memory {
	return &Memory{store: store, cache: c, ttl: ttl, now: time.Now}
}

// Key addresses text translated from source to target. Whitespace differences
// in text do not change the key.
func Key(source, target, text string) string {
	sum := blake3.Sum256([]byte(source + "|" + target + "|" + normalize(text)))
	return hex.EncodeToString(sum[:])
}

func normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Lookup returns the live entry for text, if any. Expired unverified entries
// are treated as misses.
func (m *Memory) Lookup(ctx context.Context, source, target, text string) (*model.TranslationEntry, bool) {
	key := Key(source, target, text)
	now := m.now()

	if raw, ok := m.cache.Get(ctx, cachePrefix+key); ok {
		var e model.TranslationEntry
		if err := json.Unmarshal(raw, &e); err == nil && !e.Expired(now) {
			return &e, true
		}
		m.cache.Delete(ctx, cachePrefix+key)
	}

	e, err := m.store.GetTranslation(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			log.Warn().Err(err).Str("key", key).Msg("[memory] lookup failed")
		}
		return nil, false
	}
	if e.Expired(now) {
		log.Debug().Str("key", key).Msg("[memory] entry expired")
		return nil, false
	}
	m.fill(ctx, e)
	return e, true
}

// Remember stores a machine translation of text. An existing entry survives
// when it is verified or scored higher and still live.
func (m *Memory) Remember(ctx context.Context, source, target, text, translated, provider, method string, score float64) (*model.TranslationEntry, bool, error) {
	e := &model.TranslationEntry{
		Key:            Key(source, target, text),
		SourceLang:     source,
		TargetLang:     target,
		SourceText:     normalize(text),
		TranslatedText: translated,
		Provider:       provider,
		Method:         method,
		Score:          score,
	}
	if m.ttl > 0 {
		exp := m.now().Add(m.ttl)
		e.ExpiresAt = &exp
	}

	written, err := m.store.UpsertTranslation(ctx, e)
	if err != nil {
		return nil, false, err
	}
	if written {
		m.cache.Delete(ctx, cachePrefix+e.Key)
		log.Debug().
			Str("key", e.Key).
			Str("provider", provider).
			Float64("score", score).
			Msg("[memory] stored translation")
	}
	return e, written, nil
}

// Verify pins key to text (or to its current translation when text is empty)
// with full confidence and no expiry.
func (m *Memory) Verify(ctx context.Context, key, text string) (*model.TranslationEntry, error) {
	e, err := m.store.VerifyTranslation(ctx, key, strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}
	m.cache.Delete(ctx, cachePrefix+key)
	m.fill(ctx, e)
	return e, nil
}

// List returns unverified entries scored at most maxScore, lowest first.
func (m *Memory) List(ctx context.Context, maxScore float64, limit int) ([]model.TranslationEntry, error) {
	return m.store.ListTranslations(ctx, maxScore, limit)
}

func (m *Memory) All(ctx context.Context) ([]model.TranslationEntry, error) {
	return m.store.AllTranslations(ctx)
}

// Purge deletes expired entries from the store.
func (m *Memory) Purge(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx, m.now())
}

func (m *Memory) fill(ctx context.Context, e *model.TranslationEntry) {
	raw, err := json.Marshal(e)
	if err != nil {
		return
	}
	var ttl time.Duration
	if e.ExpiresAt != nil {
		ttl = e.ExpiresAt.Sub(m.now())
		if ttl <= 0 {
			return
		}
	}
	m.cache.Set(ctx, cachePrefix+e.Key, raw, ttl)
}
