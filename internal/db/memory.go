package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/model"
)

// memStore keeps the translation memory in process. It backs deployments
// without DATABASE_URL and the tests.
type memStore struct {
	mu      sync.RWMutex
	entries map[string]model.TranslationEntry
	now     func() time.Time
}

var _ Store = (*memStore)(nil)

func NewMemoryStore() Store {
	return &memStore{entries: map[string]model.TranslationEntry{}, now: time.Now}
}

func (s *memStore) GetTranslation(_ context.Context, key string) (*model.TranslationEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (s *memStore) UpsertTranslation(_ context.Context, e *model.TranslationEntry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	existing, ok := s.entries[e.Key]
	if ok {
		if existing.Verified {
			return false, nil
		}
		if existing.Score > e.Score && !existing.Expired(now) {
			return false, nil
		}
	}

	row := *e
	row.UpdatedAt = now
	row.CreatedAt = now
	if ok {
		row.CreatedAt = existing.CreatedAt
		row.SourceText = existing.SourceText
	}
	s.entries[e.Key] = row
	return true, nil
}

func (s *memStore) VerifyTranslation(_ context.Context, key, text string) (*model.TranslationEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	if text != "" {
		e.TranslatedText = text
	}
	e.Provider = "editor"
	e.Score = 1
	e.Verified = true
	e.ExpiresAt = nil
	e.UpdatedAt = s.now()
	s.entries[key] = e
	return &e, nil
}

func (s *memStore) ListTranslations(_ context.Context, maxScore float64, limit int) ([]model.TranslationEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	s.mu.RLock()
	var out []model.TranslationEntry
	for _, e := range s.entries {
		if !e.Verified && e.Score <= maxScore {
			out = append(out, e)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score < out[j].Score
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) AllTranslations(_ context.Context) ([]model.TranslationEntry, error) {
	s.mu.RLock()
	out := make([]model.TranslationEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *memStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for k, e := range s.entries {
		if e.Expired(now) {
			delete(s.entries, k)
			n++
		}
	}
	return n, nil
}
