package curated

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

var ErrNotFound = errors.New("curated translation not found")

// Translation is an editor-reviewed Sindhi rendering of one hadith.
type Translation struct {
	Collection string `json:"collection"`
	Number     int    `json:"number"`
	Sindhi     string `json:"sindhi"`
	Reviewer   string `json:"reviewer,omitempty"`
}

// Repository serves curated translations loaded from a JSON file.
type Repository struct {
	byKey map[string]Translation
}

// Load reads the curated file at path. A missing file yields an empty
// repository.
func Load(path string) (*Repository, error) {
	r := &Repository{byKey: map[string]Translation{}}
	if path == "" {
		return r, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("path", path).Msg("[curated] no curated translations file")
		return r, nil
	}
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Hadiths []Translation `json:"hadiths"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal curated JSON: %w", err)
	}

	for i, t := range wrapper.Hadiths {
		if t.Collection == "" || t.Number < 1 || strings.TrimSpace(t.Sindhi) == "" {
			return nil, fmt.Errorf("curated entry %d is incomplete", i)
		}
		r.byKey[key(t.Collection, t.Number)] = t
	}

	log.Info().Int("count", len(r.byKey)).Msg("[curated] loaded translations")
	return r, nil
}

func key(collection string, number int) string {
	return fmt.Sprintf("%s/%d", strings.ToLower(collection), number)
}

// Get returns the curated translation for a hadith.
func (r *Repository) Get(collection string, number int) (*Translation, error) {
	t, ok := r.byKey[key(collection, number)]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (r *Repository) Len() int {
	return len(r.byKey)
}
