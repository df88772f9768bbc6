package model

import "time"

// TranslationEntry is one row of the translation memory.
type TranslationEntry struct {
	Key            string     `db:"key"              json:"key"`
	SourceLang     string     `db:"source_lang"      json:"source_lang"`
	TargetLang     string     `db:"target_lang"      json:"target_lang"`
	SourceText     string     `db:"source_text"      json:"source_text"`
	TranslatedText string     `db:"translated_text"  json:"translated_text"`
	Provider       string     `db:"provider"         json:"provider"`
	Method         string     `db:"method"           json:"method"`
	Score          float64    `db:"score"            json:"score"`
	Verified       bool       `db:"verified"         json:"verified"`
	ExpiresAt      *time.Time `db:"expires_at"       json:"expires_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at"       json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"       json:"updated_at"`
}

// Expired reports whether an unverified entry has outlived its TTL.
func (e *TranslationEntry) Expired(now time.Time) bool {
	if e.Verified || e.ExpiresAt == nil {
		return false
	}
	return now.After(*e.ExpiresAt)
}
