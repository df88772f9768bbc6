package packets

import (
	"time"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/model"
)

// TranslationResponse mirrors model.TranslationEntry but flattens times to RFC3339
type TranslationResponse struct {
	Key            string  `json:"key"`
	SourceLang     string  `json:"source_lang"`
	TargetLang     string  `json:"target_lang"`
	SourceText     string  `json:"source_text"`
	TranslatedText string  `json:"translated_text"`
	Provider       string  `json:"provider"`
	Method         string  `json:"method"`
	Score          float64 `json:"score"`
	Verified       bool    `json:"verified"`
	ExpiresAt      *string `json:"expires_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func NewTranslationResponse(e *model.TranslationEntry) TranslationResponse {
	resp := TranslationResponse{
		Key:            e.Key,
		SourceLang:     e.SourceLang,
		TargetLang:     e.TargetLang,
		SourceText:     e.SourceText,
		TranslatedText: e.TranslatedText,
		Provider:       e.Provider,
		Method:         e.Method,
		Score:          e.Score,
		Verified:       e.Verified,
		UpdatedAt:      e.UpdatedAt.Format(time.RFC3339),
	}
	if e.ExpiresAt != nil {
		s := e.ExpiresAt.Format(time.RFC3339)
		resp.ExpiresAt = &s
	}
	return resp
}

type ExportResponse struct {
	URL     string `json:"url"`
	Entries int    `json:"entries"`
}
