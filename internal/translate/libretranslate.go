package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// LibreTranslate talks to a self-hosted or public LibreTranslate instance.
// Argos models do not cover Sindhi, so the provider only serves the Arabic
// to Urdu leg of a pivot unless configured otherwise.
type LibreTranslate struct {
	endpoint  string
	apiKey    string
	languages map[string]bool
	client    *http.Client
}

func NewLibreTranslate(endpoint, apiKey string, timeout time.Duration, languages ...string) *LibreTranslate {
	if len(languages) == 0 {
		languages = []string{"ar", "ur", "en"}
	}
	set := make(map[string]bool, len(languages))
	for _, l := range languages {
		set[l] = true
	}
	return &LibreTranslate{
		endpoint:  strings.TrimSuffix(endpoint, "/"),
		apiKey:    apiKey,
		languages: set,
		client:    &http.Client{Timeout: timeout},
	}
}

func (l *LibreTranslate) Name() string { return "libretranslate" }

func (l *LibreTranslate) Supports(source, target string) bool {
	return l.languages[source] && l.languages[target]
}

func (l *LibreTranslate) Translate(ctx context.Context, text, source, target string) (string, error) {
	if !l.Supports(source, target) {
		return "", fmt.Errorf("%w: libretranslate %s→%s", ErrUnsupported, source, target)
	}

	payload := map[string]any{
		"q":      text,
		"source": source,
		"target": target,
		"format": "text",
	}
	if l.apiKey != "" {
		payload["api_key"] = l.apiKey
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: marshal payload: %v", ErrProvider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.endpoint+"/translate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: libretranslate: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", readError(l.Name(), resp)
	}

	var out struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: libretranslate: decode: %v", ErrProvider, err)
	}
	if strings.TrimSpace(out.TranslatedText) == "" {
		return "", fmt.Errorf("%w: libretranslate: no translation returned", ErrProvider)
	}
	return out.TranslatedText, nil
}
