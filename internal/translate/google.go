package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Google calls the keyless translate_a/single endpoint used by browser
// extensions.
type Google struct {
	endpoint string
	client   *http.Client
}

func NewGoogle(endpoint string, timeout time.Duration) *Google {
	return &Google{endpoint: endpoint, client: &http.Client{Timeout: timeout}}
}

func (g *Google) Name() string { return "google" }

func (g *Google) Translate(ctx context.Context, text, source, target string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", source)
	params.Set("tl", target)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: google: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", readError(g.Name(), resp)
	}

	// [[["translated","source",...],...],...]
	var result []any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: google: decode: %v", ErrProvider, err)
	}
	if len(result) == 0 {
		return "", fmt.Errorf("%w: google: empty response", ErrProvider)
	}
	segments, ok := result[0].([]any)
	if !ok {
		return "", fmt.Errorf("%w: google: unexpected response format", ErrProvider)
	}

	var b strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			b.WriteString(s)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: google: no translation returned", ErrProvider)
	}
	return b.String(), nil
}
