package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type MyMemory struct {
	endpoint string
	email    string
	client   *http.Client
}

func NewMyMemory(endpoint, email string, timeout time.Duration) *MyMemory {
	return &MyMemory{endpoint: endpoint, email: email, client: &http.Client{Timeout: timeout}}
}

func (m *MyMemory) Name() string { return "mymemory" }

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string  `json:"translatedText"`
		Match          float64 `json:"match"`
	} `json:"responseData"`
	// MyMemory reports the status as a number or as a quoted string.
	ResponseStatus  json.RawMessage `json:"responseStatus"`
	ResponseDetails string          `json:"responseDetails"`
}

func (r *myMemoryResponse) status() int {
	n, err := strconv.Atoi(strings.Trim(string(r.ResponseStatus), `"`))
	if err != nil {
		return 0
	}
	return n
}

func (m *MyMemory) Translate(ctx context.Context, text, source, target string) (string, error) {
	params := url.Values{}
	params.Set("q", text)
	params.Set("langpair", source+"|"+target)
	if m.email != "" {
		params.Set("de", m.email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: mymemory: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", readError(m.Name(), resp)
	}

	var data myMemoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("%w: mymemory: decode: %v", ErrProvider, err)
	}
	if status := data.status(); status != http.StatusOK {
		return "", fmt.Errorf("%w: mymemory: %s (%d)", ErrProvider, data.ResponseDetails, status)
	}

	out := data.ResponseData.TranslatedText
	// Quota exhaustion is reported inside a successful response body.
	if strings.HasPrefix(strings.ToUpper(out), "MYMEMORY WARNING") {
		return "", fmt.Errorf("%w: mymemory: quota exhausted", ErrProvider)
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("%w: mymemory: no translation returned", ErrProvider)
	}
	return out, nil
}
