// Package upstream fetches JSON documents from the public Quran and Hadith
// APIs and keeps their raw responses in a cache.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/cache"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/metrics"
)

var (
	ErrNotFound = errors.New("upstream resource not found")
	ErrUpstream = errors.New("upstream request failed")
)

// maxBodySize bounds a single upstream document. Full Quran editions are a few MB.
const maxBodySize = 32 << 20

type Client struct {
	http  *http.Client
	cache cache.Cache
}

func NewClient(timeout time.Duration, c cache.Cache) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		http:  &http.Client{Timeout: timeout},
		cache: c,
	}
}

// GetJSON decodes the document at url into out. When cacheKey is not empty
// the raw body is served from and stored to the cache for ttl. source labels
// metrics and logs.
func (c *Client) GetJSON(ctx context.Context, source, url, cacheKey string, ttl time.Duration, out any) error {
	if cacheKey != "" && c.cache != nil {
		if body, ok := c.cache.Get(ctx, cacheKey); ok {
			if err := json.Unmarshal(body, out); err == nil {
				return nil
			}
			log.Warn().Str("key", cacheKey).Msg("[upstream] dropping undecodable cache entry")
			c.cache.Delete(ctx, cacheKey)
		}
	}

	body, err := c.fetch(ctx, source, url)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(source, metrics.ResultFailure).Inc()
		return fmt.Errorf("%w: decode %s response: %v", ErrUpstream, source, err)
	}

	if cacheKey != "" && c.cache != nil {
		c.cache.Set(ctx, cacheKey, body, ttl)
	}
	return nil
}

// Invalidate drops a cached response.
func (c *Client) Invalidate(ctx context.Context, cacheKey string) {
	if c.cache != nil {
		c.cache.Delete(ctx, cacheKey)
	}
}

func (c *Client) fetch(ctx context.Context, source, url string) ([]byte, error) {
	start := time.Now()
	defer func() {
		metrics.UpstreamRequestSeconds.WithLabelValues(source).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(source, metrics.ResultFailure).Inc()
		log.Error().Err(err).Str("source", source).Str("url", url).Msg("[upstream] request failed")
		return nil, fmt.Errorf("%w: %s: %v", ErrUpstream, source, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		metrics.UpstreamRequestsTotal.WithLabelValues(source, metrics.ResultNotFound).Inc()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, source)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		metrics.UpstreamRequestsTotal.WithLabelValues(source, metrics.ResultFailure).Inc()
		log.Warn().Int("status", resp.StatusCode).Str("source", source).Str("url", url).Msg("[upstream] unexpected status")
		return nil, fmt.Errorf("%w: %s returned status %d", ErrUpstream, source, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(source, metrics.ResultFailure).Inc()
		return nil, fmt.Errorf("%w: read %s body: %v", ErrUpstream, source, err)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(source, metrics.ResultSuccess).Inc()
	return body, nil
}
