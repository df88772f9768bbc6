// Package translate turns Urdu and Arabic hadith text into Sindhi using
// several free machine translation services and keeps the best output.
package translate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/metrics"
)

var (
	ErrNoTranslation = errors.New("no translation produced")
	ErrProvider      = errors.New("translation provider failed")
	ErrUnsupported   = errors.New("language pair not supported")
)

type Provider interface {
	Name() string
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Supporter is implemented by providers that only handle some language pairs.
type Supporter interface {
	Supports(source, target string) bool
}

func supports(p Provider, source, target string) bool {
	if s, ok := p.(Supporter); ok {
		return s.Supports(source, target)
	}
	return true
}

// limited spaces out calls to a provider.
type limited struct {
	Provider
	limiter *rate.Limiter
}

// Limit wraps p so that it is called at most perSecond times a second.
func Limit(p Provider, perSecond float64) Provider {
	return &limited{
		Provider: p,
		limiter:  rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

func (l *limited) Translate(ctx context.Context, text, source, target string) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", err
	}
	out, err := l.Provider.Translate(ctx, text, source, target)
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultFailure
	}
	metrics.TranslationCallsTotal.WithLabelValues(l.Name(), result).Inc()
	return out, err
}

func (l *limited) Supports(source, target string) bool {
	return supports(l.Provider, source, target)
}

func readError(name string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%w: %s returned status %d: %s", ErrProvider, name, resp.StatusCode, strings.TrimSpace(string(body)))
}
