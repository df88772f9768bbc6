package translate

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/metrics"
)

// Result is the assembled translation of a whole text.
type Result struct {
	Text      string
	Score     float64
	Providers []string
	// Chunks is the number of chunks the source was split into; Failed of
	// them produced no candidate at all.
	Chunks int
	Failed int
}

type candidate struct {
	provider string
	text     string
	score    float64
}

type Engine struct {
	providers []Provider
	chunkSize int
}

func NewEngine(chunkSize int, providers ...Provider) *Engine {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Engine{providers: providers, chunkSize: chunkSize}
}

// Providers lists the configured provider names.
func (e *Engine) Providers() []string {
	names := make([]string, 0, len(e.providers))
	for _, p := range e.providers {
		names = append(names, p.Name())
	}
	return names
}

// Translate translates text chunk by chunk. Every provider that supports the
// pair is asked for each chunk concurrently and the best-scoring output wins.
// Chunks no provider could translate are left out of the text and count as
// zero in the length-weighted score.
func (e *Engine) Translate(ctx context.Context, text, source, target string) (*Result, error) {
	var eligible []Provider
	for _, p := range e.providers {
		if supports(p, source, target) {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w: %s→%s", ErrUnsupported, source, target)
	}

	chunks := Chunk(text, e.chunkSize)
	if len(chunks) == 0 {
		return nil, ErrNoTranslation
	}

	res := &Result{Chunks: len(chunks)}
	parts := make([]string, 0, len(chunks))
	used := map[string]bool{}
	var weighted, total float64

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		weight := float64(utf8.RuneCountInString(chunk))
		total += weight

		best, ok := e.translateChunk(ctx, eligible, chunk, source, target)
		if !ok {
			res.Failed++
			log.Warn().Int("chunk", i).Str("pair", source+"→"+target).Msg("[translate] no provider translated chunk")
			continue
		}

		parts = append(parts, best.text)
		used[best.provider] = true
		weighted += best.score * weight
	}

	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: %s→%s", ErrNoTranslation, source, target)
	}

	res.Text = strings.TrimSpace(strings.Join(parts, " "))
	if total > 0 {
		res.Score = weighted / total
	}
	for name := range used {
		res.Providers = append(res.Providers, name)
	}
	sort.Strings(res.Providers)
	return res, nil
}

func (e *Engine) translateChunk(ctx context.Context, providers []Provider, chunk, source, target string) (candidate, bool) {
	candidates := make([]candidate, len(providers))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range providers {
		g.Go(func() error {
			out, err := p.Translate(gctx, chunk, source, target)
			if err != nil {
				log.Debug().Err(err).Str("provider", p.Name()).Msg("[translate] provider failed")
				return nil
			}
			out = Sanitize(out)
			score := Score(chunk, out, target)
			metrics.TranslationScore.WithLabelValues(p.Name()).Observe(score)
			candidates[i] = candidate{provider: p.Name(), text: out, score: score}
			return nil
		})
	}
	_ = g.Wait()

	// Ties go to the provider listed first.
	best := candidate{score: -1}
	for _, c := range candidates {
		if c.text != "" && c.score > best.score {
			best = c
		}
	}
	return best, best.text != ""
}
