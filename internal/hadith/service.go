// Package hadith fetches hadith texts and resolves their Sindhi translation
// through a chain of increasingly speculative sources.
package hadith

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/curated"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/metrics"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/model"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/translate"
)

var (
	ErrInvalidNumber = errors.New("invalid hadith number")
	ErrNotFound      = errors.New("hadith not found")
)

// Resolution sources, in chain order.
const (
	SourceCurated    = "curated"
	SourceMemory     = "memory"
	SourceTranslated = "translated"
	SourcePivot      = "pivot"
	SourceMachine    = "machine"
)

const (
	NoteVerified   = "تصديق ٿيل ذريعو"
	NoteFromUrdu   = "اردو مان ترجمو"
	NoteArabicOnly = "عربي متن"
)

type Fetcher interface {
	GetJSON(ctx context.Context, source, url, cacheKey string, ttl time.Duration, out any) error
}

type Translator interface {
	Translate(ctx context.Context, text, source, target string) (*translate.Result, error)
}

type Memory interface {
	Lookup(ctx context.Context, source, target, text string) (*model.TranslationEntry, bool)
	Remember(ctx context.Context, source, target, text, translated, provider, method string, score float64) (*model.TranslationEntry, bool, error)
}

type Curated interface {
	Get(collection string, number int) (*curated.Translation, error)
}

type Publisher interface {
	TranslationStored(ctx context.Context, e *model.TranslationEntry)
}

type Config struct {
	AhadithURL string
	GadingURL  string
	TTL        time.Duration
	// MinScore is the quality score a translation needs to end the chain.
	MinScore float64
}

type Service struct {
	fetcher    Fetcher
	translator Translator
	memory     Memory
	curated    Curated
	publisher  Publisher

	ahadithURL string
	gadingURL  string
	ttl        time.Duration
	minScore   float64
}

func NewService(cfg Config, fetcher Fetcher, translator Translator, memory Memory, cur Curated, pub Publisher) *Service {
	return &Service{
		fetcher:    fetcher,
		translator: translator,
		memory:     memory,
		curated:    cur,
		publisher:  pub,
		ahadithURL: strings.TrimSuffix(cfg.AhadithURL, "/"),
		gadingURL:  strings.TrimSuffix(cfg.GadingURL, "/"),
		ttl:        cfg.TTL,
		minScore:   cfg.MinScore,
	}
}

// ParseNumber validates a hadith number.
func ParseNumber(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	return n, nil
}

// candidate is one Sindhi rendering proposed by a stage of the chain.
type candidate struct {
	source   string
	provider string
	text     string
	score    float64
	verified bool
	// method is the stage that produced a remembered translation.
	method string

	// what the translation memory keys the candidate by
	fromLang string
	fromText string
}

type stage struct {
	source string
	run    func(ctx context.Context, text *model.HadithText) (*candidate, error)
}

func (s *Service) stages(collection string, number int) []stage {
	return []stage{
		{SourceCurated, func(context.Context, *model.HadithText) (*candidate, error) {
			return s.fromCurated(collection, number)
		}},
		{SourceMemory, s.fromMemory},
		{SourceTranslated, s.fromUrdu},
		{SourcePivot, s.viaUrdu},
		{SourceMachine, s.direct},
	}
}

// Get returns the hadith with the best Sindhi translation the chain can
// produce. Translation failures never fail the request; Sindhi is null when
// nothing usable came out.
func (s *Service) Get(ctx context.Context, collection string, number int) (*model.Hadith, error) {
	collection = strings.ToLower(strings.TrimSpace(collection))
	if number < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNumber, number)
	}

	text, err := s.Text(ctx, collection, number)
	if err != nil {
		return nil, err
	}

	out := &model.Hadith{
		Collection: collection,
		Number:     number,
		Arabic:     optional(text.Arabic),
		Urdu:       optional(text.Urdu),
		Meta:       model.HadithMeta{Source: text.Source, TextSource: text.Source},
	}

	best := s.resolve(ctx, collection, number, text)
	if best != nil {
		out.Sindhi = &best.text
		out.Meta.Source = best.source
		out.Meta.Provider = best.provider
		out.Meta.Score = best.score
	} else if text.Urdu != "" {
		out.Meta.Source = SourceTranslated
	}
	out.Meta.Note = note(out.Meta.Source, best)

	metrics.HadithResolutionsTotal.WithLabelValues(out.Meta.Source).Inc()
	return out, nil
}

func (s *Service) resolve(ctx context.Context, collection string, number int, text *model.HadithText) *candidate {
	var best *candidate
	for _, st := range s.stages(collection, number) {
		if ctx.Err() != nil {
			break
		}
		c, err := st.run(ctx, text)
		if err != nil {
			log.Debug().Err(err).
				Str("stage", st.source).
				Str("collection", collection).
				Int("number", number).
				Msg("[hadith] stage produced nothing")
			continue
		}
		if c == nil || c.text == "" {
			continue
		}

		if c.verified || c.score >= s.minScore {
			log.Info().
				Str("stage", c.source).
				Str("provider", c.provider).
				Float64("score", c.score).
				Str("collection", collection).
				Int("number", number).
				Msg("[hadith] translation accepted")
			s.remember(ctx, c)
			return c
		}
		if best == nil || c.score > best.score {
			best = c
		}
	}

	if best != nil {
		log.Warn().
			Str("stage", best.source).
			Float64("score", best.score).
			Str("collection", collection).
			Int("number", number).
			Msg("[hadith] no translation reached the threshold, using best candidate")
		s.remember(ctx, best)
	}
	return best
}

// remember writes machine translations to the memory so editors can review
// them and later requests skip the engines.
func (s *Service) remember(ctx context.Context, c *candidate) {
	if s.memory == nil || c.fromText == "" {
		return
	}
	switch c.source {
	case SourceTranslated, SourcePivot, SourceMachine:
	default:
		return
	}

	e, written, err := s.memory.Remember(ctx, c.fromLang, "sd", c.fromText, c.text, c.provider, c.source, c.score)
	if err != nil {
		log.Error().Err(err).Msg("[hadith] failed to store translation")
		return
	}
	if written && s.publisher != nil {
		s.publisher.TranslationStored(ctx, e)
	}
}

func (s *Service) fromCurated(collection string, number int) (*candidate, error) {
	if s.curated == nil {
		return nil, nil
	}
	t, err := s.curated.Get(collection, number)
	if err != nil {
		return nil, err
	}
	return &candidate{source: SourceCurated, provider: "editor", text: t.Sindhi, score: 1, verified: true}, nil
}

func (s *Service) fromMemory(ctx context.Context, text *model.HadithText) (*candidate, error) {
	if s.memory == nil {
		return nil, nil
	}
	// Urdu keyed entries come from better translations, so they are tried first.
	lookups := []struct{ lang, text string }{{"ur", text.Urdu}, {"ar", text.Arabic}}
	for _, l := range lookups {
		if l.text == "" {
			continue
		}
		e, ok := s.memory.Lookup(ctx, l.lang, "sd", l.text)
		if !ok {
			continue
		}
		return &candidate{
			source:   SourceMemory,
			provider: e.Provider,
			text:     e.TranslatedText,
			score:    e.Score,
			verified: e.Verified,
			method:   e.Method,
		}, nil
	}
	return nil, nil
}

func (s *Service) fromUrdu(ctx context.Context, text *model.HadithText) (*candidate, error) {
	if text.Urdu == "" {
		return nil, nil
	}
	res, err := s.translator.Translate(ctx, text.Urdu, "ur", "sd")
	if err != nil {
		return nil, err
	}
	return &candidate{
		source:   SourceTranslated,
		provider: strings.Join(res.Providers, ","),
		text:     res.Text,
		score:    res.Score,
		fromLang: "ur",
		fromText: text.Urdu,
	}, nil
}

// viaUrdu pivots Arabic through a machine Urdu translation. The pivot is only
// as good as its weaker hop.
func (s *Service) viaUrdu(ctx context.Context, text *model.HadithText) (*candidate, error) {
	if text.Arabic == "" {
		return nil, nil
	}
	urdu, err := s.translator.Translate(ctx, text.Arabic, "ar", "ur")
	if err != nil {
		return nil, fmt.Errorf("arabic to urdu: %w", err)
	}
	sindhi, err := s.translator.Translate(ctx, urdu.Text, "ur", "sd")
	if err != nil {
		return nil, fmt.Errorf("urdu to sindhi: %w", err)
	}
	return &candidate{
		source:   SourcePivot,
		provider: strings.Join(mergeNames(urdu.Providers, sindhi.Providers), ","),
		text:     sindhi.Text,
		score:    min(urdu.Score, sindhi.Score),
		fromLang: "ar",
		fromText: text.Arabic,
	}, nil
}

func (s *Service) direct(ctx context.Context, text *model.HadithText) (*candidate, error) {
	if text.Arabic == "" {
		return nil, nil
	}
	res, err := s.translator.Translate(ctx, text.Arabic, "ar", "sd")
	if err != nil {
		return nil, err
	}
	return &candidate{
		source:   SourceMachine,
		provider: strings.Join(res.Providers, ","),
		text:     res.Text,
		score:    res.Score,
		fromLang: "ar",
		fromText: text.Arabic,
	}, nil
}

func mergeNames(a, b []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, n := range append(append([]string{}, a...), b...) {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

func note(source string, c *candidate) string {
	switch source {
	case TextSourceAhadith, SourceCurated:
		return NoteVerified
	case SourceTranslated, SourcePivot:
		return NoteFromUrdu
	case SourceMemory:
		if c.verified {
			return NoteVerified
		}
		return note(c.method, nil)
	}
	return NoteArabicOnly
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
