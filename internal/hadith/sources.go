package hadith

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/model"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/upstream"
)

const (
	TextSourceAhadith = "ahadith"
	TextSourceGading  = "gading"
)

// ahadith.co.uk names some collections differently from gading.dev.
var ahadithSlugs = map[string]string{
	"bukhari":  "bukhari",
	"muslim":   "muslim",
	"tirmidhi": "tirmidhi",
	"abudawud": "abu-dawood",
	"nasai":    "nasai",
	"ibnmajah": "ibn-majah",
	"malik":    "malik",
	"ahmad":    "ahmad",
}

// AhadithSlug maps a collection id to its ahadith.co.uk name. Unknown ids
// pass through unchanged.
func AhadithSlug(collection string) string {
	if slug, ok := ahadithSlugs[strings.ToLower(collection)]; ok {
		return slug
	}
	return collection
}

type gadingBook struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Available int    `json:"available"`
}

// Collections lists the hadith books known to gading.dev.
func (s *Service) Collections(ctx context.Context) ([]model.HadithCollection, error) {
	var resp struct {
		Data []gadingBook `json:"data"`
	}
	if err := s.fetcher.GetJSON(ctx, TextSourceGading, s.gadingURL+"/books", "hadith:collections", s.ttl, &resp); err != nil {
		return nil, fmt.Errorf("fetch hadith collections: %w", err)
	}

	out := make([]model.HadithCollection, 0, len(resp.Data))
	for _, b := range resp.Data {
		out = append(out, model.HadithCollection{ID: b.ID, Name: b.Name, Available: b.Available})
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func (s *Service) fetchAhadith(ctx context.Context, collection string, number int) (*model.HadithText, error) {
	slug := AhadithSlug(collection)
	url := fmt.Sprintf("%s/%s/%d?lang=ara,urd", s.ahadithURL, slug, number)

	var resp struct {
		Data *struct {
			HadithArabic string `json:"hadith_arabic"`
			TextArabic   string `json:"text_arabic"`
			HadithUrdu   string `json:"hadith_urdu"`
			TextUrdu     string `json:"text_urdu"`
		} `json:"data"`
	}
	key := fmt.Sprintf("hadith:%s:%s:%d", TextSourceAhadith, slug, number)
	if err := s.fetcher.GetJSON(ctx, TextSourceAhadith, url, key, s.ttl, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, upstream.ErrNotFound
	}
	return &model.HadithText{
		Arabic: firstNonEmpty(resp.Data.HadithArabic, resp.Data.TextArabic),
		Urdu:   firstNonEmpty(resp.Data.HadithUrdu, resp.Data.TextUrdu),
		Source: TextSourceAhadith,
	}, nil
}

func (s *Service) fetchGading(ctx context.Context, collection string, number int) (*model.HadithText, error) {
	url := fmt.Sprintf("%s/books/%s/%d", s.gadingURL, collection, number)

	var resp struct {
		Data *struct {
			Contents struct {
				Arab string `json:"arab"`
			} `json:"contents"`
		} `json:"data"`
	}
	key := fmt.Sprintf("hadith:%s:%s:%d", TextSourceGading, collection, number)
	if err := s.fetcher.GetJSON(ctx, TextSourceGading, url, key, s.ttl, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, upstream.ErrNotFound
	}
	return &model.HadithText{
		Arabic: strings.TrimSpace(resp.Data.Contents.Arab),
		Source: TextSourceGading,
	}, nil
}

// Text fetches the hadith from both text providers at once. ahadith.co.uk
// wins when it has the Arabic text; gading.dev fills in otherwise.
func (s *Service) Text(ctx context.Context, collection string, number int) (*model.HadithText, error) {
	var (
		ahadith, gading       *model.HadithText
		ahadithErr, gadingErr error
		g                     errgroup.Group
	)
	g.Go(func() error {
		ahadith, ahadithErr = s.fetchAhadith(ctx, collection, number)
		return nil
	})
	g.Go(func() error {
		gading, gadingErr = s.fetchGading(ctx, collection, number)
		return nil
	})
	_ = g.Wait()

	logFetchError(TextSourceAhadith, collection, number, ahadithErr)
	logFetchError(TextSourceGading, collection, number, gadingErr)

	switch {
	case ahadith != nil && ahadith.Arabic != "":
		return ahadith, nil
	case gading != nil && gading.Arabic != "":
		if ahadith != nil {
			gading.Urdu = ahadith.Urdu
		}
		return gading, nil
	case ahadith != nil && ahadith.Urdu != "":
		return ahadith, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if isNotFound(ahadithErr) && isNotFound(gadingErr) || ahadith != nil || gading != nil {
		return nil, fmt.Errorf("%s %d: %w", collection, number, ErrNotFound)
	}
	// Upstream outages read as a missing hadith to callers; the cause stays
	// in the chain for logging.
	return nil, fmt.Errorf("%s %d: %w: %w", collection, number, ErrNotFound, errors.Join(ahadithErr, gadingErr))
}

func isNotFound(err error) bool {
	return err == nil || errors.Is(err, upstream.ErrNotFound)
}

func logFetchError(source, collection string, number int, err error) {
	if err == nil || errors.Is(err, upstream.ErrNotFound) || errors.Is(err, context.Canceled) {
		return
	}
	log.Warn().Err(err).
		Str("source", source).
		Str("collection", collection).
		Int("number", number).
		Msg("[hadith] text source failed")
}
