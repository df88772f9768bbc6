// Package quran serves the surah index, single surahs with their Sindhi
// translation and the thirty Juz.
package quran

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/model"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/upstream"
)

var (
	ErrInvalidNumber = errors.New("invalid number")
	ErrNotFound      = errors.New("not found")
)

const (
	arabicEdition = "quran-uthmani"
	sindhiEdition = "sd.amroti"
	// quran.com resource id of the Sindhi translation.
	sindhiTranslationID = 238
	juzPageSize         = 300
	// A juz never spans more than a few pages; the bound guards against a
	// pagination loop.
	maxJuzPages = 10
)

type Fetcher interface {
	GetJSON(ctx context.Context, source, url, cacheKey string, ttl time.Duration, out any) error
}

type Service struct {
	fetcher    Fetcher
	alQuranURL string
	quranCom   string
	ttl        time.Duration
}

func NewService(fetcher Fetcher, alQuranURL, quranComURL string, ttl time.Duration) *Service {
	return &Service{
		fetcher:    fetcher,
		alQuranURL: strings.TrimSuffix(alQuranURL, "/"),
		quranCom:   strings.TrimSuffix(quranComURL, "/"),
		ttl:        ttl,
	}
}

type alQuranSurahMeta struct {
	Number                 int    `json:"number"`
	Name                   string `json:"name"`
	EnglishName            string `json:"englishName"`
	EnglishNameTranslation string `json:"englishNameTranslation"`
	NumberOfAyahs          int    `json:"numberOfAyahs"`
	RevelationType         string `json:"revelationType"`
}

type alQuranAyah struct {
	Number        int    `json:"number"`
	NumberInSurah int    `json:"numberInSurah"`
	Text          string `json:"text"`
}

type alQuranEdition struct {
	alQuranSurahMeta
	Ayahs   []alQuranAyah `json:"ayahs"`
	Edition struct {
		Identifier string `json:"identifier"`
	} `json:"edition"`
}

// Chapters returns the surah index.
func (s *Service) Chapters(ctx context.Context) ([]model.Chapter, error) {
	var resp struct {
		Data []alQuranSurahMeta `json:"data"`
	}
	if err := s.fetcher.GetJSON(ctx, "alquran", s.alQuranURL+"/surah", "quran:chapters", s.ttl, &resp); err != nil {
		return nil, fmt.Errorf("fetch surah list: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("fetch surah list: %w", upstream.ErrUpstream)
	}

	out := make([]model.Chapter, 0, len(resp.Data))
	for _, m := range resp.Data {
		out = append(out, model.Chapter{
			Chapter:     m.Number,
			Name:        m.Name,
			EnglishName: m.EnglishName,
			AyahCount:   m.NumberOfAyahs,
		})
	}
	return out, nil
}

// ParseSurahNumber validates a surah path parameter.
func ParseSurahNumber(raw string) (int, error) {
	return parseBounded(raw, SurahCount)
}

// ParseJuzNumber validates a juz path parameter.
func ParseJuzNumber(raw string) (int, error) {
	return parseBounded(raw, JuzCount)
}

func parseBounded(raw string, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > max {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	return n, nil
}

// Surah returns the Arabic text of surah n with the Sindhi translation of
// each ayah merged in.
func (s *Service) Surah(ctx context.Context, n int) (*model.Surah, error) {
	if n < 1 || n > SurahCount {
		return nil, fmt.Errorf("%w: surah %d", ErrInvalidNumber, n)
	}

	url := fmt.Sprintf("%s/surah/%d/editions/%s,%s", s.alQuranURL, n, arabicEdition, sindhiEdition)
	var resp struct {
		Data []alQuranEdition `json:"data"`
	}
	if err := s.fetcher.GetJSON(ctx, "alquran", url, fmt.Sprintf("quran:surah:%d", n), s.ttl, &resp); err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			return nil, fmt.Errorf("surah %d: %w", n, ErrNotFound)
		}
		return nil, fmt.Errorf("fetch surah %d: %w", n, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("surah %d: %w", n, ErrNotFound)
	}

	arabic := resp.Data[0]
	translations := map[int]string{}
	for _, ed := range resp.Data {
		if ed.Edition.Identifier == arabicEdition {
			arabic = ed
			continue
		}
		for _, a := range ed.Ayahs {
			translations[a.NumberInSurah] = a.Text
		}
	}

	out := &model.Surah{
		Number:                 arabic.Number,
		Name:                   arabic.Name,
		EnglishName:            arabic.EnglishName,
		EnglishNameTranslation: arabic.EnglishNameTranslation,
		RevelationType:         arabic.RevelationType,
		Ayahs:                  make([]model.Ayah, 0, len(arabic.Ayahs)),
	}
	for _, a := range arabic.Ayahs {
		out.Ayahs = append(out.Ayahs, model.Ayah{
			Number:        a.Number,
			NumberInSurah: a.NumberInSurah,
			Text:          a.Text,
			Translation:   translations[a.NumberInSurah],
		})
	}
	return out, nil
}

type quranComVerse struct {
	VerseKey     string `json:"verse_key"`
	VerseNumber  int    `json:"verse_number"`
	TextUthmani  string `json:"text_uthmani"`
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

type quranComPage struct {
	Verses     []quranComVerse `json:"verses"`
	Pagination struct {
		CurrentPage int  `json:"current_page"`
		NextPage    *int `json:"next_page"`
		TotalPages  int  `json:"total_pages"`
	} `json:"pagination"`
}

// Juz returns every verse of juz n with its Sindhi translation, following
// the upstream pagination.
func (s *Service) Juz(ctx context.Context, n int) (*model.Juz, error) {
	info, ok := JuzByNumber(n)
	if !ok {
		return nil, fmt.Errorf("%w: juz %d", ErrInvalidNumber, n)
	}

	out := &model.Juz{Number: n, NameArabic: info.NameArabic}
	page := 1
	for i := 0; i < maxJuzPages; i++ {
		url := fmt.Sprintf(
			"%s/verses/by_juz/%d?translations=%d&text_type=uthmani&language=ar"+
				"&fields=verse_key,verse_number,text_uthmani&per_page=%d&page=%d",
			s.quranCom, n, sindhiTranslationID, juzPageSize, page,
		)
		var resp quranComPage
		key := fmt.Sprintf("quran:juz:%d:%d", n, page)
		if err := s.fetcher.GetJSON(ctx, "qurancom", url, key, s.ttl, &resp); err != nil {
			if errors.Is(err, upstream.ErrNotFound) {
				return nil, fmt.Errorf("juz %d: %w", n, ErrNotFound)
			}
			return nil, fmt.Errorf("fetch juz %d page %d: %w", n, page, err)
		}

		for _, v := range resp.Verses {
			jv := model.JuzVerse{
				VerseKey:    v.VerseKey,
				VerseNumber: v.VerseNumber,
				Text:        v.TextUthmani,
			}
			if len(v.Translations) > 0 {
				jv.Translation = StripMarkup(v.Translations[0].Text)
			}
			out.Verses = append(out.Verses, jv)
		}

		if resp.Pagination.NextPage == nil || *resp.Pagination.NextPage <= page {
			return out, nil
		}
		page = *resp.Pagination.NextPage
	}

	log.Warn().Int("juz", n).Int("pages", maxJuzPages).Msg("[quran] juz pagination truncated")
	return out, nil
}

// StripMarkup removes footnote markers and HTML tags from translation text,
// keeping the text outside <sup> elements.
func StripMarkup(s string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	footnote := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.StartTagToken:
			if name, _ := z.TagName(); string(name) == "sup" {
				footnote++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "sup" && footnote > 0 {
				footnote--
			}
		case html.TextToken:
			if footnote == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// FilterChapters keeps chapters whose Arabic or English name contains term,
// case-insensitively, or whose number equals it.
func FilterChapters(chapters []model.Chapter, term string) []model.Chapter {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return chapters
	}
	out := make([]model.Chapter, 0, len(chapters))
	for _, c := range chapters {
		if strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.EnglishName), term) ||
			strconv.Itoa(c.Chapter) == term {
			out = append(out, c)
		}
	}
	return out
}
