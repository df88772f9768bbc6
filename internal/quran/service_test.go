package quran

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/cache"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/model"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/upstream"
)

func newTestService(t *testing.T, h http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client := upstream.NewClient(time.Second, cache.NewMemory(64, time.Hour))
	return NewService(client, srv.URL+"/alquran", srv.URL+"/qurancom", time.Hour)
}

func TestChapters(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/alquran/surah", r.URL.Path)
		_, _ = w.Write([]byte(`{"code":200,"data":[
			{"number":1,"name":"سُورَةُ ٱلْفَاتِحَةِ","englishName":"Al-Faatiha","numberOfAyahs":7},
			{"number":2,"name":"سُورَةُ البَقَرَةِ","englishName":"Al-Baqara","numberOfAyahs":286}
		]}`))
	})

	chapters, err := svc.Chapters(context.Background())
	require.NoError(t, err)
	require.Len(t, chapters, 2)
	assert.Equal(t, model.Chapter{Chapter: 2, Name: "سُورَةُ البَقَرَةِ", EnglishName: "Al-Baqara", AyahCount: 286}, chapters[1])
}

func TestSurahMergesSindhiEdition(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/alquran/surah/1/editions/quran-uthmani,sd.amroti", r.URL.Path)
		_, _ = w.Write([]byte(`{"code":200,"data":[
			{"number":1,"name":"الفاتحة","englishName":"Al-Faatiha","edition":{"identifier":"sd.amroti"},
			 "ayahs":[{"number":1,"numberInSurah":1,"text":"الله جي نالي سان"}]},
			{"number":1,"name":"الفاتحة","englishName":"Al-Faatiha","englishNameTranslation":"The Opening","edition":{"identifier":"quran-uthmani"},
			 "ayahs":[{"number":1,"numberInSurah":1,"text":"بِسْمِ ٱللَّهِ"},{"number":2,"numberInSurah":2,"text":"ٱلْحَمْدُ لِلَّهِ"}]}
		]}`))
	})

	s, err := svc.Surah(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "The Opening", s.EnglishNameTranslation)
	require.Len(t, s.Ayahs, 2)
	assert.Equal(t, "بِسْمِ ٱللَّهِ", s.Ayahs[0].Text)
	assert.Equal(t, "الله جي نالي سان", s.Ayahs[0].Translation)
	assert.Empty(t, s.Ayahs[1].Translation)
}

func TestSurahRejectsOutOfRange(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected upstream call %s", r.URL)
	})

	for _, n := range []int{0, 115, -3} {
		_, err := svc.Surah(context.Background(), n)
		assert.ErrorIs(t, err, ErrInvalidNumber)
	}
}

func TestSurahNotFound(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := svc.Surah(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJuzFollowsPagination(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/qurancom/verses/by_juz/30"))
		assert.Equal(t, "238", r.URL.Query().Get("translations"))

		page := r.URL.Query().Get("page")
		current, _ := strconv.Atoi(page)
		var next any
		if current == 1 {
			next = 2
		}
		verse := map[string]any{
			"verse_key":    fmt.Sprintf("78:%s", page),
			"verse_number": 1,
			"text_uthmani": "عَمَّ",
			"translations": []map[string]string{{"text": "ڇا بابت<sup foot_note=1>1</sup> پڇن ٿا"}},
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"verses":     []any{verse},
			"pagination": map[string]any{"current_page": current, "next_page": next},
		})
	})

	juz, err := svc.Juz(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, "الجُزْءُ الثَّلَاثُونَ", juz.NameArabic)
	require.Len(t, juz.Verses, 2)
	assert.Equal(t, "78:1", juz.Verses[0].VerseKey)
	assert.Equal(t, "78:2", juz.Verses[1].VerseKey)
	assert.Equal(t, "ڇا بابت پڇن ٿا", juz.Verses[0].Translation)
}

func TestParseNumbers(t *testing.T) {
	n, err := ParseSurahNumber("114")
	require.NoError(t, err)
	assert.Equal(t, 114, n)

	_, err = ParseSurahNumber("abc")
	assert.ErrorIs(t, err, ErrInvalidNumber)

	_, err = ParseJuzNumber("31")
	assert.ErrorIs(t, err, ErrInvalidNumber)
}

func TestJuzTable(t *testing.T) {
	list := JuzList()
	require.Len(t, list, JuzCount)
	for i, j := range list {
		assert.Equal(t, i+1, j.Number)
		assert.True(t, strings.HasPrefix(j.NameArabic, "الجُزْءُ "))
		assert.LessOrEqual(t, j.StartSurah, j.EndSurah)
	}
	assert.Equal(t, 114, list[29].EndSurah)

	_, ok := JuzByNumber(0)
	assert.False(t, ok)
	assert.Len(t, SurahParams(), SurahCount)
	assert.Equal(t, 30, JuzParams()[29])
}

func TestFilterChapters(t *testing.T) {
	chapters := []model.Chapter{
		{Chapter: 1, Name: "الفاتحة", EnglishName: "Al-Faatiha"},
		{Chapter: 2, Name: "البقرة", EnglishName: "Al-Baqara"},
		{Chapter: 112, Name: "الإخلاص", EnglishName: "Al-Ikhlaas"},
	}

	assert.Len(t, FilterChapters(chapters, ""), 3)
	assert.Equal(t, 2, FilterChapters(chapters, "baq")[0].Chapter)
	assert.Equal(t, 1, FilterChapters(chapters, "الفاتحة")[0].Chapter)
	assert.Equal(t, 112, FilterChapters(chapters, "112")[0].Chapter)
	assert.Empty(t, FilterChapters(chapters, "zzz"))
}

func TestStripMarkup(t *testing.T) {
	cases := []struct{ in, want string }{
		{"ڇا بابت<sup foot_note=1>1</sup> پڇن ٿا", "ڇا بابت پڇن ٿا"},
		{`<a title="a>b">x</a> y`, "x y"},
		{"<i>چئو</i> &amp; <b>ٻڌو</b>", "چئو & ٻڌو"},
		{"<sup><sup>2</sup>3</sup>باقي", "باقي"},
		{"سادو متن", "سادو متن"},
		{"  ", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StripMarkup(tc.in), tc.in)
	}
}
