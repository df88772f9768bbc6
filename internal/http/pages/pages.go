// Package pages renders the reader-facing HTML pages.
package pages

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/hadith"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/http/api"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/model"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/quran"
)

const (
	SindhiUnavailable = "سنڌي ترجمو عارضي طور موجود نه آهي."
	loadFailed        = "مواد لوڊ نه ٿي سگهيو. مهرباني ڪري ٻيهر ڪوشش ڪريو."
	notFound          = "گهربل صفحو نه مليو."
	invalidNumber     = "غلط نمبر."

	themeCookieAge = 365 * 24 * 60 * 60
)

type QuranService interface {
	Chapters(ctx context.Context) ([]model.Chapter, error)
	Surah(ctx context.Context, n int) (*model.Surah, error)
	Juz(ctx context.Context, n int) (*model.Juz, error)
}

type HadithService interface {
	Collections(ctx context.Context) ([]model.HadithCollection, error)
	Get(ctx context.Context, collection string, number int) (*model.Hadith, error)
}

// LoadTemplates parses every *.html file in dir into one set.
func LoadTemplates(dir string) (*template.Template, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates in %s", dir)
	}
	return template.New("").Funcs(template.FuncMap{
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}).ParseFiles(files...)
}

type Controller struct {
	quran  QuranService
	hadith HadithService
}

// Module mounts the HTML pages and the theme switch.
func Module(q QuranService, h HadithService) api.Module {
	ctl := &Controller{quran: q, hadith: h}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PAGE("/", ctl.index)
		c.PAGE("/surah/:id", ctl.surah)
		c.PAGE("/juz", ctl.juzList)
		c.PAGE("/juz/:id", ctl.juz)
		c.PAGE("/hadith", ctl.hadithCollections)
		c.PAGE("/hadith/:collection", ctl.hadithReader)
		c.PAGE("/theme", setTheme)
	})
}

func render(ctx *gin.Context, status int, name string, data gin.H) {
	data["Theme"] = middleware.CurrentTheme(ctx)
	ctx.HTML(status, name, data)
}

func renderError(ctx *gin.Context, status int, message string) {
	render(ctx, status, "error.html", gin.H{"Title": "غلطي", "Message": message})
}

// GET /?q=
func (p *Controller) index(ctx *gin.Context) {
	chapters, err := p.quran.Chapters(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("[pages] chapters failed")
		renderError(ctx, http.StatusBadGateway, loadFailed)
		return
	}
	q := ctx.Query("q")
	render(ctx, http.StatusOK, "index.html", gin.H{
		"Title":    "قرآن سنڌي ترجمو",
		"Query":    q,
		"Chapters": quran.FilterChapters(chapters, q),
	})
}

// GET /surah/:id
func (p *Controller) surah(ctx *gin.Context) {
	n, err := quran.ParseSurahNumber(ctx.Param("id"))
	if err != nil {
		renderError(ctx, http.StatusBadRequest, invalidNumber)
		return
	}

	surah, err := p.quran.Surah(ctx.Request.Context(), n)
	if errors.Is(err, quran.ErrNotFound) {
		renderError(ctx, http.StatusNotFound, notFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Int("surah", n).Msg("[pages] surah failed")
		renderError(ctx, http.StatusBadGateway, loadFailed)
		return
	}

	data := gin.H{"Title": surah.Name, "Surah": surah}
	if n > 1 {
		data["Prev"] = n - 1
	}
	if n < quran.SurahCount {
		data["Next"] = n + 1
	}
	render(ctx, http.StatusOK, "surah.html", data)
}

// GET /juz
func (p *Controller) juzList(ctx *gin.Context) {
	render(ctx, http.StatusOK, "juz_list.html", gin.H{"Title": "پارا", "JuzList": quran.JuzList()})
}

// GET /juz/:id
func (p *Controller) juz(ctx *gin.Context) {
	n, err := quran.ParseJuzNumber(ctx.Param("id"))
	if err != nil {
		renderError(ctx, http.StatusBadRequest, "Invalid Juz number. Must be between 1 and 30.")
		return
	}

	juz, err := p.quran.Juz(ctx.Request.Context(), n)
	if err != nil {
		log.Error().Err(err).Int("juz", n).Msg("[pages] juz failed")
		renderError(ctx, http.StatusBadGateway, loadFailed)
		return
	}

	info, _ := quran.JuzByNumber(n)
	data := gin.H{"Title": juz.NameArabic, "Juz": juz, "Info": info}
	if n > 1 {
		data["Prev"] = n - 1
	}
	if n < quran.JuzCount {
		data["Next"] = n + 1
	}
	render(ctx, http.StatusOK, "juz.html", data)
}

// GET /hadith
func (p *Controller) hadithCollections(ctx *gin.Context) {
	collections, err := p.hadith.Collections(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("[pages] hadith collections failed")
		renderError(ctx, http.StatusBadGateway, loadFailed)
		return
	}
	render(ctx, http.StatusOK, "hadith_collections.html", gin.H{"Title": "حديث", "Collections": collections})
}

// GET /hadith/:collection?number=N
func (p *Controller) hadithReader(ctx *gin.Context) {
	collection := ctx.Param("collection")
	raw := ctx.DefaultQuery("number", "1")
	data := gin.H{"Title": "مجموعو: " + collection, "Collection": collection, "Number": raw}

	n, err := hadith.ParseNumber(raw)
	if err != nil {
		data["Error"] = invalidNumber
		render(ctx, http.StatusBadRequest, "hadith.html", data)
		return
	}

	h, err := p.hadith.Get(ctx.Request.Context(), collection, n)
	switch {
	case errors.Is(err, hadith.ErrNotFound):
		data["Error"] = "Hadith not found"
		render(ctx, http.StatusNotFound, "hadith.html", data)
		return
	case err != nil:
		log.Error().Err(err).Str("collection", collection).Int("number", n).Msg("[pages] hadith failed")
		data["Error"] = loadFailed
		render(ctx, http.StatusBadGateway, "hadith.html", data)
		return
	}

	data["Hadith"] = h
	data["Fallback"] = SindhiUnavailable
	if n > 1 {
		data["Prev"] = n - 1
	}
	data["Next"] = n + 1
	render(ctx, http.StatusOK, "hadith.html", data)
}

// GET /theme?mode=dark|light
func setTheme(ctx *gin.Context) {
	mode := ctx.Query("mode")
	if mode != middleware.ThemeDark {
		mode = middleware.ThemeLight
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.ThemeCookie, mode, themeCookieAge, "/", "", false, false)
	ctx.Redirect(http.StatusSeeOther, backTo(ctx))
}

// backTo returns the local page the request came from.
func backTo(ctx *gin.Context) string {
	for _, candidate := range []string{ctx.Query("back"), ctx.GetHeader("Referer")} {
		if candidate == "" {
			continue
		}
		u, err := url.Parse(candidate)
		if err != nil || (u.Host != "" && u.Host != ctx.Request.Host) {
			continue
		}
		if !localPath(u.Path) {
			continue
		}
		return (&url.URL{Path: u.Path, RawQuery: u.RawQuery}).String()
	}
	return "/"
}

// localPath accepts absolute paths that browsers cannot read as
// scheme-relative URLs.
func localPath(p string) bool {
	if !strings.HasPrefix(p, "/") || strings.ContainsRune(p, '\\') {
		return false
	}
	return len(p) == 1 || (p[1] != '/' && p[1] != '\\')
}
