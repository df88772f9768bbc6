package endpoints

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/http/api"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/model"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/quran"
)

const cacheControl = "public, max-age=86400"

type QuranService interface {
	Chapters(ctx context.Context) ([]model.Chapter, error)
	Surah(ctx context.Context, n int) (*model.Surah, error)
	Juz(ctx context.Context, n int) (*model.Juz, error)
}

type QuranController struct {
	quran QuranService
}

// QuranModule mounts the public Quran endpoints (/chapters, /surah/:id, /juz).
func QuranModule(svc QuranService) api.Module {
	ctl := &QuranController{quran: svc}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/chapters", ctl.listChapters)
		c.PUBLIC_GET("/surah/:id", ctl.getSurah)
		c.PUBLIC_GET("/juz", ctl.listJuz)
		c.PUBLIC_GET("/juz/:id", ctl.getJuz)
	})
}

// GET /api/chapters?q=
func (q *QuranController) listChapters(ctx *gin.Context) (any, *api.Error) {
	chapters, err := q.quran.Chapters(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("[quran] chapters failed")
		return nil, api.NewError(http.StatusInternalServerError, "Failed to fetch Surah list")
	}
	ctx.Header("Cache-Control", cacheControl)
	return quran.FilterChapters(chapters, ctx.Query("q")), nil
}

// GET /api/surah/:id
func (q *QuranController) getSurah(ctx *gin.Context) (any, *api.Error) {
	n, err := quran.ParseSurahNumber(ctx.Param("id"))
	if err != nil {
		return nil, api.NewError(http.StatusBadRequest, "Invalid Surah number. Must be between 1 and 114.")
	}

	surah, err := q.quran.Surah(ctx.Request.Context(), n)
	switch {
	case errors.Is(err, quran.ErrNotFound):
		return nil, api.NewError(http.StatusNotFound, "Not Found")
	case err != nil:
		log.Error().Err(err).Int("surah", n).Msg("[quran] surah failed")
		return nil, api.NewError(http.StatusBadGateway, "Failed to fetch Surah")
	}
	ctx.Header("Cache-Control", cacheControl)
	return gin.H{"data": surah}, nil
}

// GET /api/juz
func (q *QuranController) listJuz(ctx *gin.Context) (any, *api.Error) {
	ctx.Header("Cache-Control", cacheControl)
	return gin.H{"juz": quran.JuzList()}, nil
}

// GET /api/juz/:id
func (q *QuranController) getJuz(ctx *gin.Context) (any, *api.Error) {
	n, err := quran.ParseJuzNumber(ctx.Param("id"))
	if err != nil {
		return nil, api.NewError(http.StatusBadRequest, "Invalid Juz number. Must be between 1 and 30.")
	}

	juz, err := q.quran.Juz(ctx.Request.Context(), n)
	switch {
	case errors.Is(err, quran.ErrNotFound):
		return nil, api.NewError(http.StatusNotFound, "Not Found")
	case err != nil:
		log.Error().Err(err).Int("juz", n).Msg("[quran] juz failed")
		return nil, api.NewError(http.StatusInternalServerError, "Failed to fetch Juz data")
	}
	ctx.Header("Cache-Control", cacheControl)
	return gin.H{"data": juz}, nil
}
