package endpoints

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/hadith"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/http/api"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/model"
)

type HadithService interface {
	Collections(ctx context.Context) ([]model.HadithCollection, error)
	Get(ctx context.Context, collection string, number int) (*model.Hadith, error)
}

type HadithController struct {
	hadith HadithService
}

// HadithModule mounts the public hadith endpoints.
func HadithModule(svc HadithService) api.Module {
	ctl := &HadithController{hadith: svc}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/hadith/collections", ctl.listCollections)
		c.PUBLIC_GET("/hadith/:collection/:number", ctl.getHadith)
	})
}

// GET /api/hadith/collections
func (h *HadithController) listCollections(ctx *gin.Context) (any, *api.Error) {
	collections, err := h.hadith.Collections(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("[hadith] collections failed")
		return nil, api.NewError(http.StatusInternalServerError, "Failed to fetch hadith collections")
	}
	ctx.Header("Cache-Control", cacheControl)
	return gin.H{"collections": collections}, nil
}

// GET /api/hadith/:collection/:number
func (h *HadithController) getHadith(ctx *gin.Context) (any, *api.Error) {
	number, err := hadith.ParseNumber(ctx.Param("number"))
	if err != nil {
		return nil, api.NewError(http.StatusBadRequest, "Invalid Hadith number")
	}

	out, err := h.hadith.Get(ctx.Request.Context(), ctx.Param("collection"), number)
	switch {
	case errors.Is(err, hadith.ErrNotFound):
		return nil, api.NewError(http.StatusNotFound, "Hadith not found")
	case err != nil:
		log.Error().Err(err).
			Str("collection", ctx.Param("collection")).
			Int("number", number).
			Msg("[hadith] fetch failed")
		return nil, api.NewError(http.StatusInternalServerError, "Failed to fetch Hadith")
	}
	ctx.Header("Cache-Control", cacheControl)
	return out, nil
}
