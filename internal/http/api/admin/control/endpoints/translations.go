package endpoints

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/db"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/http/api"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/model"
)

const (
	defaultReviewLimit = 50
	maxReviewLimit     = 500
)

type TranslationMemory interface {
	List(ctx context.Context, maxScore float64, limit int) ([]model.TranslationEntry, error)
	Verify(ctx context.Context, key, text string) (*model.TranslationEntry, error)
	All(ctx context.Context) ([]model.TranslationEntry, error)
}

type Publisher interface {
	TranslationStored(ctx context.Context, e *model.TranslationEntry)
}

type TranslationController struct {
	memory    TranslationMemory
	publisher Publisher
}

// TranslationModule mounts the review queue of the translation memory.
func TranslationModule(memory TranslationMemory, publisher Publisher) api.Module {
	ctl := &TranslationController{memory: memory, publisher: publisher}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/translations", ctl.listTranslations)
		c.PUT("/translations/:key", ctl.verifyTranslation)
	})
}

// GET /api/admin/translations?max_score=&limit=
func (t *TranslationController) listTranslations(ctx *gin.Context, _ *model.Admin) (any, *api.Error) {
	maxScore := 1.0
	if raw := ctx.Query("max_score"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 1 {
			return nil, &api.Error{Code: http.StatusBadRequest, Message: "max_score must be between 0 and 1"}
		}
		maxScore = v
	}

	limit := defaultReviewLimit
	if raw := ctx.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return nil, &api.Error{Code: http.StatusBadRequest, Message: "limit must be a positive integer"}
		}
		limit = min(v, maxReviewLimit)
	}

	entries, err := t.memory.List(ctx.Request.Context(), maxScore, limit)
	if err != nil {
		log.Error().Err(err).Msg("[admin] could not list translations")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not list translations"}
	}

	out := make([]packets.TranslationResponse, 0, len(entries))
	for i := range entries {
		out = append(out, packets.NewTranslationResponse(&entries[i]))
	}
	return out, nil
}

// PUT /api/admin/translations/:key
func (t *TranslationController) verifyTranslation(ctx *gin.Context, admin *model.Admin) (any, *api.Error) {
	var request packets.VerifyTranslationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	key := ctx.Param("key")
	e, err := t.memory.Verify(ctx.Request.Context(), key, request.Sindhi)
	if errors.Is(err, db.ErrNotFound) {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "translation not found"}
	}
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("[admin] could not verify translation")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not verify translation"}
	}

	log.Info().Str("key", key).Str("admin", admin.Username).Msg("[admin] translation verified")
	if t.publisher != nil {
		t.publisher.TranslationStored(ctx.Request.Context(), e)
	}
	return packets.NewTranslationResponse(e), nil
}
