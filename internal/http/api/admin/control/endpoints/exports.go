package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/http/api"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/model"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/storage"
)

type ExportController struct {
	memory  TranslationMemory
	storage storage.Storage
}

// ExportModule mounts the translation memory export.
func ExportModule(memory TranslationMemory, storage storage.Storage) api.Module {
	ctl := &ExportController{memory: memory, storage: storage}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/exports", ctl.createExport)
	})
}

// POST /api/admin/exports
func (e *ExportController) createExport(ctx *gin.Context, admin *model.Admin) (any, *api.Error) {
	var request packets.CreateExportRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
		}
	}
	name := request.Name
	if name == "" {
		name = fmt.Sprintf("translations_%s.json", time.Now().UTC().Format("20060102_150405"))
	}

	entries, err := e.memory.All(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("[admin] could not read translation memory")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not read translations"}
	}

	out := make([]packets.TranslationResponse, 0, len(entries))
	for i := range entries {
		out = append(out, packets.NewTranslationResponse(&entries[i]))
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not encode export"}
	}

	url, err := e.storage.Put(ctx.Request.Context(), name, data, "application/json")
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("[admin] export failed")
		return nil, &api.Error{Code: http.StatusBadGateway, Message: "could not store export"}
	}

	log.Info().Str("url", url).Int("entries", len(out)).Str("admin", admin.Username).Msg("[admin] export written")
	ctx.Status(http.StatusCreated)
	return packets.ExportResponse{URL: url, Entries: len(out)}, nil
}
