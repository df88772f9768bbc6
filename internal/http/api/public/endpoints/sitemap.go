package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/http/api"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/sitemap"
)

// SitemapModule serves the sitemap under both of its historical paths.
func SitemapModule(baseURL string) api.Module {
	serve := func(ctx *gin.Context) {
		body, err := sitemap.Render(baseURL, time.Now())
		if err != nil {
			log.Error().Err(err).Msg("[sitemap] render failed")
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.Header("Cache-Control", sitemap.CacheControl)
		ctx.Data(http.StatusOK, sitemap.ContentType, body)
	}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PAGE("/sitemap.xml", serve)
		c.PAGE("/sitemap", serve)
	})
}
