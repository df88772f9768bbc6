package endpoints

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/http/api"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/model"
)

type CacheInvalidator interface {
	Invalidate(ctx context.Context, key string)
}

type CacheController struct {
	cache CacheInvalidator
}

// CacheModule lets admins drop a cached upstream response.
func CacheModule(cache CacheInvalidator) api.Module {
	ctl := &CacheController{cache: cache}
	return api.ModuleFunc(func(c *api.Controller) {
		c.DELETE("/cache", ctl.deleteCacheEntry)
	})
}

// DELETE /api/admin/cache?key=
func (c *CacheController) deleteCacheEntry(ctx *gin.Context, admin *model.Admin) (any, *api.Error) {
	key := ctx.Query("key")
	if key == "" {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "key is required"}
	}

	c.cache.Invalidate(ctx.Request.Context(), key)
	log.Info().Str("key", key).Str("admin", admin.Username).Msg("[admin] cache entry dropped")
	return gin.H{"deleted": key}, nil
}
