package main

import (
	"html/template"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/app"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/http/api"
	authapi "github.com/Nixie-Tech-LLC/tarjumo/internal/http/api/admin/auth/endpoints"
	adminapi "github.com/Nixie-Tech-LLC/tarjumo/internal/http/api/admin/control/endpoints"
	publicapi "github.com/Nixie-Tech-LLC/tarjumo/internal/http/api/public/endpoints"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/http/pages"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, a *app.App, tmpl *template.Template) {
	cfg := a.Config
	r.SetHTMLTemplate(tmpl)

	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
			"If-None-Match",
		},
		ExposeHeaders: []string{
			"Content-Length",
			"Cache-Control",
		},
		AllowCredentials: false,
	}))
	r.Use(middleware.Theme())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	},
		publicapi.QuranModule(a.Quran),
		publicapi.HadithModule(a.Hadith),
	)

	api.MountGroup(r, api.GroupConfig{},
		publicapi.SitemapModule(cfg.BaseURL),
		pages.Module(a.Quran, a.Hadith),
	)

	if !cfg.Admin.Enabled() {
		return
	}

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		authapi.AuthPublicModule(cfg.Admin),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: cfg.Admin.JWTSecret,
	},
		adminapi.TranslationModule(a.Memory, a.Publisher),
		adminapi.ExportModule(a.Memory, a.Storage),
		adminapi.CacheModule(a.Upstream),
		// session endpoints that require auth
		authapi.AuthSessionModule(cfg.Admin),
	)
}
