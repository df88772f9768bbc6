package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/config"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/http/api"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/http/api/admin/auth/packets"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/model"
)

// AuthPublicModule mounts the public login endpoint (/auth/login)
func AuthPublicModule(admin config.Admin) api.Module {
	ctl := newAccountManager(admin)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/auth/login", ctl.adminLogin)
	})
}

// AuthSessionModule mounts private session endpoints (JWT required)
func AuthSessionModule(admin config.Admin) api.Module {
	ctl := newAccountManager(admin)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/auth/current_profile", ctl.getCurrentProfile)
	})
}

type AccountManager struct {
	admin config.Admin
}

func newAccountManager(admin config.Admin) *AccountManager {
	return &AccountManager{admin: admin}
}

// POST /api/admin/auth/login
func (a *AccountManager) adminLogin(ctx *gin.Context) (any, *api.Error) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := middleware.Authenticate(a.admin.Username, a.admin.PasswordHash, request.Username, request.Password); err != nil {
		log.Warn().Str("username", request.Username).Str("ip", ctx.ClientIP()).Msg("[admin] login failed")
		return nil, &api.Error{Code: http.StatusUnauthorized, Message: "invalid username or password"}
	}

	token, err := middleware.GenerateJWT(a.admin.Username, a.admin.JWTSecret)
	if err != nil {
		log.Error().Err(err).Msg("[admin] could not sign token")
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not generate token"}
	}

	return packets.LoginResponse{Token: token}, nil
}

// GET /api/admin/auth/current_profile
func (a *AccountManager) getCurrentProfile(_ *gin.Context, admin *model.Admin) (any, *api.Error) {
	return packets.ProfileResponse{Username: admin.Username}, nil
}
