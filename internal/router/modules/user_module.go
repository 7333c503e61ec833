package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	app "github.com/oksasatya/recipe-app-api/internal/application"
	"github.com/oksasatya/recipe-app-api/internal/container"
	handlers "github.com/oksasatya/recipe-app-api/internal/interface/http"
	"github.com/oksasatya/recipe-app-api/internal/interface/middleware"
)

// UserModule wires account HTTP handlers and token-auth middleware into routes
// Public: POST /api/users, POST /api/users/token, POST /api/users/reset/{init,confirm}
// Protected: GET/PATCH /api/users/me, POST /api/users/me/avatar, GET /api/users/search

type UserModule struct {
	Handler *handlers.UserHandler
	Svc     *app.UserService
}

func NewUserModule(h *handlers.UserHandler, svc *app.UserService) *UserModule {
	return &UserModule{Handler: h, Svc: svc}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Public with per-IP rate limiting
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	tokenLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	resetLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/users", registerLimiter, m.Handler.Register)
	rg.POST("/users/token", tokenLimiter, m.Handler.Token)
	rg.POST("/users/reset/init", resetLimiter, m.Handler.ResetInit)
	rg.POST("/users/reset/confirm", resetLimiter, m.Handler.ResetConfirm)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.TokenAuth(m.Svc))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		auth.GET("/users/me", m.Handler.Me)
		auth.PATCH("/users/me", m.Handler.UpdateMe)
		auth.POST("/users/me/avatar", m.Handler.UploadAvatar)
		auth.GET("/users/search", m.Handler.Search)
	}
}
