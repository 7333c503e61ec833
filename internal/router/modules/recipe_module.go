package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	app "github.com/oksasatya/recipe-app-api/internal/application"
	"github.com/oksasatya/recipe-app-api/internal/container"
	handlers "github.com/oksasatya/recipe-app-api/internal/interface/http"
	"github.com/oksasatya/recipe-app-api/internal/interface/middleware"
)

// RecipeModule registers the owner-scoped tag and ingredient routes.
// Tag exposes list+create; Ingredient exposes list only.

type RecipeModule struct {
	Handler *handlers.RecipeHandler
	Svc     *app.UserService
}

func NewRecipeModule(h *handlers.RecipeHandler, svc *app.UserService) *RecipeModule {
	return &RecipeModule{Handler: h, Svc: svc}
}

func (m *RecipeModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.TokenAuth(m.Svc))
	auth.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		auth.GET("/tag", m.Handler.ListTags)
		auth.POST("/tag", m.Handler.CreateTag)
		auth.GET("/ingredient", m.Handler.ListIngredients)
	}
}
