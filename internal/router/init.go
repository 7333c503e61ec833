package router

import (
	app "github.com/oksasatya/recipe-app-api/internal/application"
	"github.com/oksasatya/recipe-app-api/internal/container"
	pginfra "github.com/oksasatya/recipe-app-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/recipe-app-api/internal/interface/http"
	"github.com/oksasatya/recipe-app-api/internal/router/modules"
)

func buildUserService() *app.UserService {
	cfg := container.GetConfig()
	svc := app.NewUserService(
		pginfra.NewUserRepository(container.GetPGPool()),
		pginfra.NewTokenRepository(container.GetPGPool()),
		container.GetResetTokens(),
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetRedis(),
		container.GetLogger(),
		container.GetES(),
		cfg.ESUsersIndex,
		container.GetRabbitPub(),
	)
	svc.TokenCacheTTL = cfg.TokenCacheTTL
	svc.ResetPasswordURL = cfg.ResetPasswordURL
	svc.MailSendEnabled = cfg.MailSendEnabled
	return svc
}

func buildRecipeService() *app.RecipeService {
	return app.NewRecipeService(
		pginfra.NewTagRepository(container.GetPGPool()),
		pginfra.NewIngredientRepository(container.GetPGPool()),
		container.GetLogger(),
	)
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	userSvc := buildUserService()
	recipeSvc := buildRecipeService()

	userHandler := handlers.NewUserHandler(userSvc, container.GetLogger())
	recipeHandler := handlers.NewRecipeHandler(recipeSvc, container.GetLogger())

	r.Add(modules.NewUserModule(userHandler, userSvc))
	r.Add(modules.NewRecipeModule(recipeHandler, userSvc))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
