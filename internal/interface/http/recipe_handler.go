package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	recipeapp "github.com/oksasatya/recipe-app-api/internal/application"
	"github.com/oksasatya/recipe-app-api/pkg/response"
	"github.com/oksasatya/recipe-app-api/pkg/validation"
)

type RecipeHandler struct {
	Svc    *recipeapp.RecipeService
	Logger *logrus.Logger
}

func NewRecipeHandler(svc *recipeapp.RecipeService, logger *logrus.Logger) *RecipeHandler {
	return &RecipeHandler{Svc: svc, Logger: logger}
}

type resourceJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type createTagRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListTags GET /api/tag
func (h *RecipeHandler) ListTags(c *gin.Context) {
	uid := c.GetString("userID")
	tags, err := h.Svc.ListTags(uid)
	if err != nil {
		h.Logger.WithError(err).Error("list tags failed")
		response.Error[any](c, http.StatusInternalServerError, "list failed", nil)
		return
	}
	out := make([]resourceJSON, 0, len(tags))
	for _, t := range tags {
		out = append(out, resourceJSON{ID: t.ID, Name: t.Name})
	}
	response.Success(c, http.StatusOK, out, "tags", nil)
}

// CreateTag POST /api/tag. The owner is the authenticated user; any
// owner field in the payload is ignored.
func (h *RecipeHandler) CreateTag(c *gin.Context) {
	uid := c.GetString("userID")
	var req createTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.CreateTag(uid, req.Name)
	if err != nil {
		if err == recipeapp.ErrNameRequired {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"name": "is required"})
			return
		}
		h.Logger.WithError(err).Error("create tag failed")
		response.Error[any](c, http.StatusInternalServerError, "create failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, resourceJSON{ID: t.ID, Name: t.Name}, "tag created", nil)
}

// ListIngredients GET /api/ingredient
func (h *RecipeHandler) ListIngredients(c *gin.Context) {
	uid := c.GetString("userID")
	ingredients, err := h.Svc.ListIngredients(uid)
	if err != nil {
		h.Logger.WithError(err).Error("list ingredients failed")
		response.Error[any](c, http.StatusInternalServerError, "list failed", nil)
		return
	}
	out := make([]resourceJSON, 0, len(ingredients))
	for _, i := range ingredients {
		out = append(out, resourceJSON{ID: i.ID, Name: i.Name})
	}
	response.Success(c, http.StatusOK, out, "ingredients", nil)
}
